// Copyright The OpenTelemetry Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//       http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package packagingtest provides in-memory builders and recording processors for tests.
package packagingtest // import "github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/packaging/packagingtest"

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/distribution"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/packaging"
)

// DefaultType is the package type of builders created with NewBuilder("").
const DefaultType = "test"

// ErrCorrupted is returned by GetPackage for packages marked with Corrupt.
var ErrCorrupted = errors.New("corrupted package")

// Builder is an in-memory packaging.Builder.
type Builder struct {
	typ string

	mu        sync.Mutex
	seq       int
	packages  map[string][]string
	corrupted map[string]bool
	gets      int
}

var _ packaging.Builder = (*Builder)(nil)

// NewBuilder returns an empty Builder for the given type.
func NewBuilder(typ string) *Builder {
	if typ == "" {
		typ = DefaultType
	}
	return &Builder{
		typ:       typ,
		packages:  map[string][]string{},
		corrupted: map[string]bool{},
	}
}

// Type implements packaging.Builder.
func (b *Builder) Type() string {
	return b.typ
}

// Put registers a package that GetPackage can materialize.
func (b *Builder) Put(id string, paths ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.packages[id] = paths
}

// Corrupt makes GetPackage fail for id.
func (b *Builder) Corrupt(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.corrupted[id] = true
}

// Gets returns how many times GetPackage was called.
func (b *Builder) Gets() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.gets
}

// CreatePackage implements packaging.Builder.
func (b *Builder) CreatePackage(_ context.Context, _ distribution.ResourceResolver, req *distribution.Request) (distribution.Package, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	id := fmt.Sprintf("%s-%d", b.typ, b.seq)
	b.packages[id] = req.Paths
	return b.newPackage(id, req.Paths), nil
}

// GetPackage implements packaging.Builder.
func (b *Builder) GetPackage(_ context.Context, _ distribution.ResourceResolver, id string) (distribution.Package, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.gets++
	if b.corrupted[id] {
		return nil, ErrCorrupted
	}
	paths, ok := b.packages[id]
	if !ok {
		return nil, fmt.Errorf("package %q not found", id)
	}
	return b.newPackage(id, paths), nil
}

func (b *Builder) newPackage(id string, paths []string) distribution.Package {
	return packaging.NewBytesPackage(id, b.typ, []byte(id), distribution.PackageInfo{
		RequestType: distribution.RequestTypeAdd,
		Paths:       paths,
		Origin:      b.typ,
	})
}
