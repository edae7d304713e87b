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

package packagebuilder // import "github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/extension/packagebuilder"

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang/snappy"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/distribution"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/extension/storage"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/packaging"
)

const (
	zapPackageTypeKey = "packageType"
	zapPackageIDKey   = "packageID"
)

var (
	json = jsoniter.ConfigCompatibleWithStandardLibrary

	errPackageNotFound = errors.New("package not found")
	errNotReadable     = errors.New("package paths are not readable")
)

// manifest is what a builder keeps about a package. The package content is the
// json encoding of the manifest.
type manifest struct {
	ID          string                   `json:"id"`
	Type        string                   `json:"type"`
	RequestType distribution.RequestType `json:"requestType"`
	Paths       []string                 `json:"paths"`
	Deep        map[string]bool          `json:"deep,omitempty"`
	CreatedBy   string                   `json:"createdBy"`
	CreatedAt   time.Time                `json:"createdAt"`
}

// packageBuilder stores snappy compressed manifests, either in a storage client or in
// memory when client is nil.
type packageBuilder struct {
	typ    string
	logger *zap.Logger
	client storage.Client

	mu     sync.RWMutex
	memory map[string][]byte
}

var _ packaging.Builder = (*packageBuilder)(nil)

func newPackageBuilder(typ string, logger *zap.Logger, client storage.Client) *packageBuilder {
	return &packageBuilder{
		typ:    typ,
		logger: logger,
		client: client,
		memory: map[string][]byte{},
	}
}

func (b *packageBuilder) Type() string {
	return b.typ
}

// CreatePackage stores a manifest for req under a new package id. Every path of req
// must be readable through rr.
func (b *packageBuilder) CreatePackage(ctx context.Context, rr distribution.ResourceResolver, req *distribution.Request) (distribution.Package, error) {
	if rr == nil || req == nil {
		return nil, errors.New("resource resolver and request are required")
	}
	if !canRead(rr, req.Paths) {
		return nil, errNotReadable
	}

	m := manifest{
		ID:          uuid.NewString(),
		Type:        b.typ,
		RequestType: req.Type,
		Paths:       append([]string(nil), req.Paths...),
		Deep:        req.Deep,
		CreatedBy:   rr.UserID(),
		CreatedAt:   time.Now().UTC(),
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	if err = b.store(ctx, m.ID, snappy.Encode(nil, raw)); err != nil {
		return nil, fmt.Errorf("failed to store package %s: %w", m.ID, err)
	}
	b.logger.Debug("Package created", zap.String(zapPackageIDKey, m.ID), zap.Strings("paths", m.Paths))
	return b.newPackage(m, raw), nil
}

// GetPackage materializes a stored package. It fails when the package is unknown, its
// manifest cannot be decoded or belongs to another type, or rr may not read its paths.
func (b *packageBuilder) GetPackage(ctx context.Context, rr distribution.ResourceResolver, id string) (distribution.Package, error) {
	if rr == nil {
		return nil, errors.New("resource resolver is required")
	}
	data, err := b.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("%w: %s", errPackageNotFound, id)
	}

	raw, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("corrupted package %s: %w", id, err)
	}
	var m manifest
	if err = json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("corrupted package %s: %w", id, err)
	}
	if m.ID != id || m.Type != b.typ {
		return nil, fmt.Errorf("package %s is not a %q package", id, b.typ)
	}
	if !canRead(rr, m.Paths) {
		return nil, errNotReadable
	}
	return b.newPackage(m, raw), nil
}

func (b *packageBuilder) newPackage(m manifest, raw []byte) distribution.Package {
	return packaging.NewBytesPackage(m.ID, m.Type, raw, distribution.PackageInfo{
		RequestType: m.RequestType,
		Paths:       m.Paths,
		Origin:      m.CreatedBy,
		CreatedAt:   m.CreatedAt,
	})
}

func (b *packageBuilder) store(ctx context.Context, id string, data []byte) error {
	if b.client != nil {
		return b.client.Set(ctx, id, data)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.memory[id] = data
	return nil
}

func (b *packageBuilder) load(ctx context.Context, id string) ([]byte, error) {
	if b.client != nil {
		return b.client.Get(ctx, id)
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.memory[id], nil
}

func (b *packageBuilder) close(ctx context.Context) error {
	if b.client == nil {
		return nil
	}
	return b.client.Close(ctx)
}

func canRead(rr distribution.ResourceResolver, paths []string) bool {
	for _, p := range paths {
		if !rr.CanRead(p) {
			return false
		}
	}
	return true
}
