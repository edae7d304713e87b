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

// Package packaging defines how distribution packages are built, exported and processed.
package packaging // import "github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/packaging"

import (
	"context"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/distribution"
)

// Builder creates packages for requests and materializes previously created packages.
type Builder interface {
	// Type returns the package type produced by the builder.
	Type() string

	// CreatePackage serializes the content addressed by req into a new package.
	CreatePackage(ctx context.Context, rr distribution.ResourceResolver, req *distribution.Request) (distribution.Package, error)

	// GetPackage materializes the package with the given id.
	// It returns an error if the package is unknown or cannot be read.
	GetPackage(ctx context.Context, rr distribution.ResourceResolver, id string) (distribution.Package, error)
}

// BuilderProvider resolves the builder for a package type.
type BuilderProvider interface {
	// Builder returns the builder for typ, or false if no builder handles that type.
	Builder(typ string) (Builder, bool)
}

// Processor handles a validated package handed over by an Exporter.
type Processor interface {
	// Process returns nil when the package was handled. Any other error declines the
	// package; errors wrapped with distribution.NewFatal also stop the export.
	Process(ctx context.Context, pkg distribution.Package) error
}

// ProcessorFunc is a helper function that is similar to Processor.Process.
type ProcessorFunc func(ctx context.Context, pkg distribution.Package) error

// Process calls f(ctx, pkg).
func (f ProcessorFunc) Process(ctx context.Context, pkg distribution.Package) error {
	return f(ctx, pkg)
}

// Exporter exports packages to a processor.
type Exporter interface {
	// ExportPackages hands every package relevant to req to the processor.
	ExportPackages(ctx context.Context, rr distribution.ResourceResolver, req *distribution.Request, processor Processor) error

	// GetPackage returns the package with the given id. The boolean is false, and the
	// error nil, when no such package exists.
	GetPackage(ctx context.Context, rr distribution.ResourceResolver, id string) (distribution.Package, bool, error)
}

type builderProvider map[string]Builder

// NewBuilderProvider returns a BuilderProvider over a fixed set of builders, keyed by type.
func NewBuilderProvider(builders ...Builder) BuilderProvider {
	bp := make(builderProvider, len(builders))
	for _, b := range builders {
		bp[b.Type()] = b
	}
	return bp
}

func (bp builderProvider) Builder(typ string) (Builder, bool) {
	b, ok := bp[typ]
	return b, ok
}
