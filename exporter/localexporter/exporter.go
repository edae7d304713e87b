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

// Package localexporter exports packages built on demand from the exported request,
// without an agent queue.
package localexporter // import "github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/exporter/localexporter"

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component/componenterror"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/distribution"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/packaging"
)

var errNilArgument = errors.New("resource resolver and request are required")

type localExporter struct {
	packageType string
	logger      *zap.Logger

	mu       sync.RWMutex
	provider packaging.BuilderProvider
}

var _ packaging.Exporter = (*localExporter)(nil)

func newLocalExporter(cfg *Config, logger *zap.Logger) *localExporter {
	return &localExporter{
		packageType: cfg.PackageType,
		logger:      logger.With(zap.String("exporter", cfg.ID().String())),
	}
}

func (le *localExporter) setProvider(provider packaging.BuilderProvider) {
	le.mu.Lock()
	defer le.mu.Unlock()
	le.provider = provider
}

func (le *localExporter) builder() (packaging.Builder, error) {
	le.mu.RLock()
	provider := le.provider
	le.mu.RUnlock()
	if provider == nil {
		return nil, distribution.NewConfigurationError("no builder provider", nil)
	}
	b, ok := provider.Builder(le.packageType)
	if !ok {
		return nil, distribution.NewConfigurationError(fmt.Sprintf("no builder for package type %q", le.packageType), nil)
	}
	return b, nil
}

// ExportPackages builds a single package for req and hands it to processor.
func (le *localExporter) ExportPackages(ctx context.Context, rr distribution.ResourceResolver, req *distribution.Request, processor packaging.Processor) error {
	if rr == nil || req == nil {
		return errNilArgument
	}
	if processor == nil {
		return componenterror.ErrNilProcessor
	}
	b, err := le.builder()
	if err != nil {
		return err
	}
	pkg, err := b.CreatePackage(ctx, rr, req)
	if err != nil {
		return fmt.Errorf("failed to build package: %w", err)
	}
	if err = processor.Process(ctx, pkg); err != nil {
		return distribution.NewProcessorError(fmt.Sprintf("processing package %s failed", pkg.ID()), err)
	}
	le.logger.Debug("Package exported", zap.String("packageID", pkg.ID()))
	return nil
}

// GetPackage returns the package built under id. A package the builder cannot
// materialize is reported as not found.
func (le *localExporter) GetPackage(ctx context.Context, rr distribution.ResourceResolver, id string) (distribution.Package, bool, error) {
	if rr == nil {
		return nil, false, errNilArgument
	}
	b, err := le.builder()
	if err != nil {
		return nil, false, err
	}
	pkg, err := b.GetPackage(ctx, rr, id)
	if err != nil {
		le.logger.Debug("Package not found", zap.String("packageID", id), zap.Error(err))
		return nil, false, nil
	}
	return pkg, true, nil
}
