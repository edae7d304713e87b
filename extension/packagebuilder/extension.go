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
	"fmt"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/distribution"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/extension/storage"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/packaging"
)

// builderProvider provides one packageBuilder per configured type. Builders exist
// between Start and Shutdown.
type builderProvider struct {
	cfg    *Config
	logger *zap.Logger

	mu       sync.RWMutex
	builders map[string]*packageBuilder
}

var (
	_ component.Extension       = (*builderProvider)(nil)
	_ packaging.BuilderProvider = (*builderProvider)(nil)
)

func newBuilderProvider(logger *zap.Logger, cfg *Config) (*builderProvider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &builderProvider{
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Start creates the builders, opening one storage client per package type when a
// storage extension is configured.
func (bp *builderProvider) Start(ctx context.Context, host component.Host) error {
	var ext storage.Extension
	if !bp.cfg.Storage.IsZero() {
		var ok bool
		if ext, ok = storage.GetExtension(host, bp.cfg.Storage); !ok {
			return distribution.NewConfigurationError(fmt.Sprintf("storage extension %q not found", bp.cfg.Storage), nil)
		}
	}

	builders := make(map[string]*packageBuilder, len(bp.cfg.Types))
	for _, typ := range bp.cfg.Types {
		var client storage.Client
		if ext != nil {
			var err error
			if client, err = ext.GetClient(ctx, component.KindExtension, bp.cfg.ID(), typ); err != nil {
				_ = closeBuilders(ctx, builders)
				return fmt.Errorf("failed to get storage client for package type %q: %w", typ, err)
			}
		}
		builders[typ] = newPackageBuilder(typ, bp.logger.With(zap.String(zapPackageTypeKey, typ)), client)
	}

	bp.mu.Lock()
	bp.builders = builders
	bp.mu.Unlock()
	bp.logger.Info("Package builders started", zap.Strings("types", bp.cfg.Types))
	return nil
}

// Shutdown closes the storage clients of the builders.
func (bp *builderProvider) Shutdown(ctx context.Context) error {
	bp.mu.Lock()
	builders := bp.builders
	bp.builders = nil
	bp.mu.Unlock()
	return closeBuilders(ctx, builders)
}

// Builder returns the builder of the given package type.
func (bp *builderProvider) Builder(typ string) (packaging.Builder, bool) {
	bp.mu.RLock()
	defer bp.mu.RUnlock()
	b, ok := bp.builders[typ]
	if !ok {
		return nil, false
	}
	return b, true
}

func closeBuilders(ctx context.Context, builders map[string]*packageBuilder) error {
	var errs error
	for _, b := range builders {
		errs = multierr.Append(errs, b.close(ctx))
	}
	return errs
}
