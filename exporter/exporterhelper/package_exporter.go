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

package exporterhelper // import "github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/exporter/exporterhelper"

import (
	"context"
	"errors"

	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component/componenterror"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component/componenthelper"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/distribution"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/packaging"
)

var errNilConfig = errors.New("nil config")

// baseExporter wraps a packaging.Exporter with the component lifecycle. Export calls
// are refused until Start returned without error and after Shutdown was called.
type baseExporter struct {
	component.Component
	id      config.ComponentID
	logger  *zap.Logger
	timeout TimeoutSettings

	startFunc    componenthelper.StartFunc
	shutdownFunc componenthelper.ShutdownFunc

	delegate packaging.Exporter
	started  *atomic.Bool
}

// NewPackageExporter creates a component.Exporter that forwards to pe once started.
// The options may resolve collaborators of pe at Start.
func NewPackageExporter(
	cfg config.Exporter,
	set component.ExporterCreateSettings,
	pe packaging.Exporter,
	options ...Option,
) (component.Exporter, error) {
	if cfg == nil {
		return nil, errNilConfig
	}
	if pe == nil {
		return nil, distribution.NewConfigurationError("nil package exporter", nil)
	}

	be := &baseExporter{
		id:       cfg.ID(),
		logger:   set.Logger,
		timeout:  DefaultTimeoutSettings(),
		delegate: pe,
		started:  atomic.NewBool(false),
	}
	for _, op := range options {
		op(be)
	}
	be.Component = componenthelper.New(
		componenthelper.WithStart(func(ctx context.Context, host component.Host) error {
			if err := be.startFunc.Start(ctx, host); err != nil {
				return err
			}
			be.started.Store(true)
			be.logger.Info("Exporter started", zap.String("exporter", be.id.String()))
			return nil
		}),
		componenthelper.WithShutdown(func(ctx context.Context) error {
			be.started.Store(false)
			return be.shutdownFunc.Shutdown(ctx)
		}),
	)
	return be, nil
}

func (be *baseExporter) ExportPackages(ctx context.Context, rr distribution.ResourceResolver, req *distribution.Request, processor packaging.Processor) error {
	if !be.started.Load() {
		return componenterror.ErrNotStarted
	}
	ctx, cancel := be.timeout.context(ctx)
	defer cancel()
	return be.delegate.ExportPackages(ctx, rr, req, processor)
}

func (be *baseExporter) GetPackage(ctx context.Context, rr distribution.ResourceResolver, id string) (distribution.Package, bool, error) {
	if !be.started.Load() {
		return nil, false, componenterror.ErrNotStarted
	}
	ctx, cancel := be.timeout.context(ctx)
	defer cancel()
	return be.delegate.GetPackage(ctx, rr, id)
}
