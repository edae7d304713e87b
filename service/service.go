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

// Package service builds the configured extensions and exporters and runs them as
// one service.
package service // import "github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/service"

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config"
)

// Settings holds configuration for building a new service.
type Settings struct {
	// BuildInfo provides service start information.
	BuildInfo component.BuildInfo

	// Factories component factories.
	Factories component.Factories

	// AsyncErrorChannel is the channel that is used to report fatal errors.
	AsyncErrorChannel chan error

	// LoggingOptions provides a way to change behavior of zap logging.
	LoggingOptions []zap.Option

	// Logger replaces the logger built from the telemetry configuration when set.
	Logger *zap.Logger
}

// Service represents the implementation of a component.Host.
type Service struct {
	buildInfo         component.BuildInfo
	telemetrySettings component.TelemetrySettings
	host              *serviceHost

	extensions builtExtensions
	exporters  builtExporters
}

// New builds the extensions and exporters of cfg. cfg must be valid.
func New(ctx context.Context, set Settings, cfg *config.Config) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("nil config")
	}

	logger := set.Logger
	if logger == nil {
		var err error
		if logger, err = NewLogger(cfg.Service.Telemetry.Logs, set.LoggingOptions...); err != nil {
			return nil, fmt.Errorf("failed to get logger: %w", err)
		}
	}

	srv := &Service{
		buildInfo:         set.BuildInfo,
		telemetrySettings: component.TelemetrySettings{Logger: logger},
		host:              &serviceHost{asyncErrorChannel: set.AsyncErrorChannel},
	}

	var err error
	if srv.extensions, err = buildExtensions(ctx, srv.telemetrySettings, srv.buildInfo, cfg, set.Factories.Extensions); err != nil {
		return nil, fmt.Errorf("cannot build extensions: %w", err)
	}
	srv.host.extensions = srv.extensions.toMap()

	if srv.exporters, err = buildExporters(ctx, srv.telemetrySettings, srv.buildInfo, cfg, set.Factories.Exporters); err != nil {
		return nil, fmt.Errorf("cannot build exporters: %w", err)
	}
	return srv, nil
}

// Start starts the extensions then the exporters. If Start fails Shutdown should be
// called to ensure a clean state.
func (srv *Service) Start(ctx context.Context) error {
	srv.telemetrySettings.Logger.Info("Starting "+srv.buildInfo.Command+"...",
		zap.String("Version", srv.buildInfo.Version),
		zap.Int("NumCPU", runtime.NumCPU()),
	)

	if err := srv.extensions.startAll(ctx, srv.telemetrySettings.Logger, srv.host); err != nil {
		return fmt.Errorf("failed to start extensions: %w", err)
	}
	if err := srv.exporters.startAll(ctx, srv.telemetrySettings.Logger, srv.host); err != nil {
		return fmt.Errorf("cannot start exporters: %w", err)
	}

	srv.telemetrySettings.Logger.Info("Everything is ready. Begin running and processing data.")
	return nil
}

// Shutdown stops the exporters then the extensions.
func (srv *Service) Shutdown(ctx context.Context) error {
	// Accumulate errors and proceed with shutting down remaining components.
	var errs error

	srv.telemetrySettings.Logger.Info("Starting shutdown...")

	if err := srv.exporters.shutdownAll(ctx); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("failed to shutdown exporters: %w", err))
	}
	if err := srv.extensions.shutdownAll(ctx); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("failed to shutdown extensions: %w", err))
	}

	srv.telemetrySettings.Logger.Info("Shutdown complete.")
	_ = srv.telemetrySettings.Logger.Sync()
	return errs
}

// Host returns the host handed to the components.
func (srv *Service) Host() component.Host {
	return srv.host
}

// Logger returns the service logger.
func (srv *Service) Logger() *zap.Logger {
	return srv.telemetrySettings.Logger
}

// Exporter returns the exporter built for id.
func (srv *Service) Exporter(id config.ComponentID) (component.Exporter, bool) {
	for _, be := range srv.exporters {
		if be.id == id {
			return be.exp, true
		}
	}
	return nil, false
}

// ExporterIDs returns the ids of the built exporters in start order.
func (srv *Service) ExporterIDs() []config.ComponentID {
	ids := make([]config.ComponentID, 0, len(srv.exporters))
	for _, be := range srv.exporters {
		ids = append(ids, be.id)
	}
	return ids
}
