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

package service // import "github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/service"

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config"
)

const (
	zapKindKey      = "kind"
	zapKindExporter = "exporter"
	zapKindExt      = "extension"
	zapNameKey      = "name"
)

type builtExtension struct {
	id  config.ComponentID
	ext component.Extension
}

// builtExtensions keeps the extensions in start order.
type builtExtensions []builtExtension

func (exts builtExtensions) startAll(ctx context.Context, logger *zap.Logger, host component.Host) error {
	for _, be := range exts {
		extLogger := extensionLogger(logger, be.id)
		extLogger.Info("Extension is starting...")
		if err := be.ext.Start(ctx, host); err != nil {
			return fmt.Errorf("failed to start extension %q: %w", be.id, err)
		}
		extLogger.Info("Extension started.")
	}
	return nil
}

// shutdownAll stops the extensions in reverse start order.
func (exts builtExtensions) shutdownAll(ctx context.Context) error {
	var errs error
	for i := len(exts) - 1; i >= 0; i-- {
		errs = multierr.Append(errs, exts[i].ext.Shutdown(ctx))
	}
	return errs
}

func (exts builtExtensions) toMap() map[config.ComponentID]component.Extension {
	result := make(map[config.ComponentID]component.Extension, len(exts))
	for _, be := range exts {
		result[be.id] = be.ext
	}
	return result
}

type builtExporter struct {
	id  config.ComponentID
	exp component.Exporter
}

type builtExporters []builtExporter

func (exps builtExporters) startAll(ctx context.Context, logger *zap.Logger, host component.Host) error {
	for _, be := range exps {
		expLogger := exporterLogger(logger, be.id)
		expLogger.Info("Exporter is starting...")
		if err := be.exp.Start(ctx, host); err != nil {
			return fmt.Errorf("failed to start exporter %q: %w", be.id, err)
		}
		expLogger.Info("Exporter started.")
	}
	return nil
}

func (exps builtExporters) shutdownAll(ctx context.Context) error {
	var errs error
	for i := len(exps) - 1; i >= 0; i-- {
		errs = multierr.Append(errs, exps[i].exp.Shutdown(ctx))
	}
	return errs
}

func buildExtensions(
	ctx context.Context,
	settings component.TelemetrySettings,
	buildInfo component.BuildInfo,
	cfg *config.Config,
	factories map[config.Type]component.ExtensionFactory,
) (builtExtensions, error) {
	ids := cfg.Service.Extensions
	if len(ids) == 0 {
		ids = make([]config.ComponentID, 0, len(cfg.Extensions))
		for id := range cfg.Extensions {
			ids = append(ids, id)
		}
		sortIDs(ids)
	}

	exts := make(builtExtensions, 0, len(ids))
	for _, id := range ids {
		extCfg, existsCfg := cfg.Extensions[id]
		if !existsCfg {
			return nil, fmt.Errorf("extension %q is not configured", id)
		}
		factory, existsFactory := factories[id.Type()]
		if !existsFactory {
			return nil, fmt.Errorf("extension factory for type %q is not configured", id.Type())
		}

		set := component.ExtensionCreateSettings{
			TelemetrySettings: settings,
			BuildInfo:         buildInfo,
		}
		set.TelemetrySettings.Logger = extensionLogger(settings.Logger, id)
		ext, err := factory.CreateExtension(ctx, set, extCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create extension %q: %w", id, err)
		}
		if ext == nil {
			return nil, fmt.Errorf("factory for %q produced a nil extension", id)
		}
		exts = append(exts, builtExtension{id: id, ext: ext})
	}
	return exts, nil
}

func buildExporters(
	ctx context.Context,
	settings component.TelemetrySettings,
	buildInfo component.BuildInfo,
	cfg *config.Config,
	factories map[config.Type]component.ExporterFactory,
) (builtExporters, error) {
	ids := cfg.Service.Exporters
	if len(ids) == 0 {
		ids = make([]config.ComponentID, 0, len(cfg.Exporters))
		for id := range cfg.Exporters {
			ids = append(ids, id)
		}
		sortIDs(ids)
	}

	exps := make(builtExporters, 0, len(ids))
	for _, id := range ids {
		expCfg, existsCfg := cfg.Exporters[id]
		if !existsCfg {
			return nil, fmt.Errorf("exporter %q is not configured", id)
		}
		factory, existsFactory := factories[id.Type()]
		if !existsFactory {
			return nil, fmt.Errorf("exporter factory not found for type: %s", id.Type())
		}

		set := component.ExporterCreateSettings{
			TelemetrySettings: settings,
			BuildInfo:         buildInfo,
		}
		set.TelemetrySettings.Logger = exporterLogger(settings.Logger, id)
		exp, err := factory.CreateExporter(ctx, set, expCfg)
		if err != nil {
			return nil, fmt.Errorf("error creating %v exporter: %w", id, err)
		}
		set.Logger.Info("Exporter was built.")
		exps = append(exps, builtExporter{id: id, exp: exp})
	}
	return exps, nil
}

func sortIDs(ids []config.ComponentID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
}

func extensionLogger(logger *zap.Logger, id config.ComponentID) *zap.Logger {
	return logger.With(
		zap.String(zapKindKey, zapKindExt),
		zap.String(zapNameKey, id.String()))
}

func exporterLogger(logger *zap.Logger, id config.ComponentID) *zap.Logger {
	return logger.With(
		zap.String(zapKindKey, zapKindExporter),
		zap.String(zapNameKey, id.String()))
}
