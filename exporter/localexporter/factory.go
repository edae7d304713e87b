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

package localexporter // import "github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/exporter/localexporter"

import (
	"context"
	"fmt"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/distribution"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/exporter/exporterhelper"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/packaging"
)

const (
	// The value of "type" key in configuration.
	typeStr = "local"

	defaultPackageType = "default"
)

// NewFactory creates a factory for the local exporter.
func NewFactory() component.ExporterFactory {
	return exporterhelper.NewFactory(
		typeStr,
		createDefaultConfig,
		createExporter)
}

func createDefaultConfig() config.Exporter {
	return &Config{
		ExporterSettings: config.NewExporterSettings(config.NewID(typeStr)),
		TimeoutSettings:  exporterhelper.DefaultTimeoutSettings(),
		BuilderProvider:  config.NewID("package_builder"),
		PackageType:      defaultPackageType,
	}
}

func createExporter(
	_ context.Context,
	set component.ExporterCreateSettings,
	cfg config.Exporter,
) (component.Exporter, error) {
	eCfg := cfg.(*Config)
	if err := eCfg.Validate(); err != nil {
		return nil, err
	}
	le := newLocalExporter(eCfg, set.Logger)
	return exporterhelper.NewPackageExporter(
		cfg,
		set,
		le,
		exporterhelper.WithStart(func(_ context.Context, host component.Host) error {
			ext, ok := host.GetExtensions()[eCfg.BuilderProvider]
			if !ok {
				return distribution.NewConfigurationError(fmt.Sprintf("builder provider %q not found", eCfg.BuilderProvider), nil)
			}
			provider, ok := ext.(packaging.BuilderProvider)
			if !ok {
				return distribution.NewConfigurationError(fmt.Sprintf("extension %q is not a builder provider", eCfg.BuilderProvider), nil)
			}
			le.setProvider(provider)
			return nil
		}),
		exporterhelper.WithTimeout(eCfg.TimeoutSettings),
	)
}
