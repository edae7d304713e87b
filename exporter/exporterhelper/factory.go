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

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config"
)

// FactoryOption apply changes to ExporterOptions.
type FactoryOption func(o *factory)

// CreateDefaultConfig is the equivalent of component.ExporterFactory.CreateDefaultConfig()
type CreateDefaultConfig func() config.Exporter

// CreateExporter is the equivalent of component.ExporterFactory.CreateExporter()
type CreateExporter func(context.Context, component.ExporterCreateSettings, config.Exporter) (component.Exporter, error)

type factory struct {
	cfgType             config.Type
	createDefaultConfig CreateDefaultConfig
	createExporter      CreateExporter
}

// NewFactory returns a component.ExporterFactory.
func NewFactory(
	cfgType config.Type,
	createDefaultConfig CreateDefaultConfig,
	createExporter CreateExporter,
	options ...FactoryOption) component.ExporterFactory {
	f := &factory{
		cfgType:             cfgType,
		createDefaultConfig: createDefaultConfig,
		createExporter:      createExporter,
	}
	for _, opt := range options {
		opt(f)
	}
	return f
}

// Type gets the type of the Exporter config created by this factory.
func (f *factory) Type() config.Type {
	return f.cfgType
}

// CreateDefaultConfig creates the default configuration for exporter.
func (f *factory) CreateDefaultConfig() config.Exporter {
	return f.createDefaultConfig()
}

// CreateExporter creates a component.Exporter based on this config.
func (f *factory) CreateExporter(
	ctx context.Context,
	set component.ExporterCreateSettings,
	cfg config.Exporter) (component.Exporter, error) {
	return f.createExporter(ctx, set, cfg)
}
