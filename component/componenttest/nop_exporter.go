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

package componenttest // import "github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component/componenttest"

import (
	"context"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component/componenthelper"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/distribution"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/packaging"
)

// nopExporterConfig stores the configuration for the nop exporter.
type nopExporterConfig struct {
	config.ExporterSettings `mapstructure:",squash"` // squash ensures fields are correctly decoded in embedded struct
}

// nopExporterFactory is factory for nopExporter.
type nopExporterFactory struct{}

var nopExporterFactoryInstance = &nopExporterFactory{}

// NewNopExporterFactory returns a component.ExporterFactory that constructs nop exporters.
func NewNopExporterFactory() component.ExporterFactory {
	return nopExporterFactoryInstance
}

// Type gets the type of the Exporter config created by this factory.
func (f *nopExporterFactory) Type() config.Type {
	return "nop"
}

// CreateDefaultConfig creates the default configuration for the Exporter.
func (f *nopExporterFactory) CreateDefaultConfig() config.Exporter {
	return &nopExporterConfig{
		ExporterSettings: config.NewExporterSettings(config.NewID("nop")),
	}
}

// CreateExporter implements component.ExporterFactory interface.
func (f *nopExporterFactory) CreateExporter(
	_ context.Context,
	_ component.ExporterCreateSettings,
	_ config.Exporter,
) (component.Exporter, error) {
	return nopExporterInstance, nil
}

var nopExporterInstance = &nopExporter{
	Component: componenthelper.New(),
}

// nopExporter exports nothing and finds no package.
type nopExporter struct {
	component.Component
}

func (ne *nopExporter) ExportPackages(context.Context, distribution.ResourceResolver, *distribution.Request, packaging.Processor) error {
	return nil
}

func (ne *nopExporter) GetPackage(context.Context, distribution.ResourceResolver, string) (distribution.Package, bool, error) {
	return nil, false, nil
}
