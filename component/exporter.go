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

package component // import "github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component"

import (
	"context"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/packaging"
)

// Exporter exports distribution packages to a processor.
type Exporter interface {
	Component
	packaging.Exporter
}

// ExporterCreateSettings configures Exporter creators.
type ExporterCreateSettings struct {
	TelemetrySettings

	// BuildInfo can be used by components for informational purposes
	BuildInfo BuildInfo
}

// ExporterFactory can create Exporter.
type ExporterFactory interface {
	Factory

	// CreateDefaultConfig creates the default configuration for the Exporter.
	// This method can be called multiple times depending on the pipeline
	// configuration and should not cause side-effects that prevent the creation
	// of multiple instances of the Exporter.
	// The object returned by this method needs to pass the checks implemented by
	// 'componenttest.CheckConfigStruct'. It is recommended to have these checks in the
	// tests of any implementation of the Factory interface.
	CreateDefaultConfig() config.Exporter

	// CreateExporter creates an exporter based on this config.
	// If the config is not valid, an error will be returned instead.
	CreateExporter(ctx context.Context, set ExporterCreateSettings, cfg config.Exporter) (Exporter, error)
}
