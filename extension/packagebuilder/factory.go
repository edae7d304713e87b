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

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/extension/extensionhelper"
)

const (
	// The value of extension "type" in configuration.
	typeStr config.Type = "package_builder"

	// DefaultPackageType is the package type built when none is configured.
	DefaultPackageType = "default"
)

// NewFactory creates a factory for the package builder extension.
func NewFactory() component.ExtensionFactory {
	return extensionhelper.NewFactory(
		typeStr,
		createDefaultConfig,
		createExtension)
}

func createDefaultConfig() config.Extension {
	return &Config{
		ExtensionSettings: config.NewExtensionSettings(config.NewID(typeStr)),
		Types:             []string{DefaultPackageType},
	}
}

func createExtension(
	_ context.Context,
	set component.ExtensionCreateSettings,
	cfg config.Extension,
) (component.Extension, error) {
	return newBuilderProvider(set.Logger, cfg.(*Config))
}
