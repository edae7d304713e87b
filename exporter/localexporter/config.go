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
	"strings"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/distribution"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/exporter/exporterhelper"
)

// Config defines configuration for the local exporter.
type Config struct {
	config.ExporterSettings        `mapstructure:",squash"`
	exporterhelper.TimeoutSettings `mapstructure:",squash"`

	// BuilderProvider is the extension building the exported packages.
	BuilderProvider config.ComponentID `mapstructure:"builder.provider"`

	// PackageType is the type of the exported packages.
	PackageType string `mapstructure:"package.type"`
}

var _ config.Exporter = (*Config)(nil)

// Validate checks the builder provider and the package type.
func (cfg *Config) Validate() error {
	if cfg.BuilderProvider.IsZero() {
		return distribution.NewConfigurationError("builder.provider must be set", nil)
	}
	if strings.TrimSpace(cfg.PackageType) == "" {
		return distribution.NewConfigurationError("package.type must not be blank", nil)
	}
	return nil
}
