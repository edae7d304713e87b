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

package agentexporter // import "github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/exporter/agentexporter"

import (
	"strings"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/distribution"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/exporter/exporterhelper"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/queue"
)

// Config defines configuration for the agent exporter.
type Config struct {
	config.ExporterSettings        `mapstructure:",squash"` // squash ensures fields are correctly decoded in embedded struct
	exporterhelper.TimeoutSettings `mapstructure:",squash"`

	// Name of the exporter, empty for an unnamed exporter.
	Name string `mapstructure:"name"`

	// Queue is the name of the agent queue drained by the exporter. A blank name
	// selects the default queue.
	Queue string `mapstructure:"queue"`

	// DropInvalidItems removes queue items that cannot be materialized instead of
	// failing the export.
	DropInvalidItems bool `mapstructure:"drop.invalid.items"`

	// AgentTarget is the agent extension owning the queue.
	AgentTarget config.ComponentID `mapstructure:"agent.target"`

	// BuilderProvider is the extension materializing queued packages.
	BuilderProvider config.ComponentID `mapstructure:"builder.provider"`
}

var (
	_ config.Exporter       = (*Config)(nil)
	_ config.Unmarshallable = (*Config)(nil)
)

// Unmarshal decodes the exporter section and normalizes the queue name.
func (cfg *Config) Unmarshal(componentParser *config.Map) error {
	if componentParser != nil {
		if err := componentParser.UnmarshalExact(cfg); err != nil {
			return err
		}
	}
	cfg.Queue = normalizeQueueName(cfg.Queue)
	return nil
}

// Validate checks that both collaborators are set.
func (cfg *Config) Validate() error {
	if cfg.AgentTarget.IsZero() {
		return distribution.NewConfigurationError("agent.target must be set", nil)
	}
	if cfg.BuilderProvider.IsZero() {
		return distribution.NewConfigurationError("builder.provider must be set", nil)
	}
	if cfg.Timeout < 0 {
		return distribution.NewConfigurationError("timeout must not be negative", nil)
	}
	return nil
}

func normalizeQueueName(name string) string {
	if name = strings.TrimSpace(name); name == "" {
		return queue.DefaultName
	}
	return name
}
