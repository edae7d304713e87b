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

package agentexporter

import (
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component/componenttest"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config/configtest"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/distribution"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/exporter/exporterhelper"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/queue"
)

func TestLoadConfig(t *testing.T) {
	factories, err := componenttest.NopFactories()
	assert.NoError(t, err)

	factory := NewFactory()
	factories.Exporters[typeStr] = factory
	cfg, err := configtest.LoadConfig(path.Join(".", "testdata", "config.yaml"), factories)

	require.NoError(t, err)
	require.NotNil(t, cfg)
	require.Len(t, cfg.Exporters, 3)

	assert.Equal(t, factory.CreateDefaultConfig(), cfg.Exporters[config.NewID(typeStr)])

	assert.Equal(t,
		&Config{
			ExporterSettings: config.NewExporterSettings(config.NewIDWithName(typeStr, "publish")),
			TimeoutSettings:  exporterhelper.TimeoutSettings{Timeout: 10 * time.Second},
			Name:             "publish",
			Queue:            queue.DefaultName,
			DropInvalidItems: true,
			AgentTarget:      config.NewIDWithName("queue_agent", "publish"),
			BuilderProvider:  config.NewIDWithName("package_builder", "vlt"),
		},
		cfg.Exporters[config.NewIDWithName(typeStr, "publish")])

	props := cfg.Exporters[config.NewIDWithName(typeStr, "properties")].(*Config)
	assert.Equal(t, "replication", props.Queue)
	assert.True(t, props.DropInvalidItems)
	assert.Equal(t, "", props.Name)
}

func TestConfigUnmarshalNormalizesQueue(t *testing.T) {
	tests := []struct {
		name  string
		input map[string]interface{}
		queue string
	}{
		{name: "missing", queue: queue.DefaultName},
		{name: "empty", input: map[string]interface{}{"queue": ""}, queue: queue.DefaultName},
		{name: "blank", input: map[string]interface{}{"queue": " \t"}, queue: queue.DefaultName},
		{name: "trimmed", input: map[string]interface{}{"queue": " publish "}, queue: "publish"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := createDefaultConfig().(*Config)
			cfg.Queue = ""
			var cm *config.Map
			if tt.input != nil {
				cm = config.NewMapFromStringMap(tt.input)
			}
			require.NoError(t, cfg.Unmarshal(cm))
			assert.Equal(t, tt.queue, cfg.Queue)
		})
	}

	cfg := createDefaultConfig().(*Config)
	assert.Error(t, cfg.Unmarshal(config.NewMapFromStringMap(map[string]interface{}{"unknown": 1})))
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{name: "default", mutate: func(*Config) {}},
		{
			name:    "no agent",
			mutate:  func(cfg *Config) { cfg.AgentTarget = config.ComponentID{} },
			wantErr: "agent.target must be set",
		},
		{
			name:    "no builder provider",
			mutate:  func(cfg *Config) { cfg.BuilderProvider = config.ComponentID{} },
			wantErr: "builder.provider must be set",
		},
		{
			name:    "negative timeout",
			mutate:  func(cfg *Config) { cfg.Timeout = -time.Second },
			wantErr: "timeout must not be negative",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := createDefaultConfig().(*Config)
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
			assert.True(t, distribution.IsConfiguration(err))
		})
	}
}
