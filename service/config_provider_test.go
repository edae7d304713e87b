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

package service

import (
	"context"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/exporter/agentexporter"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/service/defaultcomponents"
)

func TestDefaultConfigProvider(t *testing.T) {
	factories, err := defaultcomponents.Components()
	require.NoError(t, err)

	tests := []struct {
		name      string
		sources   ConfigSources
		queue     string
		dropItems bool
	}{
		{
			name:      "file",
			sources:   ConfigSources{Files: []string{path.Join("testdata", "service.yaml")}},
			queue:     "default",
			dropItems: true,
		},
		{
			name: "properties file",
			sources: ConfigSources{
				Files:           []string{path.Join("testdata", "service.yaml")},
				PropertiesFiles: []string{"exporters::agent/publish=" + path.Join("testdata", "publish.properties")},
			},
			queue:     "replication",
			dropItems: false,
		},
		{
			name: "set overrides properties file",
			sources: ConfigSources{
				Files:           []string{path.Join("testdata", "service.yaml")},
				PropertiesFiles: []string{"exporters::agent/publish=" + path.Join("testdata", "publish.properties")},
				Sets:            []string{"exporters::agent/publish::drop.invalid.items=true"},
			},
			queue:     "replication",
			dropItems: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cp, err := NewDefaultConfigProvider(tt.sources)
			require.NoError(t, err)
			cfg, err := cp.Get(context.Background(), factories)
			require.NoError(t, err)

			expCfg := cfg.Exporters[config.NewIDWithName("agent", "publish")].(*agentexporter.Config)
			assert.Equal(t, tt.queue, expCfg.Queue)
			assert.Equal(t, tt.dropItems, expCfg.DropInvalidItems)
			assert.NoError(t, cp.Shutdown(context.Background()))
		})
	}
}

func TestDefaultConfigProvider_Errors(t *testing.T) {
	factories, err := defaultcomponents.Components()
	require.NoError(t, err)

	tests := []struct {
		name    string
		sources ConfigSources
		wantErr string
	}{
		{
			name:    "no files",
			wantErr: "at least one config file must be provided",
		},
		{
			name:    "set without equal sign",
			sources: ConfigSources{Files: []string{"x.yaml"}, Sets: []string{"exporters::agent::queue"}},
			wantErr: `invalid set "exporters::agent::queue": missing equal sign`,
		},
		{
			name:    "set without path",
			sources: ConfigSources{Files: []string{"x.yaml"}, Sets: []string{"queue=publish"}},
			wantErr: `invalid set "queue=publish": missing component path`,
		},
		{
			name:    "properties file without path",
			sources: ConfigSources{Files: []string{"x.yaml"}, PropertiesFiles: []string{"publish.properties"}},
			wantErr: `invalid properties file "publish.properties": expected <path>=<file>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDefaultConfigProvider(tt.sources)
			assert.EqualError(t, err, tt.wantErr)
		})
	}

	t.Run("invalid exporter setting", func(t *testing.T) {
		cp, err := NewDefaultConfigProvider(ConfigSources{
			Files: []string{path.Join("testdata", "service.yaml")},
			Sets:  []string{"exporters::agent/publish::agent.target="},
		})
		require.NoError(t, err)
		_, err = cp.Get(context.Background(), factories)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})

	t.Run("missing file", func(t *testing.T) {
		cp, err := NewDefaultConfigProvider(ConfigSources{Files: []string{path.Join("testdata", "missing.yaml")}})
		require.NoError(t, err)
		_, err = cp.Get(context.Background(), factories)
		assert.Error(t, err)
	})
}
