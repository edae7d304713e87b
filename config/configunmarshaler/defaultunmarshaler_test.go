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

package configunmarshaler

import (
	"context"
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component/componenttest"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config/configmapprovider"
)

type exampleExtensionCfg struct {
	config.ExtensionSettings `mapstructure:",squash"`
	ExtraSetting             string `mapstructure:"extra"`
}

type exampleExtensionFactory struct{}

func (f *exampleExtensionFactory) Type() config.Type { return "example" }

func (f *exampleExtensionFactory) CreateDefaultConfig() config.Extension {
	return &exampleExtensionCfg{
		ExtensionSettings: config.NewExtensionSettings(config.NewID("example")),
		ExtraSetting:      "extra string setting",
	}
}

func (f *exampleExtensionFactory) CreateExtension(context.Context, component.ExtensionCreateSettings, config.Extension) (component.Extension, error) {
	return nil, nil
}

type exampleExporterCfg struct {
	config.ExporterSettings `mapstructure:",squash"`
	ExtraSetting            string `mapstructure:"extra"`
	Enabled                 bool   `mapstructure:"enabled"`
}

type exampleExporterFactory struct{}

func (f *exampleExporterFactory) Type() config.Type { return "example" }

func (f *exampleExporterFactory) CreateDefaultConfig() config.Exporter {
	return &exampleExporterCfg{
		ExporterSettings: config.NewExporterSettings(config.NewID("example")),
		ExtraSetting:     "some export string",
	}
}

func (f *exampleExporterFactory) CreateExporter(context.Context, component.ExporterCreateSettings, config.Exporter) (component.Exporter, error) {
	return nil, nil
}

func exampleComponents(t *testing.T) component.Factories {
	factories, err := componenttest.NopFactories()
	require.NoError(t, err)
	factories.Extensions["example"] = &exampleExtensionFactory{}
	factories.Exporters["example"] = &exampleExporterFactory{}
	return factories
}

func TestDecodeConfig(t *testing.T) {
	require.NoError(t, os.Setenv("PKGDIST_EXAMPLE_VALUE", "from env"))
	defer os.Unsetenv("PKGDIST_EXAMPLE_VALUE")

	// Unmarshal the config
	cfg, err := loadConfigFile(t, path.Join(".", "testdata", "valid-config.yaml"), exampleComponents(t))
	require.NoError(t, err, "Unable to load config")
	require.NoError(t, cfg.Validate())

	// Verify extensions.
	assert.Equal(t, 2, len(cfg.Extensions))
	assert.Equal(t, "some string", cfg.Extensions[config.NewIDWithName("example", "1")].(*exampleExtensionCfg).ExtraSetting)

	// Verify exporters
	assert.Equal(t, 2, len(cfg.Exporters), "Incorrect exporters count")

	assert.Equal(t,
		&exampleExporterCfg{
			ExporterSettings: config.NewExporterSettings(config.NewID("example")),
			ExtraSetting:     "from env",
			Enabled:          true,
		},
		cfg.Exporters[config.NewID("example")],
		"Did not load exporter config correctly")

	assert.Equal(t,
		&exampleExporterCfg{
			ExporterSettings: config.NewExporterSettings(config.NewIDWithName("example", "myexporter")),
			ExtraSetting:     "some export string 2",
			Enabled:          true,
		},
		cfg.Exporters[config.NewIDWithName("example", "myexporter")],
		"Did not load exporter config correctly")

	// Verify Service
	assert.Equal(t,
		config.ServiceTelemetry{
			Logs: config.ServiceTelemetryLogs{
				Level:       "debug",
				Development: true,
				Encoding:    "json",
			},
		}, cfg.Service.Telemetry)
	assert.Equal(t, []config.ComponentID{config.NewIDWithName("example", "1")}, cfg.Service.Extensions)
	assert.Equal(t, []config.ComponentID{config.NewID("example"), config.NewIDWithName("example", "myexporter")}, cfg.Service.Exporters)
}

func TestDecodeConfig_Invalid(t *testing.T) {
	var testCases = []struct {
		name            string          // test case name (also file name containing config yaml)
		expected        configErrorCode // expected error (if nil any error is acceptable)
		expectedMessage string          // string that the error must contain
	}{
		{name: "unknown-extension-type", expected: errUnknownType, expectedMessage: "extensions"},
		{name: "unknown-exporter-type", expected: errUnknownType, expectedMessage: "exporters"},
		{name: "unknown-section", expected: errUnmarshalTopLevelStructureError, expectedMessage: "receivers"},
		{name: "invalid-exporter-name", expected: errUnmarshalTopLevelStructureError},
		{name: "invalid-extension-setting", expected: errUnmarshalTopLevelStructureError, expectedMessage: "unknown_setting"},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			_, err := loadConfigFile(t, path.Join(".", "testdata", test.name+".yaml"), exampleComponents(t))
			require.Error(t, err)
			cfgErr, ok := err.(*configError)
			if !ok {
				t.Errorf("expected config error code %v but got a different error '%v'", test.expected, err)
				return
			}
			assert.Equal(t, test.expected, cfgErr.code, err)
			if test.expectedMessage != "" {
				assert.Contains(t, cfgErr.Error(), test.expectedMessage)
			}
			assert.NotEmpty(t, cfgErr.Error(), "returned config error %v with empty error message", cfgErr.code)
		})
	}
}

func TestLoadEmpty(t *testing.T) {
	_, err := loadConfigFile(t, path.Join(".", "testdata", "empty-config.yaml"), exampleComponents(t))
	assert.NoError(t, err)
}

func TestLoadEmptyAllSections(t *testing.T) {
	cfg, err := loadConfigFile(t, path.Join(".", "testdata", "empty-all-sections.yaml"), exampleComponents(t))
	require.NoError(t, err)

	// Default logger settings are kept.
	assert.Equal(t, config.ServiceTelemetryLogs{Level: "info", Encoding: "console"}, cfg.Service.Telemetry.Logs)
}

func TestLoadExporter(t *testing.T) {
	componentConfig := config.NewMapFromStringMap(map[string]interface{}{"extra": "loaded"})
	cfg, err := LoadExporter(componentConfig, config.NewIDWithName("example", "loaded"), &exampleExporterFactory{})
	require.NoError(t, err)
	assert.Equal(t, config.NewIDWithName("example", "loaded"), cfg.ID())
	assert.Equal(t, "loaded", cfg.(*exampleExporterCfg).ExtraSetting)
}

func TestLoadExtension(t *testing.T) {
	componentConfig := config.NewMapFromStringMap(map[string]interface{}{"extra": "loaded"})
	cfg, err := LoadExtension(componentConfig, config.NewIDWithName("example", "loaded"), &exampleExtensionFactory{})
	require.NoError(t, err)
	assert.Equal(t, config.NewIDWithName("example", "loaded"), cfg.ID())
	assert.Equal(t, "loaded", cfg.(*exampleExtensionCfg).ExtraSetting)

	componentConfig = config.NewMapFromStringMap(map[string]interface{}{"unknown": "setting"})
	_, err = LoadExtension(componentConfig, config.NewID("example"), &exampleExtensionFactory{})
	assert.Error(t, err)
}

func loadConfigFile(t *testing.T, fileName string, factories component.Factories) (*config.Config, error) {
	v, err := configmapprovider.NewFile(fileName).Retrieve(context.Background())
	require.NoError(t, err)

	// Unmarshal the config from the config.Map using the given factories.
	return NewDefault().Unmarshal(v.Get(), factories)
}
