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

// Package configunmarshaler turns a raw config.Map into the typed service configuration
// using the component factories.
package configunmarshaler // import "github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config/configunmarshaler"

import (
	"fmt"
	"os"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config"
)

// ConfigUnmarshaler is the interface that unmarshalls the service configuration from the config.Map.
type ConfigUnmarshaler interface {
	// Unmarshal the configuration from the given parser and factories.
	Unmarshal(v *config.Map, factories component.Factories) (*config.Config, error)
}

// These are errors that can be returned by Unmarshal(). Note that error codes are not part
// of Unmarshal()'s public API, they are for internal unit testing only.
type configErrorCode int

const (
	// Skip 0, start errors codes from 1.
	_ configErrorCode = iota

	errUnknownType
	errUnmarshalTopLevelStructureError
)

type configError struct {
	// Human readable error message.
	msg string

	// Internal error code.
	code configErrorCode
}

func (e *configError) Error() string {
	return e.msg
}

// YAML top-level configuration keys.
const (
	// extensionsKeyName is the configuration key name for extensions section.
	extensionsKeyName = "extensions"

	// exportersKeyName is the configuration key name for exporters section.
	exportersKeyName = "exporters"
)

type configSettings struct {
	Exporters  map[config.ComponentID]map[string]interface{} `mapstructure:"exporters"`
	Extensions map[config.ComponentID]map[string]interface{} `mapstructure:"extensions"`
	Service    config.Service                                `mapstructure:"service"`
}

type defaultUnmarshaler struct{}

// NewDefault returns a default ConfigUnmarshaler that unmarshalls every configuration
// using the custom unmarshaler if present or default to strict
func NewDefault() ConfigUnmarshaler {
	return &defaultUnmarshaler{}
}

// Unmarshal the Config from a config.Map.
// After the config is unmarshaled, `Validate()` must be called to validate.
func (*defaultUnmarshaler) Unmarshal(v *config.Map, factories component.Factories) (*config.Config, error) {
	var cfg config.Config

	// Struct to validate top level sections.
	rawCfg := configSettings{
		// Defaults of the service logger.
		Service: config.Service{
			Telemetry: config.ServiceTelemetry{
				Logs: config.ServiceTelemetryLogs{
					Level:       "info",
					Development: false,
					Encoding:    "console",
				},
			},
		},
	}
	if err := v.UnmarshalExact(&rawCfg); err != nil {
		return nil, &configError{
			code: errUnmarshalTopLevelStructureError,
			msg:  fmt.Sprintf("error reading top level configuration sections: %s", err.Error()),
		}
	}

	// Start with the service extensions.
	extensions, err := unmarshalExtensions(rawCfg.Extensions, factories.Extensions)
	if err != nil {
		return nil, err
	}
	cfg.Extensions = extensions

	exporters, err := unmarshalExporters(rawCfg.Exporters, factories.Exporters)
	if err != nil {
		return nil, err
	}
	cfg.Exporters = exporters

	cfg.Service = rawCfg.Service
	return &cfg, nil
}

func errorUnknownType(component string, id config.ComponentID) error {
	return &configError{
		code: errUnknownType,
		msg:  fmt.Sprintf("unknown %s type %q for %v", component, id.Type(), id),
	}
}

func errorUnmarshalError(component string, id config.ComponentID, err error) error {
	return &configError{
		code: errUnmarshalTopLevelStructureError,
		msg:  fmt.Sprintf("error reading %s configuration for %v: %v", component, id, err),
	}
}

// componentConfig is the part shared by config.Extension and config.Exporter.
type componentConfig interface {
	SetIDName(idName string)
}

// loadComponent creates the default config of id through newDefault and applies the
// user settings of section on top of it.
func loadComponent(kind string, section *config.Map, id config.ComponentID, newDefault func() componentConfig) (componentConfig, error) {
	cfg := newDefault()
	cfg.SetIDName(id.Name())
	if err := unmarshal(section, cfg); err != nil {
		return nil, errorUnmarshalError(kind, id, err)
	}
	return cfg, nil
}

// LoadExtension loads an extension config from section using the provided factory.
func LoadExtension(section *config.Map, id config.ComponentID, factory component.ExtensionFactory) (config.Extension, error) {
	cfg, err := loadComponent(extensionsKeyName, section, id, func() componentConfig { return factory.CreateDefaultConfig() })
	if err != nil {
		return nil, err
	}
	return cfg.(config.Extension), nil
}

// LoadExporter loads an exporter config from section using the provided factory.
func LoadExporter(section *config.Map, id config.ComponentID, factory component.ExporterFactory) (config.Exporter, error) {
	cfg, err := loadComponent(exportersKeyName, section, id, func() componentConfig { return factory.CreateDefaultConfig() })
	if err != nil {
		return nil, err
	}
	return cfg.(config.Exporter), nil
}

func unmarshalExtensions(exts map[config.ComponentID]map[string]interface{}, factories map[config.Type]component.ExtensionFactory) (config.Extensions, error) {
	extensions := make(config.Extensions, len(exts))
	for id, value := range exts {
		factory, ok := factories[id.Type()]
		if !ok || factory == nil {
			return nil, errorUnknownType(extensionsKeyName, id)
		}
		extCfg, err := LoadExtension(config.NewMapFromStringMap(expandEnvMap(value)), id, factory)
		if err != nil {
			return nil, err
		}
		extensions[id] = extCfg
	}
	return extensions, nil
}

func unmarshalExporters(exps map[config.ComponentID]map[string]interface{}, factories map[config.Type]component.ExporterFactory) (config.Exporters, error) {
	exporters := make(config.Exporters, len(exps))
	for id, value := range exps {
		factory, ok := factories[id.Type()]
		if !ok || factory == nil {
			return nil, errorUnknownType(exportersKeyName, id)
		}
		expCfg, err := LoadExporter(config.NewMapFromStringMap(expandEnvMap(value)), id, factory)
		if err != nil {
			return nil, err
		}
		exporters[id] = expCfg
	}
	return exporters, nil
}

// expandEnvMap goes recursively through a raw component configuration and expands
// environment variables in its string values.
func expandEnvMap(in map[string]interface{}) map[string]interface{} {
	if in == nil {
		return nil
	}
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		out[k] = expandEnvValue(v)
	}
	return out
}

func expandEnvValue(value interface{}) interface{} {
	switch v := value.(type) {
	case string:
		return expandEnv(v)
	case map[string]interface{}:
		return expandEnvMap(v)
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = expandEnvValue(item)
		}
		return out
	default:
		return v
	}
}

func expandEnv(s string) string {
	return os.Expand(s, func(str string) string {
		// This allows escaping environment variable substitution via $$, e.g.
		// - $FOO will be substituted with env var FOO
		// - $$FOO will be replaced with $FOO
		// - $$$FOO will be replaced with $ + substituted env var FOO
		if str == "$" {
			return "$"
		}
		return os.Getenv(str)
	})
}

func unmarshal(componentSection *config.Map, intoCfg interface{}) error {
	if cu, ok := intoCfg.(config.Unmarshallable); ok {
		return cu.Unmarshal(componentSection)
	}

	return componentSection.UnmarshalExact(intoCfg)
}
