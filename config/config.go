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

// Package config defines the configuration primitives shared by every component:
// component identities, the common settings embedded by each component config and
// the Map used to decode raw settings into typed structs.
package config // import "github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config"

import (
	"fmt"

	"go.uber.org/multierr"
)

// Type is the component type as it is used in the config.
type Type string

// validatable defines the interface for the configuration validation.
type validatable interface {
	// Validate validates the configuration and returns an error if invalid.
	Validate() error
}

// Config defines the configuration of the service: the extensions providing shared
// collaborators (storage, agents, package builders) and the exporters using them.
type Config struct {
	Extensions Extensions
	Exporters  Exporters

	// Service selects the enabled components and configures the service telemetry.
	Service Service
}

// Service defines the configurable parts of the service itself.
type Service struct {
	// Telemetry is the configuration for the service telemetry.
	Telemetry ServiceTelemetry `mapstructure:"telemetry"`

	// Extensions are the ordered list of extensions configured for the service.
	// Empty enables every configured extension.
	Extensions []ComponentID `mapstructure:"extensions"`

	// Exporters are the exporters started by the service. Empty enables every configured exporter.
	Exporters []ComponentID `mapstructure:"exporters"`
}

// ServiceTelemetry defines the configurable settings for service telemetry.
type ServiceTelemetry struct {
	Logs ServiceTelemetryLogs `mapstructure:"logs"`
}

// ServiceTelemetryLogs defines the configurable settings for service telemetry logs.
type ServiceTelemetryLogs struct {
	// Level is the minimum enabled logging level, one of zap's level names.
	Level string `mapstructure:"level"`

	// Development puts the logger in development mode, which changes the behavior of
	// DPanicLevel and takes stacktraces more liberally.
	Development bool `mapstructure:"development"`

	// Encoding sets the logger's encoding. Valid values are "json" and "console".
	Encoding string `mapstructure:"encoding"`
}

// Validate returns an error if the config is invalid.
func (cfg *Config) Validate() error {
	var errs error
	for id, extCfg := range cfg.Extensions {
		if err := extCfg.Validate(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("extension %q has invalid configuration: %w", id, err))
		}
	}
	for id, expCfg := range cfg.Exporters {
		if err := expCfg.Validate(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("exporter %q has invalid configuration: %w", id, err))
		}
	}
	for _, ref := range cfg.Service.Extensions {
		if _, ok := cfg.Extensions[ref]; !ok {
			errs = multierr.Append(errs, fmt.Errorf("service references extension %q which does not exist", ref))
		}
	}
	for _, ref := range cfg.Service.Exporters {
		if _, ok := cfg.Exporters[ref]; !ok {
			errs = multierr.Append(errs, fmt.Errorf("service references exporter %q which does not exist", ref))
		}
	}
	return errs
}

// Unmarshallable defines an optional interface for custom configuration unmarshaling.
// A configuration struct can implement this interface to override the default unmarshaling.
type Unmarshallable interface {
	// Unmarshal is a function that unmarshals a Map into the struct in a custom way.
	// The Map for this specific component may be nil or empty if no config available.
	Unmarshal(component *Map) error
}
