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

package queueagent // import "github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/extension/queueagent"

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config"
)

// Config defines configuration for the queue agent extension.
type Config struct {
	config.ExtensionSettings `mapstructure:",squash"`

	// Storage is the storage extension backing the agent queues. Queues are kept in
	// memory when unset.
	Storage config.ComponentID `mapstructure:"storage"`

	// BuilderProvider is the extension providing the package builders.
	BuilderProvider config.ComponentID `mapstructure:"builder.provider"`

	// PackageType is the type of the packages built for executed requests.
	PackageType string `mapstructure:"package.type"`

	// Queues are the queues every built package is dispatched to.
	Queues []string `mapstructure:"queues"`
}

var _ config.Extension = (*Config)(nil)

// Validate checks the builder provider and the dispatch queues.
func (cfg *Config) Validate() error {
	if cfg.BuilderProvider.IsZero() {
		return errors.New("builder.provider must be set")
	}
	if strings.TrimSpace(cfg.PackageType) == "" {
		return errors.New("package.type must not be blank")
	}
	if len(cfg.Queues) == 0 {
		return errors.New("queues must not be empty")
	}
	seen := make(map[string]bool, len(cfg.Queues))
	for _, name := range cfg.Queues {
		if strings.TrimSpace(name) == "" {
			return errors.New("queues must not contain blank names")
		}
		if seen[name] {
			return fmt.Errorf("duplicate queue %q", name)
		}
		seen[name] = true
	}
	return nil
}
