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
	"errors"
	"fmt"
	"strings"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config"
)

// Config defines configuration for the package builder extension.
type Config struct {
	config.ExtensionSettings `mapstructure:",squash"`

	// Storage is the storage extension keeping the package manifests. Manifests are
	// kept in memory when unset.
	Storage config.ComponentID `mapstructure:"storage"`

	// Types lists the package types a builder is provided for.
	Types []string `mapstructure:"types"`
}

var _ config.Extension = (*Config)(nil)

// Validate checks that at least one package type is configured and that types are unique.
func (cfg *Config) Validate() error {
	if len(cfg.Types) == 0 {
		return errors.New("types must not be empty")
	}
	seen := make(map[string]bool, len(cfg.Types))
	for _, typ := range cfg.Types {
		if strings.TrimSpace(typ) == "" {
			return errors.New("types must not contain blank entries")
		}
		if seen[typ] {
			return fmt.Errorf("duplicate package type %q", typ)
		}
		seen[typ] = true
	}
	return nil
}
