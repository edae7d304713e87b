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

// Package configtest loads service configurations in tests.
package configtest // import "github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config/configtest"

import (
	"context"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config/configmapprovider"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config/configunmarshaler"
)

// LoadConfig loads a config from file, and does NOT validate the configuration.
func LoadConfig(fileName string, factories component.Factories) (*config.Config, error) {
	// Read yaml config from file
	cp, err := configmapprovider.NewFile(fileName).Retrieve(context.Background())
	if err != nil {
		return nil, err
	}
	// Unmarshal the config using the given factories.
	return configunmarshaler.NewDefault().Unmarshal(cp.Get(), factories)
}

// LoadConfigAndValidate loads a config from the file, and validates the configuration.
func LoadConfigAndValidate(fileName string, factories component.Factories) (*config.Config, error) {
	cfg, err := LoadConfig(fileName, factories)
	if err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}
