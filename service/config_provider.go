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

package service // import "github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/service"

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/multierr"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config/configmapprovider"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config/configunmarshaler"
)

// ConfigProvider provides the service configuration.
type ConfigProvider interface {
	// Get returns the validated service configuration built with the given factories.
	Get(ctx context.Context, factories component.Factories) (*config.Config, error)

	// Shutdown releases the resources held by the underlying map providers.
	Shutdown(ctx context.Context) error
}

// ConfigSources selects where the configuration is read from. Later sources override
// earlier ones: first Files, then PropertiesFiles, then Sets.
type ConfigSources struct {
	// Files are yaml configuration files.
	Files []string

	// PropertiesFiles maps a component path (for example "exporters::agent/publish")
	// to a properties file holding its settings, written as "<path>=<file>".
	PropertiesFiles []string

	// Sets override single settings, written as "<path>::<key>=<value>" (for example
	// "exporters::agent/publish::drop.invalid.items=true").
	Sets []string
}

type defaultConfigProvider struct {
	mapProvider    configmapprovider.Provider
	cfgUnmarshaler configunmarshaler.ConfigUnmarshaler
}

// NewDefaultConfigProvider returns a ConfigProvider merging the given sources.
func NewDefaultConfigProvider(sources ConfigSources) (ConfigProvider, error) {
	if len(sources.Files) == 0 {
		return nil, errors.New("at least one config file must be provided")
	}

	var providers []configmapprovider.Provider
	for _, file := range sources.Files {
		providers = append(providers, configmapprovider.NewFile(file))
	}

	var errs error
	for _, pf := range sources.PropertiesFiles {
		path, file, err := splitPropertiesFile(pf)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		providers = append(providers, configmapprovider.NewPropertiesFile(path, file))
	}

	sets, err := groupSets(sources.Sets)
	errs = multierr.Append(errs, err)
	if errs != nil {
		return nil, errs
	}
	paths := make([]string, 0, len(sets))
	for path := range sets {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		providers = append(providers, configmapprovider.NewProperties(path, sets[path]))
	}

	return &defaultConfigProvider{
		mapProvider:    configmapprovider.NewMerge(providers...),
		cfgUnmarshaler: configunmarshaler.NewDefault(),
	}, nil
}

func (cp *defaultConfigProvider) Get(ctx context.Context, factories component.Factories) (*config.Config, error) {
	retrieved, err := cp.mapProvider.Retrieve(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot retrieve the configuration: %w", err)
	}

	var cfg *config.Config
	if cfg, err = cp.cfgUnmarshaler.Unmarshal(retrieved.Get(), factories); err != nil {
		return nil, fmt.Errorf("cannot unmarshal the configuration: %w", err)
	}

	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (cp *defaultConfigProvider) Shutdown(ctx context.Context) error {
	return cp.mapProvider.Shutdown(ctx)
}

// groupSets splits every "<path>::<key>=<value>" override at the last delimiter before
// the equal sign and groups the properties by path.
func groupSets(sets []string) (map[string][]string, error) {
	grouped := make(map[string][]string)
	var errs error
	for _, set := range sets {
		eq := strings.Index(set, "=")
		if eq < 0 {
			errs = multierr.Append(errs, fmt.Errorf("invalid set %q: missing equal sign", set))
			continue
		}
		sep := strings.LastIndex(set[:eq], config.KeyDelimiter)
		if sep <= 0 {
			errs = multierr.Append(errs, fmt.Errorf("invalid set %q: missing component path", set))
			continue
		}
		path := set[:sep]
		grouped[path] = append(grouped[path], set[sep+len(config.KeyDelimiter):])
	}
	return grouped, errs
}

func splitPropertiesFile(pf string) (string, string, error) {
	parts := strings.SplitN(pf, "=", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
		return "", "", fmt.Errorf("invalid properties file %q: expected <path>=<file>", pf)
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}
