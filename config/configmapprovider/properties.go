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

package configmapprovider // import "github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config/configmapprovider"

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/magiconair/properties"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config"
)

type propertiesMapProvider struct {
	path       string
	properties []string
	fileName   string
}

// NewProperties returns a Provider, that provides a config.Map from the given properties,
// nested under path (for example "exporters::agent/publish").
//
// Properties must follow the Java properties format, key-value list separated by equal sign.
// Keys are kept as they are, so a component reads them as flat settings.
//  ["drop.invalid.items=true", "queue=publish"]
func NewProperties(path string, properties []string) Provider {
	return &propertiesMapProvider{
		path:       path,
		properties: properties,
	}
}

// NewPropertiesFile returns a Provider reading the properties of a single component,
// nested under path, from a Java properties file.
func NewPropertiesFile(path string, fileName string) Provider {
	return &propertiesMapProvider{
		path:     path,
		fileName: fileName,
	}
}

func (pmp *propertiesMapProvider) Retrieve(context.Context) (Retrieved, error) {
	props, err := pmp.load()
	if err != nil {
		return nil, err
	}
	if props.Len() == 0 {
		return &simpleRetrieved{confMap: config.NewMap()}, nil
	}

	parsed := make(map[string]interface{}, props.Len())
	for _, key := range props.Keys() {
		value, _ := props.Get(key)
		if pmp.path != "" {
			key = pmp.path + config.KeyDelimiter + key
		}
		parsed[key] = value
	}
	return &simpleRetrieved{confMap: config.NewMapFromStringMap(parsed)}, nil
}

func (pmp *propertiesMapProvider) load() (*properties.Properties, error) {
	if pmp.fileName != "" {
		props, err := properties.LoadFile(pmp.fileName, properties.UTF8)
		if err != nil {
			return nil, fmt.Errorf("unable to read the properties file %v: %w", pmp.fileName, err)
		}
		return props, nil
	}

	b := &bytes.Buffer{}
	for _, property := range pmp.properties {
		property = strings.TrimSpace(property)
		b.WriteString(property)
		b.WriteString("\n")
	}
	props, err := properties.Load(b.Bytes(), properties.UTF8)
	if err != nil {
		return nil, err
	}
	return props, nil
}

func (*propertiesMapProvider) Shutdown(context.Context) error {
	return nil
}
