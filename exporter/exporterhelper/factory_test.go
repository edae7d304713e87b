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

package exporterhelper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component/componenttest"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config"
)

const typeStr = "test"

var (
	defaultCfg          = config.NewExporterSettings(config.NewID(typeStr))
	nopExporterInstance = &nopExporter{}
)

func TestNewFactory(t *testing.T) {
	factory := NewFactory(
		typeStr,
		defaultConfig,
		createExporter)
	assert.EqualValues(t, typeStr, factory.Type())
	assert.EqualValues(t, &defaultCfg, factory.CreateDefaultConfig())
	exp, err := factory.CreateExporter(context.Background(), componenttest.NewNopExporterCreateSettings(), &defaultCfg)
	assert.NoError(t, err)
	assert.Same(t, nopExporterInstance, exp)
}

func TestMakeExporterFactoryMap(t *testing.T) {
	first := NewFactory("first", defaultConfig, createExporter)

	fMap, err := component.MakeExporterFactoryMap(first, NewFactory("second", defaultConfig, createExporter))
	assert.NoError(t, err)
	assert.Len(t, fMap, 2)

	_, err = component.MakeExporterFactoryMap(first, first)
	assert.Error(t, err)
}

func defaultConfig() config.Exporter {
	return &defaultCfg
}

func createExporter(context.Context, component.ExporterCreateSettings, config.Exporter) (component.Exporter, error) {
	return nopExporterInstance, nil
}

type nopExporter struct {
	component.Component
	packageExporter
}
