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

package configmapprovider

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertiesProvider(t *testing.T) {
	setFlagStr := []string{
		"drop.invalid.items=true",
		"queue = publish",
		"agent.target=queue_agent/publish",
	}

	pmp := NewProperties("exporters::agent/publish", setFlagStr)
	retr, err := pmp.Retrieve(context.Background())
	require.NoError(t, err)
	cfgMap := retr.Get()
	keys := cfgMap.AllKeys()
	assert.Len(t, keys, 3)
	assert.Equal(t, "true", cfgMap.Get("exporters::agent/publish::drop.invalid.items"))
	assert.Equal(t, "publish", cfgMap.Get("exporters::agent/publish::queue"))
	assert.Equal(t, "queue_agent/publish", cfgMap.Get("exporters::agent/publish::agent.target"))
	assert.NoError(t, pmp.Shutdown(context.Background()))
}

func TestPropertiesProvider_empty(t *testing.T) {
	pmp := NewProperties("exporters::agent", nil)
	retr, err := pmp.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, len(retr.Get().AllKeys()))
	assert.NoError(t, pmp.Shutdown(context.Background()))
}

func TestPropertiesProvider_file(t *testing.T) {
	pmp := NewPropertiesFile("exporters::agent/publish", filepath.Join("testdata", "publish.properties"))
	retr, err := pmp.Retrieve(context.Background())
	require.NoError(t, err)
	sub, err := retr.Get().Sub("exporters::agent/publish")
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"name":               "publish",
		"queue":              "publish",
		"drop.invalid.items": "true",
		"agent.target":       "queue_agent/publish",
	}, sub.ToStringMap())

	_, err = NewPropertiesFile("", filepath.Join("testdata", "missing.properties")).Retrieve(context.Background())
	assert.Error(t, err)
}

func TestMergeProvider(t *testing.T) {
	mp := NewMerge(
		NewFile(filepath.Join("testdata", "default-config.yaml")),
		NewProperties("exporters::agent/publish", []string{"drop.invalid.items=false", "queue=other"}),
	)
	retr, err := mp.Retrieve(context.Background())
	require.NoError(t, err)
	cfgMap := retr.Get()
	assert.Equal(t, "false", cfgMap.Get("exporters::agent/publish::drop.invalid.items"))
	assert.Equal(t, "other", cfgMap.Get("exporters::agent/publish::queue"))
	assert.True(t, cfgMap.IsSet("extensions::queue_agent/publish::queues"))
	assert.NoError(t, mp.Shutdown(context.Background()))

	_, err = NewMerge(NewFile("")).Retrieve(context.Background())
	assert.Error(t, err)
}
