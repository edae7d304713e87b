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

package componenttest

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config"
)

type timeoutSettings struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

type nestedSettings struct {
	Queue string `mapstructure:"queue-name"`
}

func TestCheckConfigStruct(t *testing.T) {
	tests := []struct {
		name    string
		config  interface{}
		wantErr string
	}{
		{
			name: "exporter config",
			config: &struct {
				config.ExporterSettings `mapstructure:",squash"`
				timeoutSettings         `mapstructure:",squash"`
				Drop                    bool               `mapstructure:"drop.invalid.items"`
				Target                  config.ComponentID `mapstructure:"agent.target"`
				Queues                  []string           `mapstructure:"queues"`
			}{},
		},
		{
			name: "ignored fields",
			config: struct {
				Name   string `mapstructure:"name"`
				Hook   func() error
				Reader io.Reader
				Skip   string `mapstructure:"-"`
				local  string
			}{},
		},
		{
			name:    "not a struct",
			config:  func(x int) int { return x },
			wantErr: "config must be a struct or a pointer to one, the passed object is a func",
		},
		{
			name: "squash on non struct",
			config: struct {
				Attempts int `mapstructure:",squash"`
			}{},
			wantErr: `attempt to squash non-struct type on field "Attempts"`,
		},
		{
			name: "invalid tag",
			config: struct {
				Queue string `mapstructure:"queue-name"`
			}{},
			wantErr: `field "Queue" has config tag "queue-name" which doesn't satisfy`,
		},
		{
			name: "invalid nested tag",
			config: struct {
				Queues []nestedSettings `mapstructure:"queues"`
			}{},
			wantErr: `field "Queue" has config tag "queue-name" which doesn't satisfy`,
		},
		{
			name: "missing tag",
			config: struct {
				Queue string
			}{},
			wantErr: `mapstructure tag not present on field "Queue"`,
		},
		{
			name: "empty tag",
			config: struct {
				Queue string `mapstructure:""`
			}{},
			wantErr: `mapstructure tag on field "Queue" is empty`,
		},
		{
			name: "setting read twice through squash",
			config: struct {
				timeoutSettings `mapstructure:",squash"`
				Deadline        time.Duration `mapstructure:"timeout"`
			}{},
			wantErr: `fields "Timeout" and "Deadline" both read setting "timeout"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckConfigStruct(tt.config)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
