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

package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component/componenthelper"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component/componenttest"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/distribution"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/queue"
)

type testAgent struct {
	component.Component
}

func (a *testAgent) Name() string { return "test" }

func (a *testAgent) Queue(name string) (queue.Queue, error) {
	return queue.NewMemoryQueue(name), nil
}

func (a *testAgent) Execute(context.Context, distribution.ResourceResolver, *distribution.Request) (Response, error) {
	return Response{State: StateNotExecuted}, nil
}

func TestGetExtension(t *testing.T) {
	agentID := config.NewIDWithName("queue_agent", "publish")
	otherID := config.NewID("nop")
	host := componenttest.NewExtensionsHost(map[config.ComponentID]component.Extension{
		agentID: &testAgent{Component: componenthelper.New()},
		otherID: componenthelper.New(),
	})

	ext, ok := GetExtension(host, agentID)
	assert.True(t, ok)
	assert.Equal(t, "test", ext.Name())

	_, ok = GetExtension(host, otherID)
	assert.False(t, ok)

	_, ok = GetExtension(host, config.NewIDWithName("queue_agent", "missing"))
	assert.False(t, ok)
}
