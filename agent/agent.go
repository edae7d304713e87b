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

// Package agent defines the delivery agent contract: an agent owns named package queues
// and turns distribution requests into queued packages.
package agent // import "github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/agent"

import (
	"context"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/distribution"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/queue"
)

// RequestState is the outcome of a request executed by an Agent.
type RequestState string

const (
	// StateAccepted means the request produced a package that was queued for delivery.
	StateAccepted RequestState = "ACCEPTED"
	// StateDropped means the request was refused.
	StateDropped RequestState = "DROPPED"
	// StateNotExecuted means there was nothing to queue for the request.
	StateNotExecuted RequestState = "NOT_EXECUTED"
)

// Response describes what an Agent did with a request.
type Response struct {
	State     RequestState `json:"state"`
	Message   string       `json:"message,omitempty"`
	PackageID string       `json:"packageId,omitempty"`
	Queues    []string     `json:"queues,omitempty"`
}

// Agent is a delivery agent.
type Agent interface {
	// Name returns the name of the agent.
	Name() string

	// Queue returns the queue registered under name. Every call with the same
	// name returns the same instance.
	Queue(name string) (queue.Queue, error)

	// Execute builds a package for req and dispatches it to the agent queues.
	Execute(ctx context.Context, rr distribution.ResourceResolver, req *distribution.Request) (Response, error)
}

// Extension is an Agent run as a service extension.
type Extension interface {
	component.Extension
	Agent
}

// GetExtension returns the agent registered under id on the host.
func GetExtension(host component.Host, id config.ComponentID) (Extension, bool) {
	ext, found := host.GetExtensions()[id]
	if !found {
		return nil, false
	}
	agentExt, ok := ext.(Extension)
	return agentExt, ok
}
