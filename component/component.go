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

// Package component defines the lifecycle, host and factory contracts shared by every
// extension and exporter.
package component // import "github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component"

import (
	"context"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config"
)

// Component is either an extension or an exporter.
//
// A component's lifecycle has the following phases:
//
//   1. Creation: The component is created using the factory, via a Create* call.
//   2. Start: The component's Start method is called.
//   3. Running: The component is up and running.
//   4. Shutdown: The component's Shutdown method is called, the lifecycle is complete.
//
// Once the lifecycle is complete it may be repeated, in which case a new component
// is created and goes through the lifecycle.
type Component interface {
	// Start tells the component to start. Host parameter can be used for communicating
	// with the host after Start() has already returned. If error is returned by
	// Start() then the service startup will be aborted.
	// If this is an exporter component it may prepare for exporting
	// by connecting to the endpoint.
	//
	// If the component needs to perform a long-running starting operation then it is recommended
	// that Start() returns quickly and the long-running operation is performed in background.
	// In that case make sure that the long-running operation does not use the context passed
	// to Start() function since that context will be cancelled soon and can abort the long-running
	// operation. Create a new context from the context.Background() for long-running operations.
	Start(ctx context.Context, host Host) error

	// Shutdown is invoked during service shutdown. After Shutdown() is called, if the component
	// accepted data in any way, it should not accept it anymore.
	//
	// If there are any background operations running by the component they must be aborted before
	// this function returns. Remember that if you started any long-running background operations from
	// the Start() method, those operations must be also cancelled. If there are any buffers in the
	// component, they should be cleared and the data sent immediately to the next component.
	//
	// The component's lifecycle is completed once the Shutdown() method returns. No other
	// methods of the component are called after that. If necessary a new component with
	// the same or different configuration may be created and started (this may happen
	// for example if we want to restart the component).
	Shutdown(ctx context.Context) error
}

// Kind represents component kinds.
type Kind int

const (
	_ Kind = iota // skip 0, start types from 1.
	KindExporter
	KindExtension
)

func (k Kind) String() string {
	switch k {
	case KindExporter:
		return "exporter"
	case KindExtension:
		return "extension"
	}
	return ""
}

// Host represents the entity that is hosting a Component. It is used to allow communication
// between the Component and its host (normally the service.Service is the host).
type Host interface {
	// ReportFatalError is used to report to the host that the component
	// encountered a fatal error (i.e.: an error that the instance can't recover
	// from) after its start function had already returned.
	ReportFatalError(err error)

	// GetExtensions returns the map of extensions. Only enabled and created extensions will be returned.
	// Typically is used to find an extension by type or by full config name. Both cases
	// can be done by iterating the returned map. There are typically very few extensions
	// so there are no performance implications due to iteration.
	GetExtensions() map[config.ComponentID]Extension
}

// Factory is implemented by all component factories.
type Factory interface {
	// Type gets the type of the component created by this factory.
	Type() config.Type
}
