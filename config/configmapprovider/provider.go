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

// Package configmapprovider provides the sources a service configuration is assembled
// from: YAML files, Java properties and their merge.
package configmapprovider // import "github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config/configmapprovider"

import (
	"context"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config"
)

// Provider is an interface that helps providing configuration's parser.
// Implementations may load the parser from a file, a database or any other source.
type Provider interface {
	// Retrieve goes to the configuration source and retrieves the selected data which
	// contains the value to be injected in the configuration.
	//
	// If ctx is cancelled should return immediately with an error.
	// Should never be called concurrently with itself or with Shutdown.
	Retrieve(ctx context.Context) (Retrieved, error)

	// Shutdown signals that the configuration for which this Provider was used to
	// retrieve values is no longer in use and the Provider should close and release
	// any resources that it may have created.
	//
	// This method must be called when the service ends, either in case of success or error.
	// Should never be called concurrently with itself.
	Shutdown(ctx context.Context) error
}

// Retrieved holds the result of a call to the Retrieve method of a Provider object.
type Retrieved interface {
	// Get returns the Map.
	Get() *config.Map
}

type simpleRetrieved struct {
	confMap *config.Map
}

func (sr *simpleRetrieved) Get() *config.Map {
	return sr.confMap
}
