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

package componenttest // import "github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component/componenttest"

import (
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config"
)

// nopHost mocks a component.Host for test purposes.
type nopHost struct{}

// NewNopHost returns a new instance of nopHost with proper defaults for most tests.
func NewNopHost() component.Host {
	return &nopHost{}
}

func (nh *nopHost) ReportFatalError(_ error) {}

func (nh *nopHost) GetExtensions() map[config.ComponentID]component.Extension {
	return nil
}

// ExtensionsHost is a component.Host exposing a fixed set of extensions and recording
// the fatal errors reported to it.
type ExtensionsHost struct {
	Extensions map[config.ComponentID]component.Extension
	Errors     []error
}

// NewExtensionsHost returns a host exposing the given extensions.
func NewExtensionsHost(extensions map[config.ComponentID]component.Extension) *ExtensionsHost {
	return &ExtensionsHost{Extensions: extensions}
}

// ReportFatalError records err.
func (eh *ExtensionsHost) ReportFatalError(err error) {
	eh.Errors = append(eh.Errors, err)
}

// GetExtensions returns the configured extensions.
func (eh *ExtensionsHost) GetExtensions() map[config.ComponentID]component.Extension {
	return eh.Extensions
}
