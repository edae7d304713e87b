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
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config"
)

var _ component.Host = (*serviceHost)(nil)

type serviceHost struct {
	extensions        map[config.ComponentID]component.Extension
	asyncErrorChannel chan error
}

// ReportFatalError is used to report to the host that the component encountered
// a fatal error after its start function had already returned.
func (host *serviceHost) ReportFatalError(err error) {
	if host.asyncErrorChannel == nil {
		return
	}
	select {
	case host.asyncErrorChannel <- err:
	default:
	}
}

func (host *serviceHost) GetExtensions() map[config.ComponentID]component.Extension {
	return host.extensions
}
