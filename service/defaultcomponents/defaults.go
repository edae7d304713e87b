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

// Package defaultcomponents composes the default set of components used by the service.
package defaultcomponents // import "github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/service/defaultcomponents"

import (
	"go.uber.org/multierr"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/exporter/agentexporter"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/exporter/localexporter"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/extension/packagebuilder"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/extension/queueagent"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/extension/storage/filestorage"
)

// Components returns the default set of components used by the service.
func Components() (
	component.Factories,
	error,
) {
	var errs error

	extensions, err := component.MakeExtensionFactoryMap(
		filestorage.NewFactory(),
		packagebuilder.NewFactory(),
		queueagent.NewFactory(),
	)
	errs = multierr.Append(errs, err)

	exporters, err := component.MakeExporterFactoryMap(
		agentexporter.NewFactory(),
		localexporter.NewFactory(),
	)
	errs = multierr.Append(errs, err)

	factories := component.Factories{
		Extensions: extensions,
		Exporters:  exporters,
	}
	return factories, errs
}
