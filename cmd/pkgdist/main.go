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

// Program pkgdist enqueues distribution packages and exports them from agent queues.
package main

import (
	"log"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/service"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/service/defaultcomponents"
)

func main() {
	factories, err := defaultcomponents.Components()
	if err != nil {
		log.Fatalf("failed to build components: %v", err)
	}

	cmd := service.NewCommand(service.Settings{
		BuildInfo: component.DefaultBuildInfo(),
		Factories: factories,
	})
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
