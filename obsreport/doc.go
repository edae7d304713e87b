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

// Package obsreport provides unified and consistent observability signals (
// metrics, tracing, etc) for the exporters of the service.
//
// Exporters should wrap every drain of a queue with the pair:
//
// 	StartExportOp/EndExportOp
//
// and every lookup of a single package with:
//
// 	StartGetOp/EndGetOp
//
// Exporters measure the number of packages handed to the processor and accepted
// (exported), the ones declined by the processor and kept in the queue (retained)
// and the invalid ones removed from the queue (dropped). Every measurement is
// tagged with the exporter and the queue it drains.
//
// The views returned by Views must be registered for the measurements to be
// aggregated.
package obsreport // import "github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/obsreport"
