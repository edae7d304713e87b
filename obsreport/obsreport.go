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

package obsreport // import "github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/obsreport"

import (
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
	"go.opencensus.io/trace"
)

const nameSep = "/"

var (
	okStatus = trace.Status{Code: trace.StatusCodeOK}
)

// Views returns the views of the measures recorded by the package.
func Views() []*view.View {
	tagKeys := []tag.Key{tagKeyExporter, tagKeyQueue}
	measures := []*stats.Int64Measure{
		mExporterExportedPackages,
		mExporterRetainedPackages,
		mExporterDroppedPackages,
	}
	views := make([]*view.View, 0, len(measures))
	for _, m := range measures {
		views = append(views, &view.View{
			Name:        m.Name(),
			Description: m.Description(),
			Measure:     m,
			TagKeys:     tagKeys,
			Aggregation: view.Sum(),
		})
	}
	return views
}

func errToStatus(err error) trace.Status {
	if err != nil {
		return trace.Status{Code: trace.StatusCodeUnknown, Message: err.Error()}
	}
	return okStatus
}
