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

// Package obsreporttest checks the observability signals recorded by exporters in tests.
package obsreporttest // import "github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/obsreport/obsreporttest"

import (
	"fmt"
	"reflect"
	"sort"

	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/obsreport"
)

var (
	// Names used by the metrics and labels are hard coded here in order to avoid
	// inadvertent changes: at this point changing metric names and labels should
	// be treated as a breaking changing and requires a good justification.
	// DO NOT SWITCH THE VARIABLES BELOW TO SIMILAR ONES DEFINED ON THE PACKAGE.
	exporterTag, _ = tag.NewKey("exporter")
	queueTag, _    = tag.NewKey("queue")
)

// SetupRecordedMetricsTest does setup the testing environment to check the metrics recorded by exporters.
// The returned function should be deferred.
func SetupRecordedMetricsTest() (func(), error) {
	views := obsreport.Views()
	err := view.Register(views...)
	return func() {
		view.Unregister(views...)
	}, err
}

// CheckExporterPackages checks that for the current exported values for exporter metrics match given values.
// When this function is called it is required to also call SetupRecordedMetricsTest as first thing.
func CheckExporterPackages(exporter config.ComponentID, queue string, exported, retained, dropped int64) error {
	exporterTags := tagsForExporterView(exporter, queue)
	if err := checkValueForView(exporterTags, exported, "exporter/exported_packages"); err != nil {
		return err
	}
	if err := checkValueForView(exporterTags, retained, "exporter/retained_packages"); err != nil {
		return err
	}
	return checkValueForView(exporterTags, dropped, "exporter/dropped_packages")
}

// checkValueForView checks that for the current exported value in the view with the given name
// for the given tags is equal to "value".
func checkValueForView(wantTags []tag.Tag, value int64, vName string) error {
	// Make sure the tags slice is sorted by tag keys.
	sortTags(wantTags)

	rows, err := view.RetrieveData(vName)
	if err != nil {
		return err
	}

	for _, row := range rows {
		// Make sure the tags slice is sorted by tag keys.
		sortTags(row.Tags)
		if reflect.DeepEqual(wantTags, row.Tags) {
			sum := row.Data.(*view.SumData)
			if float64(value) != sum.Value {
				return fmt.Errorf("values did no match, wanted %f got %f", float64(value), sum.Value)
			}
			return nil
		}
	}
	if value == 0 {
		// Nothing recorded for the tags is the same as a zero sum.
		return nil
	}
	return fmt.Errorf("could not find tags, wantTags: %s in rows %v", wantTags, rows)
}

// tagsForExporterView returns the tags that are needed for the exporter views.
func tagsForExporterView(exporter config.ComponentID, queue string) []tag.Tag {
	return []tag.Tag{
		{Key: exporterTag, Value: exporter.String()},
		{Key: queueTag, Value: queue},
	}
}

func sortTags(tags []tag.Tag) {
	sort.SliceStable(tags, func(i, j int) bool {
		return tags[i].Key.Name() < tags[j].Key.Name()
	})
}
