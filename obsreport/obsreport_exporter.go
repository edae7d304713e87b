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
	"context"

	"go.opencensus.io/stats"
	"go.opencensus.io/tag"
	"go.opencensus.io/trace"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config"
)

const (
	// ExporterKey used to identify exporters in metrics and traces.
	ExporterKey = "exporter"
	// QueueKey used to identify the queue drained by an exporter.
	QueueKey = "queue"

	// ExportedPackagesKey used to track packages accepted by the processor.
	ExportedPackagesKey = "exported_packages"
	// RetainedPackagesKey used to track packages declined by the processor and kept queued.
	RetainedPackagesKey = "retained_packages"
	// DroppedPackagesKey used to track invalid queue items removed from the queue.
	DroppedPackagesKey = "dropped_packages"
	// FoundKey used to track whether a package lookup found the package.
	FoundKey = "found"
)

var (
	tagKeyExporter, _ = tag.NewKey(ExporterKey)
	tagKeyQueue, _    = tag.NewKey(QueueKey)

	exporterPrefix        = ExporterKey + nameSep
	exportOperationSuffix = nameSep + "ExportPackages"
	getPackageOpSuffix    = nameSep + "GetPackage"

	mExporterExportedPackages = stats.Int64(
		exporterPrefix+ExportedPackagesKey,
		"Number of packages successfully handed to the processor.",
		stats.UnitDimensionless)
	mExporterRetainedPackages = stats.Int64(
		exporterPrefix+RetainedPackagesKey,
		"Number of packages declined by the processor and kept in the queue.",
		stats.UnitDimensionless)
	mExporterDroppedPackages = stats.Int64(
		exporterPrefix+DroppedPackagesKey,
		"Number of invalid queue items removed from the queue.",
		stats.UnitDimensionless)
)

// ExportResult counts the outcome of one export operation.
type ExportResult struct {
	Exported int
	Retained int
	Dropped  int
}

// Exporter is a helper to add observability to an exporter.
type Exporter struct {
	exporterName string
	mutators     []tag.Mutator
}

// ExporterSettings are settings for creating an Exporter.
type ExporterSettings struct {
	ExporterID config.ComponentID
	// Queue is the name of the queue drained by the exporter, if any.
	Queue string
}

// NewExporter creates a new Exporter.
func NewExporter(cfg ExporterSettings) *Exporter {
	return &Exporter{
		exporterName: cfg.ExporterID.String(),
		mutators: []tag.Mutator{
			tag.Upsert(tagKeyExporter, cfg.ExporterID.String(), tag.WithTTL(tag.TTLNoPropagation)),
			tag.Upsert(tagKeyQueue, cfg.Queue, tag.WithTTL(tag.TTLNoPropagation)),
		},
	}
}

// StartExportOp is called at the start of an export operation.
// The returned context should be used in other calls to the Exporter functions
// dealing with the same export operation.
func (eor *Exporter) StartExportOp(ctx context.Context) context.Context {
	return eor.startSpan(ctx, exportOperationSuffix)
}

// EndExportOp completes the export operation that was started with StartExportOp.
func (eor *Exporter) EndExportOp(ctx context.Context, result ExportResult, err error) {
	_ = stats.RecordWithTags(
		ctx,
		eor.mutators,
		mExporterExportedPackages.M(int64(result.Exported)),
		mExporterRetainedPackages.M(int64(result.Retained)),
		mExporterDroppedPackages.M(int64(result.Dropped)))

	span := trace.FromContext(ctx)
	if span == nil {
		return
	}
	// End span according to errors.
	if span.IsRecordingEvents() {
		span.AddAttributes(
			trace.Int64Attribute(ExportedPackagesKey, int64(result.Exported)),
			trace.Int64Attribute(RetainedPackagesKey, int64(result.Retained)),
			trace.Int64Attribute(DroppedPackagesKey, int64(result.Dropped)),
		)
		span.SetStatus(errToStatus(err))
	}
	span.End()
}

// StartGetOp is called at the start of a package lookup.
func (eor *Exporter) StartGetOp(ctx context.Context) context.Context {
	return eor.startSpan(ctx, getPackageOpSuffix)
}

// EndGetOp completes the lookup started with StartGetOp.
func (eor *Exporter) EndGetOp(ctx context.Context, found bool, err error) {
	span := trace.FromContext(ctx)
	if span == nil {
		return
	}
	if span.IsRecordingEvents() {
		span.AddAttributes(trace.BoolAttribute(FoundKey, found))
		span.SetStatus(errToStatus(err))
	}
	span.End()
}

// startSpan creates the span used to trace the operation. Returning
// the updated context with the created span.
func (eor *Exporter) startSpan(ctx context.Context, operationSuffix string) context.Context {
	spanName := exporterPrefix + eor.exporterName + operationSuffix
	ctx, _ = trace.StartSpan(ctx, spanName)
	return ctx
}
