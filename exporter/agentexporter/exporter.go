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

// Package agentexporter exports the packages queued by a delivery agent.
package agentexporter // import "github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/exporter/agentexporter"

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component/componenterror"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/distribution"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/obsreport"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/packaging"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/queue"
)

const (
	zapExporterKey  = "exporter"
	zapQueueNameKey = "queueName"
	zapPackageIDKey = "packageID"
	zapEntryIDKey   = "entryID"
	zapAttemptsKey  = "attempts"
)

var (
	errNilQueue    = distribution.NewConfigurationError("queue is required", nil)
	errNilProvider = distribution.NewConfigurationError("builder provider is required", nil)
	errNilArgument = errors.New("resource resolver and request are required")
)

// Settings configures a PackageExporter.
type Settings struct {
	ExporterID       config.ComponentID
	Name             string
	DropInvalidItems bool
	// Logger defaults to a nop logger.
	Logger *zap.Logger
}

// Stats are the totals of a PackageExporter since its creation.
type Stats struct {
	Exported int64
	Retained int64
	Dropped  int64
}

// PackageExporter drains a queue, materializing every entry through a builder
// provider and handing the packages to a processor. It is safe for concurrent use,
// and several exporters may drain the same queue.
type PackageExporter struct {
	name             string
	queue            queue.Queue
	provider         packaging.BuilderProvider
	dropInvalidItems bool
	logger           *zap.Logger
	obsrep           *obsreport.Exporter

	exported *atomic.Int64
	retained *atomic.Int64
	dropped  *atomic.Int64
}

var _ packaging.Exporter = (*PackageExporter)(nil)

// NewPackageExporter creates a PackageExporter draining q.
func NewPackageExporter(q queue.Queue, provider packaging.BuilderProvider, set Settings) (*PackageExporter, error) {
	if q == nil {
		return nil, errNilQueue
	}
	if provider == nil {
		return nil, errNilProvider
	}
	logger := set.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PackageExporter{
		name:             set.Name,
		queue:            q,
		provider:         provider,
		dropInvalidItems: set.DropInvalidItems,
		logger: logger.With(
			zap.String(zapExporterKey, set.ExporterID.String()),
			zap.String(zapQueueNameKey, q.Name())),
		obsrep: obsreport.NewExporter(obsreport.ExporterSettings{
			ExporterID: set.ExporterID,
			Queue:      q.Name(),
		}),
		exported: atomic.NewInt64(0),
		retained: atomic.NewInt64(0),
		dropped:  atomic.NewInt64(0),
	}, nil
}

// Name returns the exporter name, empty for an unnamed exporter.
func (pe *PackageExporter) Name() string {
	return pe.name
}

// QueueName returns the name of the drained queue.
func (pe *PackageExporter) QueueName() string {
	return pe.queue.Name()
}

// Stats returns the totals recorded so far.
func (pe *PackageExporter) Stats() Stats {
	return Stats{
		Exported: pe.exported.Load(),
		Retained: pe.retained.Load(),
		Dropped:  pe.dropped.Load(),
	}
}

// ExportPackages claims the entries covered by req and readable through rr in queue
// order until none is left. An entry is acknowledged once processor accepted its
// package. An entry the processor declines is released and not claimed again by this
// call. An entry that cannot be materialized is removed when invalid items are
// dropped; otherwise it is released and the export fails with an invalid item error.
// A fatal processor error, a queue error or a done context ends the export early.
// Entries acknowledged before the failure stay acknowledged.
func (pe *PackageExporter) ExportPackages(ctx context.Context, rr distribution.ResourceResolver, req *distribution.Request, processor packaging.Processor) (err error) {
	if rr == nil || req == nil {
		return errNilArgument
	}
	if processor == nil {
		return componenterror.ErrNilProcessor
	}

	ctx = pe.obsrep.StartExportOp(ctx)
	var result obsreport.ExportResult
	defer func() {
		pe.obsrep.EndExportOp(ctx, result, err)
	}()

	retained := map[string]bool{}
	selector := func(e queue.Entry) bool {
		return !retained[e.ID] && req.Covers(e.Item.Info.Paths) && readable(rr, e.Item.Info.Paths)
	}

	for {
		if err = ctx.Err(); err != nil {
			return err
		}
		entry, ok, claimErr := pe.queue.Claim(ctx, selector)
		if claimErr != nil {
			return claimErr
		}
		if !ok {
			return nil
		}
		logger := pe.logger.With(
			zap.String(zapEntryIDKey, entry.ID),
			zap.String(zapPackageIDKey, entry.Item.PackageID))

		pkg, buildErr := pe.materialize(ctx, rr, entry)
		if buildErr != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return multierr.Append(ctxErr, pe.queue.Release(ctx, entry))
			}
			if !pe.dropInvalidItems {
				return multierr.Append(buildErr, pe.queue.Release(ctx, entry))
			}
			if err = pe.queue.Remove(ctx, entry); err != nil {
				return err
			}
			result.Dropped++
			pe.dropped.Inc()
			logger.Warn("Dropping invalid queue item", zap.Error(buildErr))
			continue
		}

		if procErr := processor.Process(ctx, pkg); procErr != nil {
			failed := distribution.NewProcessorError(fmt.Sprintf("processing package %s failed", entry.Item.PackageID), procErr)
			if err = pe.queue.Release(ctx, entry); err != nil {
				return multierr.Append(failed, err)
			}
			if distribution.IsFatal(procErr) {
				return failed
			}
			retained[entry.ID] = true
			result.Retained++
			pe.retained.Inc()
			logger.Warn("Package not processed, keeping it in queue",
				zap.Int(zapAttemptsKey, entry.Status.Attempts+1),
				zap.Error(procErr))
			continue
		}

		if err = pe.queue.Ack(ctx, entry); err != nil {
			return err
		}
		result.Exported++
		pe.exported.Inc()
		logger.Debug("Package exported")
	}
}

// GetPackage materializes the package of the queued entry carrying id without changing
// the queue. found is false when no entry carries id or rr cannot read every path of
// the entry. A matching entry that cannot be materialized is an invalid item error
// whatever the drop policy.
func (pe *PackageExporter) GetPackage(ctx context.Context, rr distribution.ResourceResolver, id string) (pkg distribution.Package, found bool, err error) {
	if rr == nil {
		return nil, false, errNilArgument
	}

	ctx = pe.obsrep.StartGetOp(ctx)
	defer func() {
		pe.obsrep.EndGetOp(ctx, found, err)
	}()

	byID := queue.ByPackageID(id)
	entry, ok, err := pe.queue.Find(ctx, func(e queue.Entry) bool {
		return byID(e) && readable(rr, e.Item.Info.Paths)
	})
	if err != nil || !ok {
		return nil, false, err
	}
	if pkg, err = pe.materialize(ctx, rr, entry); err != nil {
		return nil, false, err
	}
	return pkg, true, nil
}

func (pe *PackageExporter) materialize(ctx context.Context, rr distribution.ResourceResolver, entry queue.Entry) (distribution.Package, error) {
	builder, ok := pe.provider.Builder(entry.Item.PackageType)
	if !ok {
		return nil, distribution.NewInvalidItemError(
			fmt.Sprintf("no builder for package type %q of entry %s", entry.Item.PackageType, entry.ID), nil)
	}
	pkg, err := builder.GetPackage(ctx, rr, entry.Item.PackageID)
	if err != nil {
		return nil, distribution.NewInvalidItemError(
			fmt.Sprintf("cannot materialize package %s of entry %s", entry.Item.PackageID, entry.ID), err)
	}
	if pkg == nil {
		return nil, distribution.NewInvalidItemError(
			fmt.Sprintf("no package %s for entry %s", entry.Item.PackageID, entry.ID), nil)
	}

	info := pkg.Info()
	info.Merge(entry.Item.Info)
	if info.Queue == "" {
		info.Queue = pe.queue.Name()
	}
	if info.Properties == nil {
		info.Properties = map[string]interface{}{}
	}
	info.Properties[queue.AttemptsProperty] = entry.Status.Attempts
	return pkg, nil
}

func readable(rr distribution.ResourceResolver, paths []string) bool {
	for _, p := range paths {
		if !rr.CanRead(p) {
			return false
		}
	}
	return true
}
