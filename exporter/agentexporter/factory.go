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

package agentexporter // import "github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/exporter/agentexporter"

import (
	"context"
	"fmt"
	"sync"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/agent"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/distribution"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/exporter/exporterhelper"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/packaging"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/queue"
)

const (
	// The value of "type" key in configuration.
	typeStr = "agent"
)

// NewFactory creates a factory for the agent exporter.
func NewFactory() component.ExporterFactory {
	return exporterhelper.NewFactory(
		typeStr,
		createDefaultConfig,
		createExporter)
}

func createDefaultConfig() config.Exporter {
	return &Config{
		ExporterSettings: config.NewExporterSettings(config.NewID(typeStr)),
		TimeoutSettings:  exporterhelper.DefaultTimeoutSettings(),
		Queue:            queue.DefaultName,
		AgentTarget:      config.NewID("queue_agent"),
		BuilderProvider:  config.NewID("package_builder"),
	}
}

func createExporter(
	_ context.Context,
	set component.ExporterCreateSettings,
	cfg config.Exporter,
) (component.Exporter, error) {
	eCfg := cfg.(*Config)
	if err := eCfg.Validate(); err != nil {
		return nil, err
	}
	ae := &agentExporter{cfg: eCfg, set: set}
	return exporterhelper.NewPackageExporter(
		cfg,
		set,
		ae,
		exporterhelper.WithStart(ae.start),
		exporterhelper.WithTimeout(eCfg.TimeoutSettings),
	)
}

// agentExporter binds a PackageExporter to the collaborators found on the host.
type agentExporter struct {
	cfg *Config
	set component.ExporterCreateSettings

	mu       sync.RWMutex
	delegate *PackageExporter
}

func (ae *agentExporter) start(_ context.Context, host component.Host) error {
	agentExt, ok := agent.GetExtension(host, ae.cfg.AgentTarget)
	if !ok {
		return distribution.NewConfigurationError(fmt.Sprintf("agent %q not found", ae.cfg.AgentTarget), nil)
	}
	ext, ok := host.GetExtensions()[ae.cfg.BuilderProvider]
	if !ok {
		return distribution.NewConfigurationError(fmt.Sprintf("builder provider %q not found", ae.cfg.BuilderProvider), nil)
	}
	provider, ok := ext.(packaging.BuilderProvider)
	if !ok {
		return distribution.NewConfigurationError(fmt.Sprintf("extension %q is not a builder provider", ae.cfg.BuilderProvider), nil)
	}
	q, err := agentExt.Queue(ae.cfg.Queue)
	if err != nil {
		return distribution.NewConfigurationError(fmt.Sprintf("agent %q has no queue %q", ae.cfg.AgentTarget, ae.cfg.Queue), err)
	}

	delegate, err := NewPackageExporter(q, provider, Settings{
		ExporterID:       ae.cfg.ID(),
		Name:             ae.cfg.Name,
		DropInvalidItems: ae.cfg.DropInvalidItems,
		Logger:           ae.set.Logger,
	})
	if err != nil {
		return err
	}
	ae.mu.Lock()
	ae.delegate = delegate
	ae.mu.Unlock()
	return nil
}

func (ae *agentExporter) get() *PackageExporter {
	ae.mu.RLock()
	defer ae.mu.RUnlock()
	return ae.delegate
}

func (ae *agentExporter) ExportPackages(ctx context.Context, rr distribution.ResourceResolver, req *distribution.Request, processor packaging.Processor) error {
	return ae.get().ExportPackages(ctx, rr, req, processor)
}

func (ae *agentExporter) GetPackage(ctx context.Context, rr distribution.ResourceResolver, id string) (distribution.Package, bool, error) {
	return ae.get().GetPackage(ctx, rr, id)
}
