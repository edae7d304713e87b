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

package queueagent // import "github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/extension/queueagent"

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/agent"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component/componenterror"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/distribution"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/extension/storage"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/packaging"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/queue"
)

const (
	zapAgentKey     = "agent"
	zapQueueKey     = "queueName"
	zapPackageIDKey = "packageID"
)

var errBlankQueueName = errors.New("queue name must not be blank")

// queueAgent owns one queue instance per name. Built packages are added to every
// configured dispatch queue.
type queueAgent struct {
	cfg    *Config
	logger *zap.Logger

	mu      sync.Mutex
	started bool
	storage storage.Extension
	builder packaging.Builder
	queues  map[string]queue.Queue
}

var _ agent.Extension = (*queueAgent)(nil)

func newQueueAgent(logger *zap.Logger, cfg *Config) (*queueAgent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &queueAgent{
		cfg:    cfg,
		logger: logger.With(zap.String(zapAgentKey, cfg.ID().String())),
		queues: map[string]queue.Queue{},
	}, nil
}

func (qa *queueAgent) Name() string {
	return qa.cfg.ID().String()
}

// Start resolves the builder provider and the optional storage extension, then opens
// the dispatch queues.
func (qa *queueAgent) Start(ctx context.Context, host component.Host) error {
	ext, ok := host.GetExtensions()[qa.cfg.BuilderProvider]
	if !ok {
		return distribution.NewConfigurationError(fmt.Sprintf("builder provider %q not found", qa.cfg.BuilderProvider), nil)
	}
	provider, ok := ext.(packaging.BuilderProvider)
	if !ok {
		return distribution.NewConfigurationError(fmt.Sprintf("extension %q is not a builder provider", qa.cfg.BuilderProvider), nil)
	}

	var storageExt storage.Extension
	if !qa.cfg.Storage.IsZero() {
		if storageExt, ok = storage.GetExtension(host, qa.cfg.Storage); !ok {
			return distribution.NewConfigurationError(fmt.Sprintf("storage extension %q not found", qa.cfg.Storage), nil)
		}
	}

	qa.mu.Lock()
	defer qa.mu.Unlock()
	// The provider may start after the agent.
	qa.builder = &lazyBuilder{provider: provider, typ: qa.cfg.PackageType}
	qa.storage = storageExt
	qa.started = true
	for _, name := range qa.cfg.Queues {
		if _, err := qa.queueLocked(ctx, name); err != nil {
			qa.started = false
			return err
		}
	}
	qa.logger.Info("Queue agent started", zap.Strings("queues", qa.cfg.Queues))
	return nil
}

// Shutdown closes every queue opened by the agent.
func (qa *queueAgent) Shutdown(ctx context.Context) error {
	qa.mu.Lock()
	defer qa.mu.Unlock()
	qa.started = false

	var errs error
	for name, q := range qa.queues {
		errs = multierr.Append(errs, q.Close(ctx))
		delete(qa.queues, name)
	}
	return errs
}

// Queue returns the queue registered under name, opening it on first use.
func (qa *queueAgent) Queue(name string) (queue.Queue, error) {
	qa.mu.Lock()
	defer qa.mu.Unlock()
	return qa.queueLocked(context.Background(), name)
}

func (qa *queueAgent) queueLocked(ctx context.Context, name string) (queue.Queue, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errBlankQueueName
	}
	if !qa.started {
		return nil, componenterror.ErrNotStarted
	}
	if q, ok := qa.queues[name]; ok {
		return q, nil
	}

	var q queue.Queue
	if qa.storage == nil {
		q = queue.NewMemoryQueue(name)
	} else {
		client, err := qa.storage.GetClient(ctx, component.KindExtension, qa.cfg.ID(), name)
		if err != nil {
			return nil, distribution.NewQueueError(fmt.Sprintf("failed to get storage client for queue %q", name), err)
		}
		if q, err = queue.NewPersistentQueue(ctx, name, qa.logger, client); err != nil {
			return nil, multierr.Append(err, client.Close(ctx))
		}
	}
	qa.queues[name] = q
	qa.logger.Debug("Queue opened", zap.String(zapQueueKey, name))
	return q, nil
}

// QueueNames returns the names of the open queues, sorted.
func (qa *queueAgent) QueueNames() []string {
	qa.mu.Lock()
	defer qa.mu.Unlock()
	names := make([]string, 0, len(qa.queues))
	for name := range qa.queues {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute builds a package for req and adds an item referencing it to every dispatch
// queue. Pull requests are served by exporters and are not executed here.
func (qa *queueAgent) Execute(ctx context.Context, rr distribution.ResourceResolver, req *distribution.Request) (agent.Response, error) {
	if rr == nil || req == nil {
		return agent.Response{State: agent.StateDropped}, errors.New("resource resolver and request are required")
	}
	if req.Type == distribution.RequestTypePull {
		return agent.Response{State: agent.StateNotExecuted, Message: "pull requests are served by exporters"}, nil
	}

	qa.mu.Lock()
	builder := qa.builder
	qa.mu.Unlock()
	if builder == nil {
		return agent.Response{State: agent.StateDropped}, componenterror.ErrNotStarted
	}

	pkg, err := builder.CreatePackage(ctx, rr, req)
	if err != nil {
		return agent.Response{State: agent.StateDropped, Message: err.Error()}, fmt.Errorf("failed to build package: %w", err)
	}

	resp := agent.Response{State: agent.StateAccepted, PackageID: pkg.ID()}
	for _, name := range qa.cfg.Queues {
		q, err := qa.Queue(name)
		if err != nil {
			return resp, err
		}
		info := *pkg.Info()
		info.Queue = name
		if _, err = q.Add(ctx, queue.Item{PackageID: pkg.ID(), PackageType: pkg.Type(), Info: info}); err != nil {
			return resp, err
		}
		resp.Queues = append(resp.Queues, name)
	}
	qa.logger.Debug("Request executed",
		zap.String(zapPackageIDKey, pkg.ID()),
		zap.String("requestType", string(req.Type)),
		zap.Strings("queues", resp.Queues))
	return resp, nil
}

// lazyBuilder looks the builder up on every call.
type lazyBuilder struct {
	provider packaging.BuilderProvider
	typ      string
}

func (lb *lazyBuilder) Type() string {
	return lb.typ
}

func (lb *lazyBuilder) get() (packaging.Builder, error) {
	b, ok := lb.provider.Builder(lb.typ)
	if !ok {
		return nil, distribution.NewConfigurationError(fmt.Sprintf("no builder for package type %q", lb.typ), nil)
	}
	return b, nil
}

func (lb *lazyBuilder) CreatePackage(ctx context.Context, rr distribution.ResourceResolver, req *distribution.Request) (distribution.Package, error) {
	b, err := lb.get()
	if err != nil {
		return nil, err
	}
	return b.CreatePackage(ctx, rr, req)
}

func (lb *lazyBuilder) GetPackage(ctx context.Context, rr distribution.ResourceResolver, id string) (distribution.Package, error) {
	b, err := lb.get()
	if err != nil {
		return nil, err
	}
	return b.GetPackage(ctx, rr, id)
}
