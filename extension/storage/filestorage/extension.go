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

package filestorage // import "github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/extension/storage/filestorage"

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/extension/storage"
)

type localFileStorage struct {
	cfg    *Config
	logger *zap.Logger

	mu      sync.Mutex
	clients map[string]*fileStorageClient
}

// Ensure this storage extension implements the appropriate interface
var _ storage.Extension = (*localFileStorage)(nil)

func newLocalFileStorage(logger *zap.Logger, cfg *Config) (component.Extension, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &localFileStorage{
		cfg:     cfg,
		logger:  logger,
		clients: map[string]*fileStorageClient{},
	}, nil
}

// Start does nothing
func (lfs *localFileStorage) Start(context.Context, component.Host) error {
	return nil
}

// Shutdown closes the clients which are still open
func (lfs *localFileStorage) Shutdown(ctx context.Context) error {
	lfs.mu.Lock()
	clients := make([]*fileStorageClient, 0, len(lfs.clients))
	for _, c := range lfs.clients {
		clients = append(clients, c)
	}
	lfs.mu.Unlock()

	var errs error
	for _, c := range clients {
		errs = multierr.Append(errs, c.Close(ctx))
	}
	return errs
}

// GetClient returns a storage client for an individual component
func (lfs *localFileStorage) GetClient(_ context.Context, kind component.Kind, id config.ComponentID, name string) (storage.Client, error) {
	clientName := storage.ClientName(kind, id, name)

	lfs.mu.Lock()
	defer lfs.mu.Unlock()
	if _, ok := lfs.clients[clientName]; ok {
		return nil, fmt.Errorf("storage client %q is already open", clientName)
	}

	client, err := newClient(lfs.logger.With(zap.String("client", clientName)), filepath.Join(lfs.cfg.Directory, clientName), lfs.cfg, func() {
		lfs.mu.Lock()
		defer lfs.mu.Unlock()
		delete(lfs.clients, clientName)
	})
	if err != nil {
		return nil, err
	}
	lfs.clients[clientName] = client
	return client, nil
}
