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

// Package storagetest provides an in-memory storage extension.
package storagetest // import "github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/extension/storage/storagetest"

import (
	"context"
	"errors"
	"sync"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component/componenthelper"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/extension/storage"
)

// ErrClosed is returned by clients used after Close.
var ErrClosed = errors.New("storage client closed")

type memoryExtension struct {
	component.Component

	mu      sync.Mutex
	clients map[string]*MemoryClient
	err     error
}

// NewMemoryExtension returns a storage.Extension keeping data in memory. Clients
// requested twice for the same component share their data, which mirrors a reopened
// persistent store. A non-nil getClientError is returned by every GetClient call.
func NewMemoryExtension(getClientError error) storage.Extension {
	return &memoryExtension{
		Component: componenthelper.New(),
		clients:   map[string]*MemoryClient{},
		err:       getClientError,
	}
}

func (m *memoryExtension) GetClient(_ context.Context, kind component.Kind, id config.ComponentID, name string) (storage.Client, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	clientName := storage.ClientName(kind, id, name)
	c, ok := m.clients[clientName]
	if !ok {
		c = NewMemoryClient()
		m.clients[clientName] = c
		return c, nil
	}
	return c.reopen(), nil
}

// MemoryClient is an in-memory storage.Client.
type MemoryClient struct {
	data *sync.Map
	mu   *sync.Mutex

	closedMu sync.Mutex
	closed   bool
	// failBatch makes every Batch call fail when set.
	failBatch error
}

var _ storage.Client = (*MemoryClient)(nil)

// NewMemoryClient returns an empty MemoryClient.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{data: &sync.Map{}, mu: &sync.Mutex{}}
}

// reopen returns a new client over the same data.
func (m *MemoryClient) reopen() *MemoryClient {
	return &MemoryClient{data: m.data, mu: m.mu}
}

// FailBatch makes subsequent Batch calls return err; a nil err restores normal behavior.
func (m *MemoryClient) FailBatch(err error) {
	m.closedMu.Lock()
	defer m.closedMu.Unlock()
	m.failBatch = err
}

func (m *MemoryClient) check() error {
	m.closedMu.Lock()
	defer m.closedMu.Unlock()
	if m.closed {
		return ErrClosed
	}
	return nil
}

// Get implements storage.Client.
func (m *MemoryClient) Get(_ context.Context, key string) ([]byte, error) {
	if err := m.check(); err != nil {
		return nil, err
	}
	val, found := m.data.Load(key)
	if !found {
		return nil, nil
	}
	return val.([]byte), nil
}

// Set implements storage.Client.
func (m *MemoryClient) Set(_ context.Context, key string, value []byte) error {
	if err := m.check(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data.Store(key, value)
	return nil
}

// Delete implements storage.Client.
func (m *MemoryClient) Delete(_ context.Context, key string) error {
	if err := m.check(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data.Delete(key)
	return nil
}

// Batch implements storage.Client.
func (m *MemoryClient) Batch(_ context.Context, getKeys []string, setEntries map[string][]byte) ([][]byte, error) {
	if err := m.check(); err != nil {
		return nil, err
	}
	m.closedMu.Lock()
	failBatch := m.failBatch
	m.closedMu.Unlock()
	if failBatch != nil {
		return nil, failBatch
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	results := make([][]byte, len(getKeys))
	for i, key := range getKeys {
		if val, found := m.data.Load(key); found {
			results[i] = val.([]byte)
		}
	}
	for key, val := range setEntries {
		if val == nil {
			m.data.Delete(key)
			continue
		}
		m.data.Store(key, val)
	}
	return results, nil
}

// Close implements storage.Client.
func (m *MemoryClient) Close(context.Context) error {
	m.closedMu.Lock()
	defer m.closedMu.Unlock()
	m.closed = true
	return nil
}
