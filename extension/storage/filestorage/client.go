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
	"errors"
	"fmt"
	"sync"

	"github.com/golang/snappy"
	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/wal"
	"go.uber.org/zap"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/extension/storage"
)

var (
	errClientClosed = errors.New("storage client is closed")

	json = jsoniter.ConfigCompatibleWithStandardLibrary
)

// record is one entry of the client log. A nil value deletes its key. A snapshot
// record replaces the whole state.
type record struct {
	Snapshot bool              `json:"snapshot,omitempty"`
	Entries  map[string][]byte `json:"entries"`
}

// fileStorageClient keeps the key/value state in memory and appends every mutation batch
// to a write-ahead log, which is replayed when the client is opened.
type fileStorageClient struct {
	logger    *zap.Logger
	threshold int
	onClose   func()

	mu      sync.Mutex
	log     *wal.Log
	data    map[string][]byte
	records int
}

var _ storage.Client = (*fileStorageClient)(nil)

func newClient(logger *zap.Logger, path string, cfg *Config, onClose func()) (*fileStorageClient, error) {
	log, err := wal.Open(path, &wal.Options{
		NoSync:           !cfg.Sync,
		SegmentCacheSize: 2,
		NoCopy:           true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open storage log %s: %w", path, err)
	}

	c := &fileStorageClient{
		logger:    logger,
		threshold: cfg.CompactionThreshold,
		onClose:   onClose,
		log:       log,
		data:      map[string][]byte{},
	}
	if err := c.replay(); err != nil {
		_ = log.Close()
		return nil, fmt.Errorf("failed to load storage log %s: %w", path, err)
	}
	return c, nil
}

func (c *fileStorageClient) replay() error {
	first, err := c.log.FirstIndex()
	if err != nil {
		return err
	}
	last, err := c.log.LastIndex()
	if err != nil {
		return err
	}
	if last == 0 {
		return nil
	}

	for index := first; index <= last; index++ {
		data, err := c.log.Read(index)
		if err != nil {
			return err
		}
		rec, err := decodeRecord(data)
		if err != nil {
			return fmt.Errorf("record %d: %w", index, err)
		}
		c.apply(rec)
	}
	c.records = int(last - first + 1)
	c.logger.Debug("storage log loaded",
		zap.Int("records", c.records),
		zap.Int("keys", len(c.data)))
	return nil
}

func (c *fileStorageClient) apply(rec *record) {
	if rec.Snapshot {
		c.data = make(map[string][]byte, len(rec.Entries))
	}
	for key, value := range rec.Entries {
		if value == nil {
			delete(c.data, key)
			continue
		}
		c.data[key] = value
	}
}

// Get will retrieve data from storage that corresponds to the specified key
func (c *fileStorageClient) Get(ctx context.Context, key string) ([]byte, error) {
	results, err := c.Batch(ctx, []string{key}, nil)
	if err != nil {
		return nil, err
	}
	return results[0], nil
}

// Set will store data. The data can be retrieved using the same key
func (c *fileStorageClient) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := c.Batch(ctx, nil, map[string][]byte{key: value})
	return err
}

// Delete will delete data associated with the specified key
func (c *fileStorageClient) Delete(ctx context.Context, key string) error {
	_, err := c.Batch(ctx, nil, map[string][]byte{key: nil})
	return err
}

// Batch reads the requested keys, then appends the upserts as a single log record.
func (c *fileStorageClient) Batch(_ context.Context, getKeys []string, setEntries map[string][]byte) ([][]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.log == nil {
		return nil, errClientClosed
	}

	results := make([][]byte, len(getKeys))
	for i, key := range getKeys {
		if value, ok := c.data[key]; ok {
			results[i] = append([]byte(nil), value...)
		}
	}
	if len(setEntries) == 0 {
		return results, nil
	}

	rec := &record{Entries: make(map[string][]byte, len(setEntries))}
	for key, value := range setEntries {
		if value != nil {
			value = append([]byte{}, value...)
		}
		rec.Entries[key] = value
	}
	if err := c.append(rec); err != nil {
		return nil, err
	}
	c.apply(rec)
	c.records++

	if c.records > c.threshold {
		if err := c.compact(); err != nil {
			// The state is already durable in the uncompacted log.
			c.logger.Warn("failed compacting storage log", zap.Error(err))
		}
	}
	return results, nil
}

// compact appends the whole state as a snapshot record and truncates everything before it.
func (c *fileStorageClient) compact() error {
	snapshot := &record{Snapshot: true, Entries: c.data}
	if err := c.append(snapshot); err != nil {
		return err
	}
	last, err := c.log.LastIndex()
	if err != nil {
		return err
	}
	if err := c.log.TruncateFront(last); err != nil && !errors.Is(err, wal.ErrOutOfRange) {
		return err
	}
	c.logger.Debug("storage log compacted", zap.Int("records", c.records), zap.Int("keys", len(c.data)))
	c.records = 1
	return nil
}

func (c *fileStorageClient) append(rec *record) error {
	data, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	last, err := c.log.LastIndex()
	if err != nil {
		return err
	}
	return c.log.Write(last+1, data)
}

// Close will close the log and release the client name
func (c *fileStorageClient) Close(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.log == nil {
		return nil
	}
	err := c.log.Close()
	c.log = nil
	if c.onClose != nil {
		c.onClose()
	}
	return err
}

func encodeRecord(rec *record) ([]byte, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	return snappy.Encode(nil, data), nil
}

func decodeRecord(data []byte) (*record, error) {
	decoded, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, err
	}
	rec := &record{}
	if err := json.Unmarshal(decoded, rec); err != nil {
		return nil, err
	}
	return rec, nil
}
