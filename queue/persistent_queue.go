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

package queue // import "github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/queue"

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/distribution"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/extension/storage"
)

// persistentQueue provides a queue implementation backed by a storage.Client.
//
// Write index describes the position at which next item is going to be stored.
// The pending list holds, in FIFO order, the indices of the items waiting to be claimed.
// The items currently processed by consumers are not deleted until the processing is
// finished. Their list is stored under a separate key. An item released after a failed
// attempt goes back to the pending list at the position given by its index.
//
//   ┌────────storage-backed queue──────────────┐
//   │                                          │
//   │     ┌───┐     ┌───┐ ┌───┐ ┌───┐ ┌───┐    │
//   │ n+1 │ n │ ... │ 4 │ │ 3 │ │ 2 │ │ 1 │    │
//   │     └───┘     └───┘ └─x─┘ └─|─┘ └───┘    │
//   │                       x     |            │
//   └───────────────────────x─────|────────────┘
//      ▲                    x     |
//      │                    x     └── currently processed item
//    write                  x
//    index                  xxxx deleted
//
type persistentQueue struct {
	logger *zap.Logger
	name   string
	client storage.Client

	mu         sync.Mutex
	writeIndex itemIndex
	pending    []itemIndex
	processing []itemIndex
	entries    map[itemIndex]*Entry
	byID       map[string]itemIndex
}

type itemIndex uint64

const (
	zapKey           = "key"
	zapQueueNameKey  = "queueName"
	zapEntryIDKey    = "entryID"
	zapNumberOfItems = "numberOfItems"

	writeIndexKey              = "wi"
	pendingItemsKey            = "qi"
	currentlyProcessedItemsKey = "pi"
)

var _ Queue = (*persistentQueue)(nil)

// NewPersistentQueue creates a new queue backed by the given storage client and loads the
// entries already stored there. Entries left in processing by a previous run are moved
// back to the pending list.
func NewPersistentQueue(ctx context.Context, name string, logger *zap.Logger, client storage.Client) (Queue, error) {
	pq := &persistentQueue{
		logger:  logger,
		name:    name,
		client:  client,
		entries: map[itemIndex]*Entry{},
		byID:    map[string]itemIndex{},
	}
	if err := pq.initPersistentQueue(ctx); err != nil {
		return nil, err
	}
	return pq, nil
}

func (pq *persistentQueue) initPersistentQueue(ctx context.Context) error {
	batch, err := newBatch(pq).get(writeIndexKey, pendingItemsKey, currentlyProcessedItemsKey).execute(ctx)
	if err != nil {
		return distribution.NewQueueError("failed reading queue "+pq.name, err)
	}

	writeIndex, err := batch.getItemIndexResult(writeIndexKey)
	if err != nil {
		pq.logger.Debug("failed getting write index, starting with new one",
			zap.String(zapQueueNameKey, pq.name),
			zap.Error(err))
		return nil
	}
	pq.writeIndex = writeIndex

	pending, err := batch.getItemIndexArrayResult(pendingItemsKey)
	if err != nil {
		pq.logger.Warn("could not fetch pending items", zap.String(zapQueueNameKey, pq.name), zap.Error(err))
	}
	processing, err := batch.getItemIndexArrayResult(currentlyProcessedItemsKey)
	if err != nil {
		pq.logger.Warn("could not fetch items left by consumers", zap.String(zapQueueNameKey, pq.name), zap.Error(err))
	}
	if len(processing) > 0 {
		pq.logger.Info("moving items left for processing by consumers back to queue",
			zap.String(zapQueueNameKey, pq.name), zap.Int(zapNumberOfItems, len(processing)))
	}

	indices := uniqueSorted(append(pending, processing...))
	keys := make([]string, len(indices))
	for i, index := range indices {
		keys[i] = itemKey(index)
	}
	batch, err = newBatch(pq).get(keys...).execute(ctx)
	if err != nil {
		return distribution.NewQueueError("failed reading items of queue "+pq.name, err)
	}

	cleanup := newBatch(pq)
	for i, index := range indices {
		entry, err := batch.getEntryResult(keys[i])
		if err != nil || entry == nil {
			pq.logger.Warn("failed unmarshalling item, dropping it",
				zap.String(zapQueueNameKey, pq.name), zap.String(zapKey, keys[i]), zap.Error(err))
			cleanup.delete(keys[i])
			continue
		}
		pq.entries[index] = entry
		pq.byID[entry.ID] = index
		pq.pending = append(pq.pending, index)
	}

	_, err = cleanup.
		setItemIndexArray(pendingItemsKey, pq.pending).
		setItemIndexArray(currentlyProcessedItemsKey, nil).
		execute(ctx)
	if err != nil {
		pq.logger.Warn("failed updating queue state after load", zap.String(zapQueueNameKey, pq.name), zap.Error(err))
	}
	return nil
}

func (pq *persistentQueue) Name() string {
	return pq.name
}

func (pq *persistentQueue) Add(ctx context.Context, item Item) (Entry, error) {
	pq.mu.Lock()
	defer pq.mu.Unlock()

	index := pq.writeIndex
	entry := &Entry{
		ID:     uuid.NewString(),
		Item:   item,
		Status: Status{EnteredAt: time.Now()},
	}
	pending := append(append([]itemIndex(nil), pq.pending...), index)

	_, err := newBatch(pq).
		setItemIndex(writeIndexKey, index+1).
		setEntry(itemKey(index), entry).
		setItemIndexArray(pendingItemsKey, pending).
		execute(ctx)
	if err != nil {
		return Entry{}, distribution.NewQueueError("failed adding item to queue "+pq.name, err)
	}

	pq.writeIndex = index + 1
	pq.pending = pending
	pq.entries[index] = entry
	pq.byID[entry.ID] = index
	return *entry, nil
}

func (pq *persistentQueue) Claim(ctx context.Context, sel Selector) (Entry, bool, error) {
	pq.mu.Lock()
	defer pq.mu.Unlock()

	for i, index := range pq.pending {
		entry := pq.entries[index]
		if !sel(*entry) {
			continue
		}

		pending := removeIndex(pq.pending, i)
		processing := append(append([]itemIndex(nil), pq.processing...), index)
		_, err := newBatch(pq).
			setItemIndexArray(pendingItemsKey, pending).
			setItemIndexArray(currentlyProcessedItemsKey, processing).
			execute(ctx)
		if err != nil {
			return Entry{}, false, distribution.NewQueueError("failed claiming item of queue "+pq.name, err)
		}
		pq.pending = pending
		pq.processing = processing
		return *entry, true, nil
	}
	return Entry{}, false, nil
}

func (pq *persistentQueue) Ack(ctx context.Context, e Entry) error {
	pq.mu.Lock()
	defer pq.mu.Unlock()

	index, ok := pq.byID[e.ID]
	if !ok || !containsIndex(pq.processing, index) {
		return entryError(pq.name, "ack", e, ErrNotClaimed)
	}
	return pq.itemProcessingFinish(ctx, index)
}

func (pq *persistentQueue) Remove(ctx context.Context, e Entry) error {
	pq.mu.Lock()
	defer pq.mu.Unlock()

	index, ok := pq.byID[e.ID]
	if !ok {
		return entryError(pq.name, "remove", e, ErrUnknownEntry)
	}
	if containsIndex(pq.processing, index) {
		return pq.itemProcessingFinish(ctx, index)
	}

	pending := filterIndex(pq.pending, index)
	_, err := newBatch(pq).
		setItemIndexArray(pendingItemsKey, pending).
		delete(itemKey(index)).
		execute(ctx)
	if err != nil {
		return distribution.NewQueueError("failed removing item of queue "+pq.name, err)
	}
	pq.pending = pending
	pq.forget(index)
	return nil
}

func (pq *persistentQueue) Release(ctx context.Context, e Entry) error {
	pq.mu.Lock()
	defer pq.mu.Unlock()

	index, ok := pq.byID[e.ID]
	if !ok || !containsIndex(pq.processing, index) {
		return entryError(pq.name, "release", e, ErrNotClaimed)
	}

	released := *pq.entries[index]
	released.Status.Attempts++
	processing := filterIndex(pq.processing, index)
	pending := uniqueSorted(append(append([]itemIndex(nil), pq.pending...), index))

	_, err := newBatch(pq).
		setEntry(itemKey(index), &released).
		setItemIndexArray(pendingItemsKey, pending).
		setItemIndexArray(currentlyProcessedItemsKey, processing).
		execute(ctx)
	if err != nil {
		return distribution.NewQueueError("failed releasing item of queue "+pq.name, err)
	}
	pq.entries[index] = &released
	pq.pending = pending
	pq.processing = processing
	return nil
}

func (pq *persistentQueue) Find(_ context.Context, sel Selector) (Entry, bool, error) {
	pq.mu.Lock()
	defer pq.mu.Unlock()

	for _, index := range pq.ordered() {
		if entry := pq.entries[index]; sel(*entry) {
			return *entry, true, nil
		}
	}
	return Entry{}, false, nil
}

func (pq *persistentQueue) Entries(context.Context) ([]Entry, error) {
	pq.mu.Lock()
	defer pq.mu.Unlock()

	ordered := pq.ordered()
	entries := make([]Entry, 0, len(ordered))
	for _, index := range ordered {
		entries = append(entries, *pq.entries[index])
	}
	return entries, nil
}

func (pq *persistentQueue) Size() int {
	pq.mu.Lock()
	defer pq.mu.Unlock()
	return len(pq.pending) + len(pq.processing)
}

func (pq *persistentQueue) Close(ctx context.Context) error {
	pq.logger.Debug("stopping persistentQueue", zap.String(zapQueueNameKey, pq.name))
	return pq.client.Close(ctx)
}

// itemProcessingFinish removes the item from the list of currently processed items and
// deletes it from the persistent queue. Callers hold pq.mu.
func (pq *persistentQueue) itemProcessingFinish(ctx context.Context, index itemIndex) error {
	processing := filterIndex(pq.processing, index)
	_, err := newBatch(pq).
		setItemIndexArray(currentlyProcessedItemsKey, processing).
		delete(itemKey(index)).
		execute(ctx)
	if err != nil {
		return distribution.NewQueueError("failed removing item of queue "+pq.name, err)
	}
	pq.processing = processing
	pq.forget(index)
	return nil
}

func (pq *persistentQueue) forget(index itemIndex) {
	if entry, ok := pq.entries[index]; ok {
		delete(pq.byID, entry.ID)
	}
	delete(pq.entries, index)
}

// ordered returns the indices of every live entry in FIFO order. Callers hold pq.mu.
func (pq *persistentQueue) ordered() []itemIndex {
	return uniqueSorted(append(append([]itemIndex(nil), pq.pending...), pq.processing...))
}

func itemKey(index itemIndex) string {
	return strconv.FormatUint(uint64(index), 10)
}

func removeIndex(indices []itemIndex, i int) []itemIndex {
	out := make([]itemIndex, 0, len(indices)-1)
	out = append(out, indices[:i]...)
	return append(out, indices[i+1:]...)
}

func filterIndex(indices []itemIndex, index itemIndex) []itemIndex {
	out := make([]itemIndex, 0, len(indices))
	for _, it := range indices {
		if it != index {
			out = append(out, it)
		}
	}
	return out
}

func containsIndex(indices []itemIndex, index itemIndex) bool {
	for _, it := range indices {
		if it == index {
			return true
		}
	}
	return false
}

func uniqueSorted(indices []itemIndex) []itemIndex {
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })
	out := make([]itemIndex, 0, len(indices))
	for _, it := range indices {
		if len(out) == 0 || out[len(out)-1] != it {
			out = append(out, it)
		}
	}
	return out
}
