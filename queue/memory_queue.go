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
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryEntry struct {
	seq   uint64
	entry Entry
}

// memoryQueue keeps entries in memory. Pending entries are kept sorted by their
// insertion sequence so that released entries return to their original position.
type memoryQueue struct {
	name string

	mu      sync.Mutex
	seq     uint64
	pending []*memoryEntry
	claimed map[string]*memoryEntry
}

var _ Queue = (*memoryQueue)(nil)

// NewMemoryQueue returns an empty in-memory Queue.
func NewMemoryQueue(name string) Queue {
	return &memoryQueue{
		name:    name,
		claimed: map[string]*memoryEntry{},
	}
}

func (mq *memoryQueue) Name() string {
	return mq.name
}

func (mq *memoryQueue) Add(_ context.Context, item Item) (Entry, error) {
	mq.mu.Lock()
	defer mq.mu.Unlock()

	me := &memoryEntry{
		seq: mq.seq,
		entry: Entry{
			ID:     uuid.NewString(),
			Item:   item,
			Status: Status{EnteredAt: time.Now()},
		},
	}
	mq.seq++
	mq.pending = append(mq.pending, me)
	return me.entry, nil
}

func (mq *memoryQueue) Claim(_ context.Context, sel Selector) (Entry, bool, error) {
	mq.mu.Lock()
	defer mq.mu.Unlock()

	for i, me := range mq.pending {
		if !sel(me.entry) {
			continue
		}
		mq.pending = append(mq.pending[:i], mq.pending[i+1:]...)
		mq.claimed[me.entry.ID] = me
		return me.entry, true, nil
	}
	return Entry{}, false, nil
}

func (mq *memoryQueue) Ack(_ context.Context, e Entry) error {
	mq.mu.Lock()
	defer mq.mu.Unlock()

	if _, ok := mq.claimed[e.ID]; !ok {
		return entryError(mq.name, "ack", e, ErrNotClaimed)
	}
	delete(mq.claimed, e.ID)
	return nil
}

func (mq *memoryQueue) Remove(_ context.Context, e Entry) error {
	mq.mu.Lock()
	defer mq.mu.Unlock()

	if _, ok := mq.claimed[e.ID]; ok {
		delete(mq.claimed, e.ID)
		return nil
	}
	for i, me := range mq.pending {
		if me.entry.ID == e.ID {
			mq.pending = append(mq.pending[:i], mq.pending[i+1:]...)
			return nil
		}
	}
	return entryError(mq.name, "remove", e, ErrUnknownEntry)
}

func (mq *memoryQueue) Release(_ context.Context, e Entry) error {
	mq.mu.Lock()
	defer mq.mu.Unlock()

	me, ok := mq.claimed[e.ID]
	if !ok {
		return entryError(mq.name, "release", e, ErrNotClaimed)
	}
	delete(mq.claimed, e.ID)
	me.entry.Status.Attempts++

	i := sort.Search(len(mq.pending), func(i int) bool { return mq.pending[i].seq > me.seq })
	mq.pending = append(mq.pending, nil)
	copy(mq.pending[i+1:], mq.pending[i:])
	mq.pending[i] = me
	return nil
}

func (mq *memoryQueue) Find(_ context.Context, sel Selector) (Entry, bool, error) {
	mq.mu.Lock()
	defer mq.mu.Unlock()

	for _, me := range mq.ordered() {
		if sel(me.entry) {
			return me.entry, true, nil
		}
	}
	return Entry{}, false, nil
}

func (mq *memoryQueue) Entries(context.Context) ([]Entry, error) {
	mq.mu.Lock()
	defer mq.mu.Unlock()

	ordered := mq.ordered()
	entries := make([]Entry, 0, len(ordered))
	for _, me := range ordered {
		entries = append(entries, me.entry)
	}
	return entries, nil
}

func (mq *memoryQueue) Size() int {
	mq.mu.Lock()
	defer mq.mu.Unlock()
	return len(mq.pending) + len(mq.claimed)
}

func (mq *memoryQueue) Close(context.Context) error {
	return nil
}

// ordered returns claimed and pending entries sorted by sequence. Callers hold mq.mu.
func (mq *memoryQueue) ordered() []*memoryEntry {
	all := make([]*memoryEntry, 0, len(mq.pending)+len(mq.claimed))
	all = append(all, mq.pending...)
	for _, me := range mq.claimed {
		all = append(all, me)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].seq < all[j].seq })
	return all
}
