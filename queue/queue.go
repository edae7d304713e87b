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

// Package queue implements the named, ordered queues holding references to packages
// awaiting export.
//
// Consumers take entries with Claim, which atomically hides the first matching pending
// entry from every other consumer of the same queue. A claimed entry is then either
// acknowledged (Ack), dropped (Remove) or handed back in its original position
// (Release). Entries are never modified in place by consumers.
package queue // import "github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/queue"

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/distribution"
)

const (
	// DefaultName is the name of the queue used when none is configured.
	DefaultName = "default"

	// AttemptsProperty is the package info property holding the number of failed
	// attempts of the entry a package was materialized from.
	AttemptsProperty = "attempts"
)

var (
	// ErrUnknownEntry is returned when an entry is not, or no longer, part of the queue.
	ErrUnknownEntry = errors.New("unknown queue entry")
	// ErrNotClaimed is returned when releasing or acknowledging an entry that was not claimed.
	ErrNotClaimed = errors.New("queue entry is not claimed")
)

// Item references the package a queue entry stands for.
type Item struct {
	PackageID   string                   `json:"packageId"`
	PackageType string                   `json:"packageType"`
	Info        distribution.PackageInfo `json:"info"`
}

// Status is the processing state of an entry.
type Status struct {
	// Attempts counts the times the entry was handed back after a failed attempt.
	Attempts  int       `json:"attempts"`
	EnteredAt time.Time `json:"enteredAt"`
}

// Entry is a queued item.
type Entry struct {
	ID     string `json:"id"`
	Item   Item   `json:"item"`
	Status Status `json:"status"`
}

// Selector reports whether an entry is relevant to a consumer.
type Selector func(Entry) bool

// MatchAll selects every entry.
func MatchAll(Entry) bool {
	return true
}

// ByPackageID selects the entries referencing the package with the given id.
func ByPackageID(id string) Selector {
	return func(e Entry) bool {
		return e.Item.PackageID == id
	}
}

// Queue is a named FIFO queue of entries, safe for concurrent use by several consumers.
type Queue interface {
	// Name returns the queue name.
	Name() string

	// Add appends an item to the queue and returns the created entry.
	Add(ctx context.Context, item Item) (Entry, error)

	// Claim atomically takes the first pending entry, in FIFO order, accepted by sel.
	// The entry stays in the queue but no other Claim returns it until it is released.
	// The boolean is false when no pending entry matches.
	Claim(ctx context.Context, sel Selector) (Entry, bool, error)

	// Ack permanently removes a claimed entry after it was handled.
	Ack(ctx context.Context, e Entry) error

	// Remove permanently drops an entry, claimed or pending, without handling it.
	Remove(ctx context.Context, e Entry) error

	// Release hands a claimed entry back to its original position and counts the attempt.
	Release(ctx context.Context, e Entry) error

	// Find returns the first entry, claimed or pending, accepted by sel without changing the queue.
	Find(ctx context.Context, sel Selector) (Entry, bool, error)

	// Entries returns a snapshot of the queue in FIFO order.
	Entries(ctx context.Context) ([]Entry, error)

	// Size returns the number of entries, claimed ones included.
	Size() int

	// Close releases the resources held by the queue.
	Close(ctx context.Context) error
}

// entryError reports a lifecycle call on an entry the queue does not hold in the
// required state.
func entryError(queueName, op string, e Entry, err error) error {
	return distribution.NewQueueError(fmt.Sprintf("cannot %s entry %q of queue %s", op, e.ID, queueName), err)
}
