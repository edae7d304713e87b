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

package queue

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/distribution"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/extension/storage"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/extension/storage/storagetest"
)

func createTestClient(t *testing.T, extension storage.Extension) storage.Client {
	client, err := extension.GetClient(context.Background(), component.KindExporter, config.NewID("agent"), "queue")
	require.NoError(t, err)
	return client
}

func createTestPersistentQueue(t *testing.T, client storage.Client) *persistentQueue {
	q, err := NewPersistentQueue(context.Background(), "test", zap.NewNop(), client)
	require.NoError(t, err)
	return q.(*persistentQueue)
}

func TestPersistentQueue_RestartKeepsEntries(t *testing.T) {
	ctx := context.Background()
	ext := storagetest.NewMemoryExtension(nil)

	pq := createTestPersistentQueue(t, createTestClient(t, ext))
	addItems(t, pq, "A", "B", "C")
	a, ok, err := pq.Claim(ctx, MatchAll)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, pq.Ack(ctx, a))
	require.NoError(t, pq.Close(ctx))

	pq = createTestPersistentQueue(t, createTestClient(t, ext))
	assert.Equal(t, 2, pq.Size())
	assert.Equal(t, []string{"B", "C"}, packageIDs(t, pq))

	// New entries continue after the stored write index.
	addItems(t, pq, "D")
	assert.Equal(t, []string{"B", "C", "D"}, packageIDs(t, pq))
}

func TestPersistentQueue_StartWithClaimedItems(t *testing.T) {
	ctx := context.Background()
	ext := storagetest.NewMemoryExtension(nil)

	pq := createTestPersistentQueue(t, createTestClient(t, ext))
	addItems(t, pq, "A", "B", "C")
	b, ok, err := pq.Claim(ctx, ByPackageID("B"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []itemIndex{1}, pq.processing)
	require.NoError(t, pq.Close(ctx))

	core, observed := observer.New(zap.InfoLevel)
	q, err := NewPersistentQueue(ctx, "test", zap.New(core), createTestClient(t, ext))
	require.NoError(t, err)
	pq = q.(*persistentQueue)
	assert.Len(t, observed.FilterMessage("moving items left for processing by consumers back to queue").All(), 1)
	assert.Empty(t, pq.processing)
	assert.Equal(t, []itemIndex{0, 1, 2}, pq.pending)

	// The entry left in processing is claimable again, in its original position.
	_, ok, err = pq.Claim(ctx, MatchAll)
	require.NoError(t, err)
	require.True(t, ok)
	again, ok, err := pq.Claim(ctx, MatchAll)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, b.ID, again.ID)
}

func TestPersistentQueue_ReleasedAttemptsArePersisted(t *testing.T) {
	ctx := context.Background()
	ext := storagetest.NewMemoryExtension(nil)

	pq := createTestPersistentQueue(t, createTestClient(t, ext))
	addItems(t, pq, "A")
	a, ok, err := pq.Claim(ctx, MatchAll)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, pq.Release(ctx, a))
	require.NoError(t, pq.Close(ctx))

	pq = createTestPersistentQueue(t, createTestClient(t, ext))
	found, ok, err := pq.Find(ctx, ByPackageID("A"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, a.ID, found.ID)
	assert.Equal(t, 1, found.Status.Attempts)
}

func TestPersistentQueue_RestartKeepsPackageInfo(t *testing.T) {
	ctx := context.Background()
	ext := storagetest.NewMemoryExtension(nil)

	pq := createTestPersistentQueue(t, createTestClient(t, ext))
	_, err := pq.Add(ctx, Item{
		PackageID:   "A",
		PackageType: "test",
		Info: distribution.PackageInfo{
			RequestType: distribution.RequestTypeAdd,
			Paths:       []string{"/content/a"},
			Properties:  map[string]interface{}{"origin": "author", "retries": 2},
		},
	})
	require.NoError(t, err)
	require.NoError(t, pq.Close(ctx))

	pq = createTestPersistentQueue(t, createTestClient(t, ext))
	found, ok, err := pq.Find(ctx, ByPackageID("A"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, distribution.RequestTypeAdd, found.Item.Info.RequestType)
	assert.Equal(t, []string{"/content/a"}, found.Item.Info.Paths)
	assert.Equal(t, "author", found.Item.Info.Properties["origin"])
	assert.EqualValues(t, 2, found.Item.Info.Properties["retries"])
}

func TestPersistentQueue_CorruptedData(t *testing.T) {
	cases := []struct {
		name              string
		corruptKey        string
		corruptValue      []byte
		expectedSize      int
		expectedWarnCount int
	}{
		{
			name:         "uncorrupted",
			expectedSize: 3,
		},
		{
			name:              "corrupted item",
			corruptKey:        "1",
			corruptValue:      []byte("not json"),
			expectedSize:      2,
			expectedWarnCount: 1,
		},
		{
			name:              "empty item",
			corruptKey:        "2",
			corruptValue:      []byte("{}"),
			expectedSize:      2,
			expectedWarnCount: 1,
		},
		{
			name:              "corrupted pending list",
			corruptKey:        pendingItemsKey,
			corruptValue:      []byte{1},
			expectedSize:      0,
			expectedWarnCount: 1,
		},
		{
			name:         "missing write index",
			corruptKey:   writeIndexKey,
			expectedSize: 0,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctx := context.Background()
			ext := storagetest.NewMemoryExtension(nil)
			client := createTestClient(t, ext)
			pq := createTestPersistentQueue(t, client)
			addItems(t, pq, "A", "B", "C")
			require.NoError(t, pq.Close(ctx))

			client = createTestClient(t, ext)
			if c.corruptKey != "" {
				if c.corruptValue == nil {
					require.NoError(t, client.Delete(ctx, c.corruptKey))
				} else {
					require.NoError(t, client.Set(ctx, c.corruptKey, c.corruptValue))
				}
			}

			core, observed := observer.New(zap.WarnLevel)
			q, err := NewPersistentQueue(ctx, "test", zap.New(core), client)
			require.NoError(t, err)
			assert.Equal(t, c.expectedSize, q.Size())
			assert.Equal(t, c.expectedWarnCount, observed.Len())
		})
	}
}

func TestPersistentQueue_CorruptedItemIsDeleted(t *testing.T) {
	ctx := context.Background()
	client := storagetest.NewMemoryClient()
	pq := createTestPersistentQueue(t, client)
	addItems(t, pq, "A", "B")
	require.NoError(t, client.Set(ctx, "0", []byte("not json")))

	pq = createTestPersistentQueue(t, client)
	assert.Equal(t, []string{"B"}, packageIDs(t, pq))
	val, err := client.Get(ctx, "0")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestPersistentQueue_BatchFailure(t *testing.T) {
	ctx := context.Background()
	client := storagetest.NewMemoryClient()
	pq := createTestPersistentQueue(t, client)
	entries := addItems(t, pq, "A", "B")
	claimed, ok, err := pq.Claim(ctx, ByPackageID("B"))
	require.NoError(t, err)
	require.True(t, ok)

	failure := errors.New("storage down")
	client.FailBatch(failure)

	_, err = pq.Add(ctx, Item{PackageID: "C"})
	assert.Equal(t, distribution.KindQueue, distribution.KindOf(err))
	assert.ErrorIs(t, err, failure)

	_, _, err = pq.Claim(ctx, MatchAll)
	assert.ErrorIs(t, err, failure)
	assert.ErrorIs(t, pq.Remove(ctx, entries[0]), failure)
	assert.ErrorIs(t, pq.Release(ctx, claimed), failure)
	assert.ErrorIs(t, pq.Ack(ctx, claimed), failure)

	// In-memory state is left untouched by failed writes.
	assert.Equal(t, 2, pq.Size())
	assert.Equal(t, []itemIndex{0}, pq.pending)
	assert.Equal(t, []itemIndex{1}, pq.processing)
	assert.Equal(t, itemIndex(2), pq.writeIndex)

	client.FailBatch(nil)
	require.NoError(t, pq.Ack(ctx, claimed))
	assert.Equal(t, []string{"A"}, packageIDs(t, pq))
}

func TestPersistentQueue_StopShouldCloseClient(t *testing.T) {
	ctx := context.Background()
	client := storagetest.NewMemoryClient()
	pq := createTestPersistentQueue(t, client)
	require.NoError(t, pq.Close(ctx))

	_, err := client.Get(ctx, writeIndexKey)
	assert.ErrorIs(t, err, storagetest.ErrClosed)
}

func TestPersistentQueueBatch_Operations(t *testing.T) {
	pq := createTestPersistentQueue(t, storagetest.NewMemoryClient())

	itemIndexValue := itemIndex(123)
	itemIndexArrayValue := []itemIndex{itemIndex(1), itemIndex(2)}

	_, err := newBatch(pq).
		setItemIndex("index", itemIndexValue).
		setItemIndexArray("arr", itemIndexArrayValue).
		execute(context.Background())
	require.NoError(t, err)

	batch, err := newBatch(pq).
		get("index", "arr").
		execute(context.Background())
	require.NoError(t, err)

	retrievedItemIndexValue, err := batch.getItemIndexResult("index")
	require.NoError(t, err)
	assert.Equal(t, itemIndexValue, retrievedItemIndexValue)

	retrievedItemIndexArrayValue, err := batch.getItemIndexArrayResult("arr")
	require.NoError(t, err)
	assert.Equal(t, itemIndexArrayValue, retrievedItemIndexArrayValue)

	_, err = newBatch(pq).delete("index", "arr").execute(context.Background())
	require.NoError(t, err)

	batch, err = newBatch(pq).
		get("index", "arr").
		execute(context.Background())
	require.NoError(t, err)

	_, err = batch.getItemIndexResult("index")
	assert.ErrorIs(t, err, errValueNotSet)

	retrievedItemIndexArrayValue, err = batch.getItemIndexArrayResult("arr")
	require.NoError(t, err)
	assert.Nil(t, retrievedItemIndexArrayValue)
}

func TestPersistentQueueBatch_Errors(t *testing.T) {
	pq := createTestPersistentQueue(t, storagetest.NewMemoryClient())

	marshal := func(_ interface{}) ([]byte, error) {
		return nil, errors.New("marshal error")
	}
	core, observed := observer.New(zap.DebugLevel)
	pq.logger = zap.New(core)
	batch := newBatch(pq).set("marshal-error", 1, marshal)
	require.Len(t, observed.FilterLevelExact(zap.DebugLevel).TakeAll(), 1)
	assert.NotContains(t, batch.setEntries, "marshal-error")

	_, err := batch.getResult("not-present")
	require.Equal(t, errKeyNotPresentInBatch, err)

	batch, err = newBatch(pq).get("value-not-set").execute(context.Background())
	require.NoError(t, err)
	_, err = batch.getResult("value-not-set")
	require.Equal(t, errValueNotSet, err)
}

func TestItemIndexMarshaling(t *testing.T) {
	cases := []struct {
		in  itemIndex
		out itemIndex
	}{
		{in: 0, out: 0},
		{in: 1, out: 1},
		{in: 0xFFFFFFFFFFFFFFFF, out: 0xFFFFFFFFFFFFFFFF},
	}

	for _, c := range cases {
		t.Run(fmt.Sprintf("#elements:%v", c.in), func(tt *testing.T) {
			buf, err := itemIndexToBytes(c.in)
			require.NoError(tt, err)
			out, err := bytesToItemIndex(buf)
			require.NoError(tt, err)
			require.Equal(tt, c.out, out)
		})
	}
}

func TestItemIndexArrayMarshaling(t *testing.T) {
	cases := []struct {
		in  []itemIndex
		out []itemIndex
	}{
		{in: []itemIndex{0, 1, 2}, out: []itemIndex{0, 1, 2}},
		{in: []itemIndex{}, out: []itemIndex{}},
		{in: nil, out: []itemIndex{}},
	}

	for _, c := range cases {
		t.Run(fmt.Sprintf("#elements:%v", c.in), func(tt *testing.T) {
			buf, err := itemIndexArrayToBytes(c.in)
			require.NoError(tt, err)
			out, err := bytesToItemIndexArray(buf)
			require.NoError(tt, err)
			require.Equal(tt, c.out, out)
		})
	}
}
