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
	"bytes"
	"context"
	"encoding/binary"
	"errors"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var (
	errValueNotSet          = errors.New("value not set")
	errKeyNotPresentInBatch = errors.New("key was not present in get batchStruct")

	json = jsoniter.ConfigCompatibleWithStandardLibrary
)

// batchStruct provides convenience capabilities for creating and processing storage
// client batches. Reads are applied before writes.
type batchStruct struct {
	logger *zap.Logger
	pq     *persistentQueue

	getKeys    []string
	setEntries map[string][]byte
	results    map[string][]byte
}

func newBatch(pq *persistentQueue) *batchStruct {
	return &batchStruct{
		logger:     pq.logger,
		pq:         pq,
		setEntries: map[string][]byte{},
		results:    map[string][]byte{},
	}
}

// execute runs the provided operations in order
func (bof *batchStruct) execute(ctx context.Context) (*batchStruct, error) {
	values, err := bof.pq.client.Batch(ctx, bof.getKeys, bof.setEntries)
	if err != nil {
		return nil, err
	}
	for i, key := range bof.getKeys {
		if i < len(values) {
			bof.results[key] = values[i]
		}
	}
	return bof, nil
}

// set adds a Set operation to the batch
func (bof *batchStruct) set(key string, value interface{}, marshal func(interface{}) ([]byte, error)) *batchStruct {
	valueBytes, err := marshal(value)
	if err != nil {
		bof.logger.Debug("Failed marshaling item, skipping it", zap.String(zapKey, key), zap.Error(err))
	} else {
		bof.setEntries[key] = valueBytes
	}
	return bof
}

// get adds a read operation to the batch
func (bof *batchStruct) get(keys ...string) *batchStruct {
	bof.getKeys = append(bof.getKeys, keys...)
	return bof
}

// delete adds a Delete operation to the batch
func (bof *batchStruct) delete(keys ...string) *batchStruct {
	for _, key := range keys {
		bof.setEntries[key] = nil
	}
	return bof
}

// getResult returns the bytes read for key in the batch
func (bof *batchStruct) getResult(key string) ([]byte, error) {
	value, found := bof.results[key]
	if !found {
		if containsKey(bof.getKeys, key) {
			return nil, errValueNotSet
		}
		return nil, errKeyNotPresentInBatch
	}
	if value == nil {
		return nil, errValueNotSet
	}
	return value, nil
}

// getEntryResult returns the entry read for key in the batch
func (bof *batchStruct) getEntryResult(key string) (*Entry, error) {
	data, err := bof.getResult(key)
	if err != nil {
		return nil, err
	}
	entry := &Entry{}
	if err := json.Unmarshal(data, entry); err != nil {
		return nil, err
	}
	if entry.ID == "" {
		return nil, errValueNotSet
	}
	return entry, nil
}

// getItemIndexResult returns an item index read for key in the batch
func (bof *batchStruct) getItemIndexResult(key string) (itemIndex, error) {
	data, err := bof.getResult(key)
	if err != nil {
		return itemIndex(0), err
	}
	return bytesToItemIndex(data)
}

// getItemIndexArrayResult returns the item index array read for key in the batch.
// A missing key reads as a nil array.
func (bof *batchStruct) getItemIndexArrayResult(key string) ([]itemIndex, error) {
	data, err := bof.getResult(key)
	if errors.Is(err, errValueNotSet) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return bytesToItemIndexArray(data)
}

// setEntry adds a Set operation storing the entry under key
func (bof *batchStruct) setEntry(key string, entry *Entry) *batchStruct {
	return bof.set(key, entry, entryToBytes)
}

// setItemIndex adds a Set operation storing the item index under key
func (bof *batchStruct) setItemIndex(key string, value itemIndex) *batchStruct {
	return bof.set(key, value, itemIndexToBytes)
}

// setItemIndexArray adds a Set operation storing the item index array under key
func (bof *batchStruct) setItemIndexArray(key string, value []itemIndex) *batchStruct {
	return bof.set(key, value, itemIndexArrayToBytes)
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

func entryToBytes(entry interface{}) ([]byte, error) {
	return json.Marshal(entry)
}

func itemIndexToBytes(val interface{}) ([]byte, error) {
	var buf bytes.Buffer
	err := binary.Write(&buf, binary.LittleEndian, val)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), err
}

func bytesToItemIndex(b []byte) (itemIndex, error) {
	var val itemIndex
	err := binary.Read(bytes.NewReader(b), binary.LittleEndian, &val)
	if err != nil {
		return val, err
	}
	return val, nil
}

func itemIndexArrayToBytes(arr interface{}) ([]byte, error) {
	var buf bytes.Buffer
	size := 0

	if arr != nil {
		arrItemIndex, ok := arr.([]itemIndex)
		if ok {
			size = len(arrItemIndex)
		}
	}

	err := binary.Write(&buf, binary.LittleEndian, uint32(size))
	if err != nil {
		return nil, err
	}

	if size > 0 {
		err = binary.Write(&buf, binary.LittleEndian, arr)
		if err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), err
}

func bytesToItemIndexArray(b []byte) ([]itemIndex, error) {
	var size uint32
	reader := bytes.NewReader(b)
	err := binary.Read(reader, binary.LittleEndian, &size)
	if err != nil {
		return nil, err
	}

	val := make([]itemIndex, size)
	err = binary.Read(reader, binary.LittleEndian, &val)
	return val, err
}
