// Copyright © 2016 Abcum Ltd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package storekv is a small in-memory dbs.Datastore/dbs.Transaction
// implementation, grounded on teacher's mem package (mem.Cache) shape.
// It exists only to drive and test the query execution core end to
// end; the real transactional key-value store is a named external
// collaborator and explicitly out of scope (see SPEC_FULL.md §6).
package storekv

import (
	"context"
	"sort"
	"sync"

	"github.com/surrealdb/surrealdb/dbs"
)

// Store is an in-memory key-value map guarded by a single read-write
// lock, good enough for single-process tests and the cli query
// entrypoint. The map is unordered; GetRange sorts its results by key.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

func (s *Store) Begin(ctx context.Context, writable bool) (dbs.Transaction, error) {
	if writable {
		s.mu.Lock()
	} else {
		s.mu.RLock()
	}
	return &txn{store: s, writable: writable, writes: make(map[string][]byte), deletes: make(map[string]bool)}, nil
}

func (s *Store) Close() error { return nil }

// txn is a single transaction holding the store's lock from Begin until
// Commit or Cancel (exclusive when writable): reads see the store plus this
// transaction's own pending writes; writes/deletes are buffered until
// Commit, which applies them atomically under the held lock.
type txn struct {
	store    *Store
	writable bool
	done     bool
	writes   map[string][]byte
	deletes  map[string]bool
}

func (t *txn) Writable() bool { return t.writable }

// Lock is a no-op here: Store.Begin already takes the store's RWMutex
// exclusively (writable) or shared (read-only) for the lifetime of the
// transaction, so there's no further exclusive-use window to grant.
func (t *txn) Lock() error { return nil }

func (t *txn) Get(ctx context.Context, key []byte) ([]byte, error) {
	k := string(key)
	if t.deletes[k] {
		return nil, nil
	}
	if v, ok := t.writes[k]; ok {
		return v, nil
	}
	if v, ok := t.store.data[k]; ok {
		return v, nil
	}
	return nil, nil
}

func (t *txn) GetRange(ctx context.Context, beg, end []byte) ([]dbs.KV, error) {
	b, e := string(beg), string(end)
	seen := make(map[string]bool)
	var out []dbs.KV

	for k, v := range t.store.data {
		if k >= b && k < e && !t.deletes[k] {
			if wv, ok := t.writes[k]; ok {
				out = append(out, dbs.KV{Key: []byte(k), Val: wv})
			} else {
				out = append(out, dbs.KV{Key: []byte(k), Val: v})
			}
			seen[k] = true
		}
	}
	for k, v := range t.writes {
		if !seen[k] && k >= b && k < e && !t.deletes[k] {
			out = append(out, dbs.KV{Key: []byte(k), Val: v})
		}
	}

	sort.Slice(out, func(i, j int) bool { return string(out[i].Key) < string(out[j].Key) })
	return out, nil
}

func (t *txn) Put(ctx context.Context, key, val []byte) error {
	k := string(key)
	t.writes[k] = append([]byte{}, val...)
	delete(t.deletes, k)
	return nil
}

func (t *txn) Del(ctx context.Context, key []byte) error {
	k := string(key)
	delete(t.writes, k)
	t.deletes[k] = true
	return nil
}

// CompleteChanges flushes this transaction's buffered writes/deletes
// into the store. Safe to call more than once (a second call flushes
// nothing, since the buffers are drained on the first). merge is
// unused: storekv has no conflicting-write detection to reconcile.
func (t *txn) CompleteChanges(merge bool) error {
	if !t.writable {
		return nil
	}
	for k, v := range t.writes {
		t.store.data[k] = v
	}
	for k := range t.deletes {
		delete(t.store.data, k)
	}
	t.writes = make(map[string][]byte)
	t.deletes = make(map[string]bool)
	return nil
}

func (t *txn) Commit() error {
	if t.done {
		return nil
	}
	t.done = true
	defer t.release()
	return t.CompleteChanges(false)
}

func (t *txn) Cancel() error {
	if t.done {
		return nil
	}
	t.done = true
	t.release()
	return nil
}

func (t *txn) release() {
	if t.writable {
		t.store.mu.Unlock()
	} else {
		t.store.mu.RUnlock()
	}
}
