package dbs

import (
	"github.com/dgraph-io/ristretto"
)

// Cache is a per-request cache of decoded records, keyed by record id
// string, consulted by decodeCached when the document processor loads a
// record and when FETCH dereferences one. Grounded on
// original_source/crates/core/src/kvs/cache/tx/entry.rs's tagged Entry
// sum with its Any-downcast arm: ristretto already stores `interface{}`
// values keyed by `interface{}`, so the "try_into_type<T>" pattern
// becomes a decode-on-miss closure rather than a runtime type assertion
// chain (see DESIGN.md).
type Cache struct {
	store *ristretto.Cache
}

// NewCache builds a Cache sized for a single transaction's lifetime.
func NewCache() (*Cache, error) {
	rc, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e4,
		MaxCost:     1 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Cache{store: rc}, nil
}

// GetOrCompute returns the cached value for key, computing and storing
// it via compute on a miss. compute errors are not cached.
func (c *Cache) GetOrCompute(key string, compute func() (interface{}, error)) (interface{}, error) {
	if v, ok := c.store.Get(key); ok {
		return v, nil
	}
	v, err := compute()
	if err != nil {
		return nil, err
	}
	c.store.Set(key, v, 1)
	return v, nil
}

// Invalidate drops a cached entry, used after a record is written or
// deleted.
func (c *Cache) Invalidate(key string) {
	c.store.Del(key)
}

// Close releases the cache's background goroutines.
func (c *Cache) Close() {
	c.store.Close()
}
