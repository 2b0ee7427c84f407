// Package cache provides a bounded, concurrency-safe map with first-in
// first-out eviction.
package cache

import (
	"sync"

	"github.com/gammazero/deque"
)

// Cache maps keys to values and evicts the oldest insertion once it holds
// more than its capacity. It uses sync.RWMutex for read-heavy workloads.
type Cache[K comparable, V any] struct {
	mu       sync.RWMutex
	capacity int
	entries  map[K]entry[V]
	order    deque.Deque[slot[K]]
	gen      uint64
}

type entry[V any] struct {
	value V
	gen   uint64
}

// slot records an insertion. A slot whose generation no longer matches the
// live entry is stale and skipped on eviction.
type slot[K comparable] struct {
	key K
	gen uint64
}

// New creates an empty cache holding at most capacity entries.
// A capacity of zero or less means unbounded.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	return &Cache[K, V]{
		capacity: capacity,
		entries:  make(map[K]entry[V]),
	}
}

// Get returns the value for key and whether it exists.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e.value, ok
}

// Put adds or replaces the value for key. Replacing keeps the original
// insertion position.
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.put(key, value)
}

// GetOrCreate returns the value for key, creating it with factory if it is
// missing. factory runs at most once per missing key, even under
// concurrent access.
func (c *Cache[K, V]) GetOrCreate(key K, factory func() V) V {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return e.value
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		return e.value
	}
	v := factory()
	c.put(key, v)
	return v
}

// Delete removes key. Deleting a missing key is a no-op.
func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	if c.capacity > 0 && c.order.Len() > 2*c.capacity {
		c.compact()
	}
}

// Len returns the number of entries.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Purge removes every entry.
func (c *Cache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[K]entry[V])
	c.order = deque.Deque[slot[K]]{}
}

// put must be called with the write lock held.
func (c *Cache[K, V]) put(key K, value V) {
	if e, ok := c.entries[key]; ok {
		c.entries[key] = entry[V]{value: value, gen: e.gen}
		return
	}
	if c.capacity <= 0 {
		c.entries[key] = entry[V]{value: value}
		return
	}

	c.gen++
	c.entries[key] = entry[V]{value: value, gen: c.gen}
	c.order.PushBack(slot[K]{key: key, gen: c.gen})

	for len(c.entries) > c.capacity {
		s := c.order.PopFront()
		if e, ok := c.entries[s.key]; ok && e.gen == s.gen {
			delete(c.entries, s.key)
		}
	}
}

// compact drops stale slots left behind by Delete.
func (c *Cache[K, V]) compact() {
	for n := c.order.Len(); n > 0; n-- {
		s := c.order.PopFront()
		if e, ok := c.entries[s.key]; ok && e.gen == s.gen {
			c.order.PushBack(s)
		}
	}
}
