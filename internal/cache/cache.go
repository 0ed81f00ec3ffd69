// Package cache provides a small TTL cache used to front the per-request
// form resolution. It is strictly a performance optimization: entries
// expire after a bounded window and every builder mutation invalidates
// them, so the authoritative store is never trailed by more than the TTL.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value    V
	deadline time.Time
}

type Cache[K comparable, V any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[K]entry[V]
}

func New[K comparable, V any](ttl time.Duration) *Cache[K, V] {
	return &Cache[K, V]{
		ttl:     ttl,
		entries: make(map[K]entry[V]),
	}
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(e.deadline) {
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *Cache[K, V]) Set(key K, value V) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = entry[V]{value: value, deadline: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Flush drops every entry. Used when a mutation may affect forms whose
// membership cannot be determined cheaply (process/question/option edits).
func (c *Cache[K, V]) Flush() {
	c.mu.Lock()
	c.entries = make(map[K]entry[V])
	c.mu.Unlock()
}
