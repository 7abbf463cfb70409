// Package cache provides the bounded get-or-compute memoization used by the
// read queries. One Cache instance exists per query shape; they are built in
// the composition root and handed to the service, never held in globals.
package cache

import (
	"crypto/md5"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// Cache memoizes computed values under serialized argument keys for up to
// TTL, evicting oldest-first once over capacity. A capacity or TTL of zero
// disables caching entirely: every lookup misses and nothing is stored.
//
// A successful write elsewhere never invalidates an entry; readers may see
// results up to TTL stale. That trade-off is deliberate and relied upon.
type Cache[V any] struct {
	name     string
	capacity int
	ttl      time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	entries map[string]entry[V]
	order   []string

	now func() time.Time
}

// Option configures a Cache at construction time.
type Option[V any] func(*Cache[V])

// WithClock replaces the time source, for deterministic expiry in tests.
func WithClock[V any](now func() time.Time) Option[V] {
	return func(c *Cache[V]) { c.now = now }
}

func New[V any](name string, capacity int, ttl time.Duration, logger *slog.Logger, opts ...Option[V]) *Cache[V] {
	c := &Cache[V]{
		name:     name,
		capacity: capacity,
		ttl:      ttl,
		logger:   logger,
		entries:  make(map[string]entry[V]),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOrCompute returns the live cached value for key, or invokes compute,
// stores its result and returns it. Compute errors are returned as-is and
// never cached.
//
// Concurrent misses on the same key are not deduplicated: racing callers
// may each run compute, and the last store wins. Accepted design gap.
func (c *Cache[V]) GetOrCompute(key string, compute func() (V, error)) (V, error) {
	if c.disabled() {
		return compute()
	}

	if value, ok := c.lookup(key); ok {
		c.logger.Debug("cache hit", "cache", c.name, "key", key)
		return value, nil
	}
	c.logger.Debug("cache miss", "cache", c.name, "key", key)

	value, err := compute()
	if err != nil {
		return value, err
	}

	c.store(key, value)
	return value, nil
}

// Len reports the number of entries currently stored, expired or not.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache[V]) disabled() bool {
	return c.capacity <= 0 || c.ttl <= 0
}

func (c *Cache[V]) lookup(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if c.now().Sub(e.storedAt) >= c.ttl {
		delete(c.entries, key)
		c.removeFromOrder(key)
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *Cache[V]) store(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.removeFromOrder(key)
	}
	c.entries[key] = entry[V]{value: value, storedAt: c.now()}
	c.order = append(c.order, key)

	for len(c.entries) > c.capacity && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
}

func (c *Cache[V]) removeFromOrder(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// Key builds a deterministic cache key from the full argument tuple of a
// query, absent arguments included, then hashes it so keys stay uniform.
// Equal argument sets always produce equal keys.
func Key(namespace string, parts ...string) string {
	raw := namespace + ":" + strings.Join(parts, ",")
	hash := md5.Sum([]byte(raw))
	return fmt.Sprintf("%s:%x", namespace, hash)
}
