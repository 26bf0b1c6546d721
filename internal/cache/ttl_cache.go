package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time // zero means no expiration
}

func (e entry[V]) expired(at time.Time) bool {
	return !e.expiresAt.IsZero() && at.After(e.expiresAt)
}

// TTLCache is a goroutine-safe map-backed Cache. Expired entries are dropped
// lazily on Get or by PurgeExpired; there is no background janitor.
type TTLCache[K comparable, V any] struct {
	mu    sync.Mutex
	items map[K]entry[V]
	max   int
}

// NewTTLCache returns a cache holding at most max entries (max <= 0 means unbounded).
// When full, expired entries are purged first and then an arbitrary entry is evicted.
func NewTTLCache[K comparable, V any](max int) *TTLCache[K, V] {
	return &TTLCache[K, V]{
		items: make(map[K]entry[V]),
		max:   max,
	}
}

// now is swapped in tests.
var now = time.Now

func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.items[key]
	if !ok {
		return zero, false
	}
	if e.expired(now()) {
		delete(c.items, key)
		return zero, false
	}
	return e.value, true
}

func (c *TTLCache[K, V]) Set(key K, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; !exists && c.max > 0 && len(c.items) >= c.max {
		c.evictLocked()
	}

	var exp time.Time
	if ttl > 0 {
		exp = now().Add(ttl)
	}
	c.items[key] = entry[V]{value: value, expiresAt: exp}
}

func (c *TTLCache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

func (c *TTLCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	at := now()
	n := 0
	for _, e := range c.items {
		if !e.expired(at) {
			n++
		}
	}
	return n
}

func (c *TTLCache[K, V]) PurgeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.purgeLocked()
}

func (c *TTLCache[K, V]) purgeLocked() {
	at := now()
	for k, e := range c.items {
		if e.expired(at) {
			delete(c.items, k)
		}
	}
}

func (c *TTLCache[K, V]) evictLocked() {
	c.purgeLocked()
	if len(c.items) < c.max {
		return
	}
	for k := range c.items {
		delete(c.items, k)
		return
	}
}

var _ Cache[string, string] = (*TTLCache[string, string])(nil)
