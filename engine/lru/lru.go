// Package lru implements the recency eviction engine: a doubly linked
// recency list plus a key index, evicting the least-recently-used entry
// in O(1).
package lru

import (
	"sync"

	"github.com/vkazantsev/evictcache/engine"
)

// node is an intrusive doubly linked list element. head is MRU, tail is LRU.
type node[K comparable, V any] struct {
	key  K
	val  V
	prev *node[K, V]
	next *node[K, V]
}

// LRU is a classic move-to-front recency cache.
//
// All methods are safe for concurrent use; a single mutex covers the whole
// instance, acquired for the duration of every public method.
type LRU[K comparable, V any] struct {
	mu   sync.Mutex
	m    map[K]*node[K, V]
	head *node[K, V] // MRU
	tail *node[K, V] // LRU
	size int
	cap  int

	metrics engine.Metrics
	onEvict func(K, V, engine.EvictReason)
}

// New constructs an LRU engine with the given capacity. Capacity 0 is legal:
// Put becomes a no-op and Get always misses.
func New[K comparable, V any](capacity int, opt *engine.Options[K, V]) *LRU[K, V] {
	if capacity < 0 {
		capacity = 0
	}
	return &LRU[K, V]{
		m:       make(map[K]*node[K, V], capacity),
		cap:     capacity,
		metrics: engine.MetricsOf(opt),
		onEvict: engine.OnEvictOf(opt),
	}
}

// Put inserts or updates key->value and promotes it to MRU.
func (c *LRU[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cap == 0 {
		return
	}

	if n, ok := c.m[key]; ok {
		n.val = value
		c.moveToFront(n)
		return
	}

	if c.size == c.cap {
		c.evictLocked(c.tail, engine.EvictPolicy)
	}

	n := &node[K, V]{key: key, val: value}
	c.m[key] = n
	c.pushFront(n)
	c.metrics.Size(c.size)
}

// Get reports whether key is live, promoting it to MRU on a hit.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.m[key]
	if !ok {
		c.metrics.Miss()
		var zero V
		return zero, false
	}
	c.moveToFront(n)
	c.metrics.Hit()
	return n.val, true
}

// GetOrZero returns the value for key, or V's zero value on a miss.
func (c *LRU[K, V]) GetOrZero(key K) V {
	v, _ := c.Get(key)
	return v
}

// Remove deletes key if present.
func (c *LRU[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.m[key]
	if !ok {
		return false
	}
	c.evictLocked(n, engine.EvictExplicit)
	return true
}

// Len reports the number of resident entries.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// Cap reports the configured capacity.
func (c *LRU[K, V]) Cap() int {
	return c.cap
}

var _ engine.Cache[string, int] = (*LRU[string, int])(nil)

// -------------------- internals (mu held) --------------------

func (c *LRU[K, V]) pushFront(n *node[K, V]) {
	n.prev = nil
	n.next = c.head
	if c.head != nil {
		c.head.prev = n
	}
	c.head = n
	if c.tail == nil {
		c.tail = n
	}
	c.size++
}

func (c *LRU[K, V]) moveToFront(n *node[K, V]) {
	if n == c.head {
		return
	}
	c.unlink(n)
	n.prev = nil
	n.next = c.head
	if c.head != nil {
		c.head.prev = n
	}
	c.head = n
	if c.tail == nil {
		c.tail = n
	}
}

func (c *LRU[K, V]) unlink(n *node[K, V]) {
	if n.prev != nil {
		n.prev.next = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	}
	if c.head == n {
		c.head = n.next
	}
	if c.tail == n {
		c.tail = n.prev
	}
	n.prev, n.next = nil, nil
}

// evictLocked removes n from the list and index, notifying metrics/callback.
func (c *LRU[K, V]) evictLocked(n *node[K, V], reason engine.EvictReason) {
	c.unlink(n)
	delete(c.m, n.key)
	c.size--
	c.metrics.Evict(reason)
	c.onEvict(n.key, n.val, reason)
}
