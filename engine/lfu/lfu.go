// Package lfu implements the frequency eviction engine: entries are grouped
// into per-frequency buckets, the minimum non-empty bucket is evicted first
// (oldest-inserted within it breaking ties), and a global aging pass dampens
// every counter once the mean access frequency crosses a threshold.
package lfu

import (
	"sync"

	"github.com/vkazantsev/evictcache/engine"
)

// node is one cached entry, a member of exactly one frequency bucket's list.
type node[K comparable, V any] struct {
	key  K
	val  V
	freq int
	prev *node[K, V]
	next *node[K, V]
}

// bucket is a FIFO list of nodes sharing the same freq: head is the oldest
// (eviction candidate), tail is the newest.
type bucket[K comparable, V any] struct {
	head, tail *node[K, V]
	size       int
}

func (b *bucket[K, V]) pushBack(n *node[K, V]) {
	n.prev = b.tail
	n.next = nil
	if b.tail != nil {
		b.tail.next = n
	}
	b.tail = n
	if b.head == nil {
		b.head = n
	}
	b.size++
}

func (b *bucket[K, V]) remove(n *node[K, V]) {
	if n.prev != nil {
		n.prev.next = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	}
	if b.head == n {
		b.head = n.next
	}
	if b.tail == n {
		b.tail = n.prev
	}
	n.prev, n.next = nil, nil
	b.size--
}

// DefaultMaxAvg is the mean-frequency threshold used when a non-positive
// value is supplied to New, matching spec.md §6's documented default.
const DefaultMaxAvg = 10

// LFU is a frequency-bucketed cache with LRU tie-break within the minimum
// bucket and periodic counter aging.
//
// All methods are safe for concurrent use; a single mutex covers the whole
// instance.
type LFU[K comparable, V any] struct {
	mu      sync.Mutex
	m       map[K]*node[K, V]
	buckets map[int]*bucket[K, V]
	minFreq int
	size    int
	cap     int
	maxAvg  int
	total   int64 // sum of live nodes' freq; total/size drives aging

	metrics engine.Metrics
	onEvict func(K, V, engine.EvictReason)
}

// New constructs an LFU engine. maxAvg <= 0 defaults to DefaultMaxAvg.
func New[K comparable, V any](capacity, maxAvg int, opt *engine.Options[K, V]) *LFU[K, V] {
	if capacity < 0 {
		capacity = 0
	}
	if maxAvg <= 0 {
		maxAvg = DefaultMaxAvg
	}
	return &LFU[K, V]{
		m:       make(map[K]*node[K, V], capacity),
		buckets: make(map[int]*bucket[K, V]),
		cap:     capacity,
		maxAvg:  maxAvg,
		metrics: engine.MetricsOf(opt),
		onEvict: engine.OnEvictOf(opt),
	}
}

// Put inserts or updates key->value. An update counts as a hit (bumps freq).
func (c *LFU[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cap == 0 {
		return
	}

	if n, ok := c.m[key]; ok {
		n.val = value
		c.touchLocked(n)
		return
	}

	if c.size == c.cap {
		c.evictMinLocked(engine.EvictPolicy)
	}

	n := &node[K, V]{key: key, val: value, freq: 1}
	c.m[key] = n
	c.bucketFor(1).pushBack(n)
	c.minFreq = 1
	c.size++
	c.total++
	c.metrics.Size(c.size)
}

// Get reports whether key is live, bumping its frequency on a hit.
func (c *LFU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.m[key]
	if !ok {
		c.metrics.Miss()
		var zero V
		return zero, false
	}
	c.touchLocked(n)
	c.metrics.Hit()
	return n.val, true
}

// GetOrZero returns the value for key, or V's zero value on a miss.
func (c *LFU[K, V]) GetOrZero(key K) V {
	v, _ := c.Get(key)
	return v
}

// Remove deletes key if present.
func (c *LFU[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.m[key]
	if !ok {
		return false
	}
	c.evictNodeLocked(n, engine.EvictExplicit)
	return true
}

// Len reports the number of resident entries.
func (c *LFU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// Cap reports the configured capacity.
func (c *LFU[K, V]) Cap() int {
	return c.cap
}

var _ engine.Cache[string, int] = (*LFU[string, int])(nil)

// -------------------- internals (mu held) --------------------

func (c *LFU[K, V]) bucketFor(f int) *bucket[K, V] {
	b, ok := c.buckets[f]
	if !ok {
		b = &bucket[K, V]{}
		c.buckets[f] = b
	}
	return b
}

// touchLocked registers a hit on n: moves it up one frequency bucket, bumps
// min_freq if its old bucket emptied, accounts total_hits, and maybe ages.
func (c *LFU[K, V]) touchLocked(n *node[K, V]) {
	old := n.freq
	ob := c.buckets[old]
	ob.remove(n)
	if ob.size == 0 {
		delete(c.buckets, old)
		if c.minFreq == old {
			c.minFreq = old + 1
		}
	}

	n.freq = old + 1
	c.bucketFor(n.freq).pushBack(n)
	c.total++

	if c.size > 0 && float64(c.total)/float64(c.size) > float64(c.maxAvg) {
		c.ageLocked()
	}
}

// evictMinLocked evicts the oldest node in the minimum-frequency bucket.
func (c *LFU[K, V]) evictMinLocked(reason engine.EvictReason) {
	b := c.buckets[c.minFreq]
	if b == nil || b.head == nil {
		return
	}
	c.evictNodeLocked(b.head, reason)
}

// evictNodeLocked removes n from its bucket and the index, notifying
// metrics/callback and subtracting its freq from total_hits (spec.md §9).
func (c *LFU[K, V]) evictNodeLocked(n *node[K, V], reason engine.EvictReason) {
	b := c.buckets[n.freq]
	b.remove(n)
	if b.size == 0 {
		delete(c.buckets, n.freq)
		if c.minFreq == n.freq {
			c.minFreq = c.smallestNonEmptyBucketLocked()
		}
	}
	delete(c.m, n.key)
	c.size--
	c.total -= int64(n.freq)
	if c.total < 0 {
		c.total = 0
	}
	c.metrics.Evict(reason)
	c.onEvict(n.key, n.val, reason)
}

func (c *LFU[K, V]) smallestNonEmptyBucketLocked() int {
	min := 0
	for f := range c.buckets {
		if min == 0 || f < min {
			min = f
		}
	}
	if min == 0 {
		return 1
	}
	return min
}

// ageLocked dampens every live node's freq by max_avg/2 (clamped to >= 1),
// rebuilds bucket membership, and resyncs total_hits to the post-aging sum
// of frequencies (see SPEC_FULL.md §5.3 for why total_hits is resynced
// rather than left stale).
func (c *LFU[K, V]) ageLocked() {
	dec := c.maxAvg / 2
	if dec < 1 {
		dec = 1
	}

	old := c.buckets
	c.buckets = make(map[int]*bucket[K, V])

	var sum int64
	for _, b := range old {
		for n := b.head; n != nil; {
			next := n.next
			n.prev, n.next = nil, nil

			nf := n.freq - dec
			if nf < 1 {
				nf = 1
			}
			n.freq = nf
			c.bucketFor(nf).pushBack(n)
			sum += int64(nf)

			n = next
		}
	}
	c.total = sum
	c.minFreq = c.smallestNonEmptyBucketLocked()
}
