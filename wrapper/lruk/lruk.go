// Package lruk implements an admission-filtering wrapper: a key must be
// seen K times before it is promoted into the main cache, filtering
// one-off scans and cold keys out of the hot set.
package lruk

import (
	"sync"

	"github.com/vkazantsev/evictcache/engine"
	"github.com/vkazantsev/evictcache/engine/lru"
)

// DefaultK is the access count required for promotion when New is given a
// non-positive k.
const DefaultK = 2

// LRUK wraps a main cache with a bounded access-history so that only keys
// seen at least K times are admitted.
//
// All methods are safe for concurrent use; a single mutex covers the main
// cache, the history cache, and the pending-value map together.
type LRUK[K comparable, V any] struct {
	mu      sync.Mutex
	main    *lru.LRU[K, V]
	history *lru.LRU[K, int]
	pending map[K]V
	k       int

	metrics engine.Metrics
	onEvict func(K, V, engine.EvictReason)
}

// New constructs an LRU-K wrapper. mainCapacity bounds the main cache;
// historyCapacity bounds how many not-yet-promoted keys are tracked at
// once. k <= 0 defaults to DefaultK.
func New[K comparable, V any](mainCapacity, historyCapacity, k int, opt *engine.Options[K, V]) *LRUK[K, V] {
	if k <= 0 {
		k = DefaultK
	}
	w := &LRUK[K, V]{
		pending: make(map[K]V),
		k:       k,
		metrics: engine.MetricsOf(opt),
		onEvict: engine.OnEvictOf(opt),
	}
	// When the bounded history cache itself evicts a not-yet-promoted key
	// (too many cold keys churning through), its pending value must go
	// with it or the map leaks entries with no corresponding history.
	w.history = lru.New[K, int](historyCapacity, &engine.Options[K, int]{
		OnEvict: func(key K, _ int, _ engine.EvictReason) { delete(w.pending, key) },
	})
	// The main cache's own eviction notifications are the wrapper's
	// eviction notifications; wire them straight through.
	w.main = lru.New[K, V](mainCapacity, &engine.Options[K, V]{
		Metrics: w.metrics,
		OnEvict: w.onEvict,
	})
	return w
}

// Put records an access for key. If key is already live in main, it is
// updated in place. Otherwise its history count is bumped; once that count
// reaches K, the pending value is promoted into main.
func (w *LRUK[K, V]) Put(key K, value V) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.main.Cap() == 0 {
		return
	}
	if _, ok := w.main.Get(key); ok {
		w.main.Put(key, value)
		return
	}

	count := w.bumpHistoryLocked(key)
	w.pending[key] = value

	if count >= w.k {
		w.history.Remove(key)
		delete(w.pending, key)
		w.main.Put(key, value)
	}
}

// Get looks up key in main, unconditionally bumping its history count.
// If the count has now reached K and a pending value exists, it is
// promoted into main and returned. Otherwise the main lookup result (hit
// or miss) is returned unchanged.
func (w *LRUK[K, V]) Get(key K) (V, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	count := w.bumpHistoryLocked(key)

	if count >= w.k {
		if val, ok := w.pending[key]; ok {
			w.history.Remove(key)
			delete(w.pending, key)
			w.main.Put(key, val)
			return val, true
		}
	}
	return w.main.Get(key)
}

// GetOrZero returns the value for key, or V's zero value on a miss.
func (w *LRUK[K, V]) GetOrZero(key K) V {
	v, _ := w.Get(key)
	return v
}

// Remove deletes key from main and clears any pending history for it.
func (w *LRUK[K, V]) Remove(key K) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.history.Remove(key)
	delete(w.pending, key)
	return w.main.Remove(key)
}

// Len reports the number of entries live in the main cache.
func (w *LRUK[K, V]) Len() int {
	return w.main.Len()
}

// Cap reports the main cache's configured capacity.
func (w *LRUK[K, V]) Cap() int {
	return w.main.Cap()
}

var _ engine.Cache[string, int] = (*LRUK[string, int])(nil)

// bumpHistoryLocked increments key's history hit count (0 if never seen)
// and writes it back, returning the new count.
func (w *LRUK[K, V]) bumpHistoryLocked(key K) int {
	count := w.history.GetOrZero(key) + 1
	w.history.Put(key, count)
	return count
}
