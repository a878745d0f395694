// Package loader decorates any engine.Cache with a GetOrLoad operation that
// coalesces concurrent misses for the same key into a single upstream load,
// using the module's internal singleflight group.
package loader

import (
	"context"

	"github.com/vkazantsev/evictcache/engine"
	"github.com/vkazantsev/evictcache/internal/singleflight"
)

// LoadFunc fetches the value for key from whatever upstream source backs
// the cache (database, remote service, expensive computation).
type LoadFunc[K comparable, V any] func(ctx context.Context, key K) (V, error)

// Loader wraps an engine.Cache with read-through loading: a miss triggers
// exactly one in-flight call to fn per key, regardless of how many
// goroutines request it concurrently, and the result is cached before
// being returned to every waiter.
type Loader[K comparable, V any] struct {
	cache engine.Cache[K, V]
	fn    LoadFunc[K, V]
	group singleflight.Group[K, V]
}

// New wraps cache with a loader that calls fn on a miss.
func New[K comparable, V any](cache engine.Cache[K, V], fn LoadFunc[K, V]) *Loader[K, V] {
	return &Loader[K, V]{cache: cache, fn: fn}
}

// GetOrLoad returns the cached value for key if present; otherwise it calls
// fn, caches a successful result, and returns it. Concurrent GetOrLoad calls
// for the same missing key share one call to fn.
func (l *Loader[K, V]) GetOrLoad(ctx context.Context, key K) (V, error) {
	if v, ok := l.cache.Get(key); ok {
		return v, nil
	}

	v, err := l.group.Do(ctx, key, func() (V, error) {
		// Re-check: another goroutine's load may have landed between our
		// miss above and acquiring leadership of this key's singleflight.
		if v, ok := l.cache.Get(key); ok {
			return v, nil
		}
		v, err := l.fn(ctx, key)
		if err != nil {
			var zero V
			return zero, err
		}
		l.cache.Put(key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return v, nil
}

// Cache returns the underlying wrapped cache, for direct Put/Remove/etc.
func (l *Loader[K, V]) Cache() engine.Cache[K, V] {
	return l.cache
}
