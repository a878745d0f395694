// Package arc implements the adaptive engine: two sub-caches, a recency
// side (T1) and a frequency side (T2), each with a ghost list of recently
// evicted keys. Ghost hits shift live capacity from one side to the other,
// letting the engine lean toward whichever access pattern — scanning or
// revisiting — the workload is actually showing.
package arc

import (
	"sync"

	"github.com/vkazantsev/evictcache/engine"
)

// DefaultTransformThreshold is the hit count at which a T1 entry is
// promoted to T2, used when New is given a non-positive threshold.
const DefaultTransformThreshold = 2

// ARC is the adaptive replacement engine described above.
//
// All methods are safe for concurrent use; a single mutex covers both
// sub-caches, acquired for the duration of every public method.
type ARC[K comparable, V any] struct {
	mu  sync.Mutex
	cap int
	t1  *subcache[K, V]
	t2  *subcache[K, V]

	metrics engine.Metrics
	onEvict func(K, V, engine.EvictReason)
}

// New constructs an ARC engine. transformThreshold <= 0 defaults to
// DefaultTransformThreshold.
func New[K comparable, V any](capacity, transformThreshold int, opt *engine.Options[K, V]) *ARC[K, V] {
	if capacity < 0 {
		capacity = 0
	}
	if transformThreshold <= 0 {
		transformThreshold = DefaultTransformThreshold
	}
	return &ARC[K, V]{
		cap:     capacity,
		t1:      newSubcache[K, V](capacity, transformThreshold),
		t2:      newSubcache[K, V](capacity, transformThreshold),
		metrics: engine.MetricsOf(opt),
		onEvict: engine.OnEvictOf(opt),
	}
}

// Put inserts or updates key->value.
func (c *ARC[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cap == 0 {
		return
	}

	inGhost := c.rebalanceOnGhostHit(key)

	if inGhost {
		// The ghost signal already shifted capacity toward this key's
		// side; T2 learns about it later via promotion on a future hit.
		c.putInto(c.t1, key, value)
		return
	}

	// First sight of this key: track it on the recency side, and mirror
	// it into the frequency side too, so it is not lost if it starts
	// accumulating hits there before T1 ever evicts it.
	if admitted := c.putInto(c.t1, key, value); admitted {
		c.putInto(c.t2, key, value)
	}
}

// Get reports whether key is live, recording the access and promoting a
// sufficiently hot T1 entry to T2.
func (c *ARC[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rebalanceOnGhostHit(key)

	if val, hit, promote := c.t1.get(key); hit {
		c.metrics.Hit()
		if promote {
			c.t1.remove(key)
			c.putInto(c.t2, key, val)
		}
		return val, true
	}
	if val, hit, _ := c.t2.get(key); hit {
		c.metrics.Hit()
		return val, true
	}
	c.metrics.Miss()
	var zero V
	return zero, false
}

// GetOrZero returns the value for key, or V's zero value on a miss.
func (c *ARC[K, V]) GetOrZero(key K) V {
	v, _ := c.Get(key)
	return v
}

// Remove deletes key from every side it might be on: the live T1/T2 lists
// and their B1/B2 ghost lists, so no trace of key survives the call.
func (c *ARC[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	v1, live1 := c.t1.remove(key)
	v2, live2 := c.t2.remove(key)
	g1 := c.t1.checkGhost(key)
	g2 := c.t2.checkGhost(key)

	if live1 || live2 {
		val := v1
		if !live1 {
			val = v2
		}
		c.metrics.Evict(engine.EvictExplicit)
		c.onEvict(key, val, engine.EvictExplicit)
		return true
	}
	return g1 || g2
}

// Len reports the number of resident entries across both sides.
func (c *ARC[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t1.size + c.t2.size
}

// Cap reports the configured capacity.
func (c *ARC[K, V]) Cap() int {
	return c.cap
}

var _ engine.Cache[string, int] = (*ARC[string, int])(nil)

// -------------------- internals (mu held) --------------------

// rebalanceOnGhostHit consults both ghost lists for key. On a hit in one
// side's ghost, it tries to shrink the other side by one and, on success,
// grows this side by one — the classic ARC adaptation step.
func (c *ARC[K, V]) rebalanceOnGhostHit(key K) (inGhost bool) {
	if c.t1.checkGhost(key) {
		if ek, ev, evicted, ok := c.t2.decreaseCapacity(); ok {
			c.t1.increaseCapacity()
			if evicted {
				c.notifyEvict(ek, ev)
			}
		}
		return true
	}
	if c.t2.checkGhost(key) {
		if ek, ev, evicted, ok := c.t1.decreaseCapacity(); ok {
			c.t2.increaseCapacity()
			if evicted {
				c.notifyEvict(ek, ev)
			}
		}
		return true
	}
	return false
}

func (c *ARC[K, V]) putInto(s *subcache[K, V], key K, value V) (admitted bool) {
	admitted, ek, ev, evicted := s.put(key, value)
	if evicted {
		c.notifyEvict(ek, ev)
	}
	return admitted
}

func (c *ARC[K, V]) notifyEvict(key K, value V) {
	c.metrics.Evict(engine.EvictPolicy)
	c.onEvict(key, value, engine.EvictPolicy)
}
