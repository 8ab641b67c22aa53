package match

import (
	"sync"

	"agon/internal/game"
)

// Turn is one row of an interaction trace: the realized actions of both
// participants on a single turn, after any noise has been applied.
type Turn struct {
	First  game.Action `json:"first"`
	Second game.Action `json:"second"`
}

// CacheKey identifies a deterministic matchup: both player names plus the
// match length.
type CacheKey struct {
	First  string
	Second string
	Turns  int
}

// DeterministicCache memoizes interaction traces for deterministic matchups.
// It is populated during the serial priming repetition only; parallel workers
// operate on independent snapshots and never write back.
type DeterministicCache struct {
	mu sync.RWMutex
	m  map[CacheKey][]Turn
}

func NewDeterministicCache() *DeterministicCache {
	return &DeterministicCache{m: make(map[CacheKey][]Turn)}
}

func (c *DeterministicCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}

func (c *DeterministicCache) Get(key CacheKey) ([]Turn, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	trace, ok := c.m[key]
	if !ok {
		return nil, false
	}
	copied := make([]Turn, len(trace))
	copy(copied, trace)
	return copied, true
}

func (c *DeterministicCache) Put(key CacheKey, trace []Turn) {
	c.mu.Lock()
	defer c.mu.Unlock()

	copied := make([]Turn, len(trace))
	copy(copied, trace)
	c.m[key] = copied
}

// Snapshot returns an independent copy of the cache. Mutations on the copy
// are never visible to the original and vice versa.
func (c *DeterministicCache) Snapshot() *DeterministicCache {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snapshot := &DeterministicCache{m: make(map[CacheKey][]Turn, len(c.m))}
	for key, trace := range c.m {
		copied := make([]Turn, len(trace))
		copy(copied, trace)
		snapshot.m[key] = copied
	}
	return snapshot
}
