package engine

import (
	"sync"

	"mailbox-engine/board"
	"mailbox-engine/internal/xmath"
)

// DefaultCacheCapacity is the number of scores kept before eviction starts.
const DefaultCacheCapacity = 1_000_000

const (
	fnvOffset uint64 = 14695981039346656037
	fnvPrime  uint64 = 1099511628211
)

// Fingerprint hashes the board contents and the side to move with FNV-1a.
// Castling rights and the en passant square are not part of the key, so two
// positions that differ only there share a cached score.
func Fingerprint(p board.Position) uint64 {
	h := fnvOffset
	for _, pc := range p.Board {
		h ^= uint64(uint8(int(pc) + 128))
		h *= fnvPrime
	}
	var side uint64
	if p.WhiteToMove {
		side = 1
	}
	h ^= side
	h *= fnvPrime
	return h
}

// CacheStats is a snapshot of the cache counters.
type CacheStats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Len       int
	Capacity  int
}

// Cache maps position fingerprints to mover-relative scores. When full, the
// oldest half of the entries (by first insertion) is dropped in one go.
type Cache struct {
	mu       sync.Mutex
	capacity int
	scores   map[uint64]int
	order    []uint64 // keys in insertion order, oldest first

	hits, misses, evictions uint64
}

// NewCache returns an empty cache. A capacity below 1 selects the default.
func NewCache(capacity int) *Cache {
	if capacity < 1 {
		capacity = DefaultCacheCapacity
	}
	initial := xmath.Min(capacity, 1<<16)
	return &Cache{
		capacity: capacity,
		scores:   make(map[uint64]int, initial),
		order:    make([]uint64, 0, initial),
	}
}

// Get returns the cached score for key.
func (c *Cache) Get(key uint64) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	score, ok := c.scores[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return score, ok
}

// Put stores score under key. Overwriting an existing key keeps its place in
// the eviction order.
func (c *Cache) Put(key uint64, score int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.scores[key]; ok {
		c.scores[key] = score
		return
	}
	if len(c.scores) >= c.capacity {
		c.evictOldestHalf()
	}
	c.scores[key] = score
	c.order = append(c.order, key)
}

// evictOldestHalf drops max(1, capacity/2) of the oldest keys. Caller holds mu.
func (c *Cache) evictOldestHalf() {
	n := xmath.Clamp(c.capacity/2, 1, len(c.order))
	for _, key := range c.order[:n] {
		delete(c.scores, key)
	}
	c.evictions += uint64(n)
	// Shift the survivors to the front of the backing array.
	kept := copy(c.order, c.order[n:])
	c.order = c.order[:kept]
}

// Len returns the number of cached scores.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.scores)
}

// Capacity returns the configured maximum size.
func (c *Cache) Capacity() int { return c.capacity }

// Clear drops every entry and resets the counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scores = make(map[uint64]int)
	c.order = c.order[:0]
	c.hits, c.misses, c.evictions = 0, 0, 0
}

// Stats returns a snapshot of the counters.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Len:       len(c.scores),
		Capacity:  c.capacity,
	}
}
