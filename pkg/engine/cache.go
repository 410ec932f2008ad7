package engine

import (
	"sync"

	"github.com/yourusername/utttengine/internal/gameid"
)

// Cache constants
const (
	DefaultCacheSize = 1 << 18 // 256K entries
	CacheHit         = ^uint32(0)
)

// CacheEntry stores one cached evaluation result.
type CacheEntry struct {
	Key   gameid.Key // position key (6 uint32s = 24 bytes)
	Ctx   int32      // evaluation context (perspective, opponent model)
	Score int32
}

// EvalCache is a thread-safe evaluation cache using a two-way associative
// layout with MurmurHash3-based indexing.
type EvalCache struct {
	entries  []cacheNode
	size     uint32
	hashMask uint32

	// Statistics
	lookups uint64
	hits    uint64
	adds    uint64

	mu sync.RWMutex
}

// cacheNode holds primary and secondary entries of one two-way slot.
type cacheNode struct {
	primary   CacheEntry
	secondary CacheEntry
}

// NewEvalCache creates an evaluation cache with the given size.
// Size is rounded up to the nearest power of 2.
func NewEvalCache(size uint32) *EvalCache {
	if size > 1<<30 {
		size = 1 << 30
	}
	p := uint32(2)
	for p < size {
		p <<= 1
	}
	size = p

	cache := &EvalCache{
		entries:  make([]cacheNode, size/2),
		size:     size,
		hashMask: (size / 2) - 1,
	}
	cache.Flush()
	return cache
}

// invalidKey can never be produced by MakeKey: the top bits of the last
// word are beyond the 167-bit payload.
func invalidKey() gameid.Key {
	return gameid.Key{Data: [6]uint32{0, 0, 0, 0, 0, ^uint32(0)}}
}

// Flush clears all entries and resets the statistics.
func (c *EvalCache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()

	inv := invalidKey()
	for i := range c.entries {
		c.entries[i].primary.Key = inv
		c.entries[i].secondary.Key = inv
	}
	c.lookups = 0
	c.hits = 0
	c.adds = 0
}

// hash computes the slot index using MurmurHash3-style mixing.
func (c *EvalCache) hash(key gameid.Key, ctx int32) uint32 {
	const c1 = 0xcc9e2d51
	const c2 = 0x1b873593

	h := uint32(0)
	for _, k := range key.Data {
		k *= c1
		k = (k << 15) | (k >> 17)
		k *= c2

		h ^= k
		h = (h << 13) | (h >> 19)
		h = h*5 + 0xe6546b64
	}

	k := uint32(ctx)
	k *= c1
	k = (k << 15) | (k >> 17)
	k *= c2
	h ^= k

	h ^= 28
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16

	return h & c.hashMask
}

// Lookup checks the cache for a position. On a hit it returns CacheHit and
// the cached score; on a miss it returns the slot to pass to Add.
func (c *EvalCache) Lookup(key gameid.Key, ctx int32) (int32, uint32) {
	slot := c.hash(key, ctx)

	c.mu.RLock()
	defer c.mu.RUnlock()

	c.lookups++

	node := &c.entries[slot]
	if gameid.EqualKeys(node.primary.Key, key) && node.primary.Ctx == ctx {
		c.hits++
		return node.primary.Score, CacheHit
	}
	if gameid.EqualKeys(node.secondary.Key, key) && node.secondary.Ctx == ctx {
		c.hits++
		return node.secondary.Score, CacheHit
	}
	return 0, slot
}

// Add stores an evaluation result. slot must come from a Lookup miss.
func (c *EvalCache) Add(key gameid.Key, ctx int32, score int32, slot uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	node := &c.entries[slot]
	node.secondary = node.primary
	node.primary = CacheEntry{Key: key, Ctx: ctx, Score: score}

	c.adds++
}

// Stats returns cache statistics.
func (c *EvalCache) Stats() (lookups, hits, adds uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lookups, c.hits, c.adds
}

// HitRate returns the cache hit rate as a percentage.
func (c *EvalCache) HitRate() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.lookups == 0 {
		return 0
	}
	return float64(c.hits) / float64(c.lookups) * 100
}

// MakeEvalContext packs the evaluation parameters that affect a score into
// a single int32 for cache keying.
//
// Bit layout:
//
//	bit 0:      perspective (0 = Cross, 1 = Nought)
//	bits 1-16:  opponent model fingerprint (0 when no model)
func MakeEvalContext(perspective int, modelFingerprint uint16) int32 {
	ctx := int32(perspective & 1)
	ctx |= int32(modelFingerprint) << 1
	return ctx
}
