package ui

import (
	"hash/fnv"
	"sync"
	"sync/atomic"
)

// Rendered is a drawn viewer frame, clipped to the width it was drawn for.
type Rendered struct {
	Content    string
	ActiveLine int
	Lines      int
}

// RenderCache keeps recently drawn frames keyed by the inputs that produced
// them. When it grows past maxSize it starts over.
type RenderCache struct {
	cache   sync.Map
	size    atomic.Int64
	maxSize int
	hits    atomic.Int64
	misses  atomic.Int64
}

// NewRenderCache creates a new render cache with the specified max size.
func NewRenderCache(maxSize int) *RenderCache {
	if maxSize <= 0 {
		maxSize = 64
	}
	return &RenderCache{maxSize: maxSize}
}

// ComputeKey hashes the inputs of a render with FNV-1a. Only the types a
// frame depends on are mixed in; others are ignored.
func ComputeKey(inputs ...any) uint64 {
	h := fnv.New64a()
	var b [8]byte
	putUint := func(u uint64) {
		for i := range b {
			b[i] = byte(u >> (8 * i))
		}
		h.Write(b[:])
	}

	for _, input := range inputs {
		switch v := input.(type) {
		case string:
			h.Write([]byte(v))
		case int:
			putUint(uint64(v))
		case uint64:
			putUint(v)
		case bool:
			if v {
				h.Write([]byte{1})
			} else {
				h.Write([]byte{0})
			}
		}
	}
	return h.Sum64()
}

// Get retrieves a cached frame if available.
func (rc *RenderCache) Get(key uint64) (Rendered, bool) {
	if val, ok := rc.cache.Load(key); ok {
		rc.hits.Add(1)
		return val.(Rendered), true
	}
	rc.misses.Add(1)
	return Rendered{}, false
}

// Set stores a frame.
func (rc *RenderCache) Set(key uint64, r Rendered) {
	if _, loaded := rc.cache.Swap(key, r); loaded {
		return
	}
	if rc.size.Add(1) > int64(rc.maxSize) {
		rc.Clear()
		rc.cache.Store(key, r)
		rc.size.Store(1)
	}
}

// Clear empties the cache.
func (rc *RenderCache) Clear() {
	rc.cache.Range(func(k, _ any) bool {
		rc.cache.Delete(k)
		return true
	})
	rc.size.Store(0)
}

// Len returns the number of cached frames.
func (rc *RenderCache) Len() int { return int(rc.size.Load()) }

// Stats returns hit and miss counts.
func (rc *RenderCache) Stats() (hits, misses int64) {
	return rc.hits.Load(), rc.misses.Load()
}

// GetOrCompute retrieves from cache or computes if missing.
func (rc *RenderCache) GetOrCompute(key uint64, compute func() Rendered) Rendered {
	if r, ok := rc.Get(key); ok {
		return r
	}
	r := compute()
	rc.Set(key, r)
	return r
}
