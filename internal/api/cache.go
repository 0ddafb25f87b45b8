// Package api provides caching for backend collection queries.
package api

import (
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"
)

// QueryCache provides in-memory caching for backend responses, keyed by the
// request parameters that produced them.
type QueryCache struct {
	cache     *cache.Cache
	ttl       time.Duration
	maxSize   int
	mu        sync.RWMutex
	hitCount  uint64
	missCount uint64
}

// NewQueryCache creates a new query cache
func NewQueryCache(ttl time.Duration, maxSize int) *QueryCache {
	return &QueryCache{
		cache:   cache.New(ttl, ttl*2),
		ttl:     ttl,
		maxSize: maxSize,
	}
}

// Get retrieves a cached response, or nil when absent or expired
func (qc *QueryCache) Get(key string) interface{} {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	if value, found := qc.cache.Get(key); found {
		qc.hitCount++
		qc.updateMetrics()
		return value
	}

	qc.missCount++
	qc.updateMetrics()
	return nil
}

// Set stores a response in cache
func (qc *QueryCache) Set(key string, value interface{}) {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	if qc.cache.ItemCount() >= qc.maxSize {
		qc.cache.DeleteExpired()
	}

	qc.cache.Set(key, value, qc.ttl)
}

// Invalidate removes one cache entry
func (qc *QueryCache) Invalidate(key string) {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	qc.cache.Delete(key)
}

// Clear flushes the entire cache
func (qc *QueryCache) Clear() {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	qc.cache.Flush()
	qc.hitCount = 0
	qc.missCount = 0
}

// Stats returns cache statistics
func (qc *QueryCache) Stats() (hits, misses uint64, ratio float64) {
	qc.mu.RLock()
	defer qc.mu.RUnlock()

	hits = qc.hitCount
	misses = qc.missCount
	total := hits + misses
	if total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

// ItemCount returns the number of items in cache
func (qc *QueryCache) ItemCount() int {
	return qc.cache.ItemCount()
}

func (qc *QueryCache) updateMetrics() {
	total := qc.hitCount + qc.missCount
	if total > 0 {
		CacheHitRatio.Set(float64(qc.hitCount) / float64(total))
	}
}
