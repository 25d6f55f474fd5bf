// Package cache provides an in-memory read cache for catalog responses.
// It uses patrickmn/go-cache for TTL-based expiration; mutation events
// invalidate entries so reads never serve stale items past a write.
package cache

import (
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Well-known cache keys for catalog reads.
const (
	// ListKey caches the full sorted item listing.
	ListKey = "items:all"

	itemKeyPrefix = "items:id:"
)

// ItemKey returns the cache key for a single item by id.
func ItemKey(id string) string {
	return itemKeyPrefix + id
}

// Cache wraps go-cache with hit/miss accounting for the stats endpoint.
type Cache struct {
	store  *gocache.Cache
	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a new cache with the given TTL and cleanup interval.
// defaultTTL is the default expiration time for cache entries.
// cleanupInterval is how often expired items are removed from memory.
func New(defaultTTL, cleanupInterval time.Duration) *Cache {
	return &Cache{
		store: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a value from the cache.
func (c *Cache) Get(key string) (any, bool) {
	val, found := c.store.Get(key)
	if found {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return val, found
}

// Set stores a value in the cache with default TTL.
func (c *Cache) Set(key string, value any) {
	c.store.Set(key, value, gocache.DefaultExpiration)
}

// SetWithTTL stores a value in the cache with custom TTL.
func (c *Cache) SetWithTTL(key string, value any, ttl time.Duration) {
	c.store.Set(key, value, ttl)
}

// Delete removes a value from the cache.
func (c *Cache) Delete(key string) {
	c.store.Delete(key)
}

// InvalidateItem evicts the cached entry for a single item and the
// full listing, which a mutation to that item always stales.
func (c *Cache) InvalidateItem(id string) {
	c.store.Delete(ItemKey(id))
	c.store.Delete(ListKey)
}

// Clear removes all items from the cache.
func (c *Cache) Clear() {
	c.store.Flush()
}

// ItemCount returns the number of entries in the cache.
func (c *Cache) ItemCount() int {
	return c.store.ItemCount()
}

// Stats reports cache occupancy and hit rates.
type Stats struct {
	ItemCount int   `json:"item_count"`
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
}

// GetStats returns current cache statistics.
func (c *Cache) GetStats() Stats {
	return Stats{
		ItemCount: c.store.ItemCount(),
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
	}
}
