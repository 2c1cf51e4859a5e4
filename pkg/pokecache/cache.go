// Package pokecache provides a bounded in-memory cache with per-entry TTL
// and least-recently-used eviction. Keys are normalized (trimmed,
// lower-cased) so equivalent lookups share one slot, and a background
// sweep removes expired entries that are never read again.
package pokecache

import (
	"context"
	"strings"
	"time"
)

// New constructs a cache and starts its background sweep.
//
// The sweep fires once per TTL and removes every expired entry; it is
// owned by the cache and stopped by Close. No sweeper is started when the
// effective TTL is zero, since lazy expiry on access already treats every
// entry as stale.
func New[V any](cfg Config) *Cache[V] {
	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	} else if ttl < 0 {
		ttl = 0
	}

	maxEntries := cfg.MaxEntries
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}

	ctx, cancel := context.WithCancel(context.Background())

	c := &Cache[V]{
		entries:    make(map[string]*entry[V]),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
		cancel:     cancel,
	}

	if ttl > 0 {
		c.wg.Add(1)
		go c.sweep(ctx, ttl)
	}

	return c
}

// Normalize canonicalizes a raw lookup key by trimming whitespace and
// lower-casing. The empty string is never a valid key.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Get returns the live value stored under the normalized key.
//
// A hit refreshes the entry's last-access time, which changes future
// eviction order. An expired entry is removed and reported as a miss.
func (c *Cache[V]) Get(rawKey string) (V, bool) {
	var zero V

	key := Normalize(rawKey)
	if key == "" {
		return zero, false
	}

	now := c.now()

	c.mutex.Lock()
	defer c.mutex.Unlock()

	ent, ok := c.entries[key]
	if !ok {
		c.stats.misses.Inc()
		return zero, false
	}

	if !now.Before(ent.expiresAt) {
		delete(c.entries, key)
		c.stats.expirations.Inc()
		c.stats.misses.Inc()
		return zero, false
	}

	ent.lastAccessed = now
	c.stats.hits.Inc()

	return ent.value, true
}

// Set stores value under the normalized key, overwriting any previous
// entry. Writes with an empty key are dropped: data is never cached for
// an unidentified key.
//
// When inserting a new key at capacity, the entry with the oldest
// last-access time is evicted first, so the cache never holds more than
// MaxEntries entries after a Set completes. Overwriting a live key does
// not evict.
func (c *Cache[V]) Set(rawKey string, value V) {
	key := Normalize(rawKey)
	if key == "" {
		return
	}

	now := c.now()

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictColdest()
	}

	c.entries[key] = &entry[V]{
		value:        value,
		createdAt:    now,
		lastAccessed: now,
		expiresAt:    now.Add(c.ttl),
	}
}

// evictColdest removes the entry with the smallest lastAccessed timestamp,
// ties broken by map iteration order. O(n) scan; MaxEntries keeps n small.
// Caller must hold the lock.
func (c *Cache[V]) evictColdest() {
	var (
		coldestKey string
		coldest    time.Time
		found      bool
	)

	for k, ent := range c.entries {
		if !found || ent.lastAccessed.Before(coldest) {
			coldestKey = k
			coldest = ent.lastAccessed
			found = true
		}
	}

	if found {
		delete(c.entries, coldestKey)
		c.stats.evictions.Inc()
	}
}

// Len returns the number of entries currently stored, counting expired
// entries not yet pruned.
func (c *Cache[V]) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return len(c.entries)
}

// Stats returns a snapshot of the hit/miss/eviction/expiration counters.
func (c *Cache[V]) Stats() Stats {
	return Stats{
		Hits:        c.stats.hits.Load(),
		Misses:      c.stats.misses.Load(),
		Evictions:   c.stats.evictions.Load(),
		Expirations: c.stats.expirations.Load(),
	}
}

// Entries returns a snapshot of the current entries in the cache.
func (c *Cache[V]) Entries() []EntryInfo {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	info := make([]EntryInfo, 0, len(c.entries))
	for k, ent := range c.entries {
		info = append(info, EntryInfo{
			Key:          k,
			CreatedAt:    ent.createdAt,
			LastAccessed: ent.lastAccessed,
			ExpiresAt:    ent.expiresAt,
		})
	}

	return info
}

// Close stops the background sweep and waits for it to exit. It is safe
// to call multiple times. Entries remain readable after Close.
func (c *Cache[V]) Close() {
	c.mutex.Lock()
	if c.closed {
		c.mutex.Unlock()
		return
	}
	c.closed = true
	c.mutex.Unlock()

	c.cancel()
	c.wg.Wait()
}

// sweep periodically removes all expired entries so that keys written once
// and never read again do not linger until eviction.
func (c *Cache[V]) sweep(ctx context.Context, interval time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			c.pruneExpired(now)
		}
	}
}

func (c *Cache[V]) pruneExpired(now time.Time) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for k, ent := range c.entries {
		if !now.Before(ent.expiresAt) {
			delete(c.entries, k)
			c.stats.expirations.Inc()
		}
	}
}
