package pokecache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/atomic"
)

// Defaults applied by New when the corresponding Config field is zero.
const (
	DefaultTTL        = 5 * time.Minute
	DefaultMaxEntries = 80
)

// Config controls entry lifetime and capacity. The zero value gets
// DefaultTTL and DefaultMaxEntries.
type Config struct {
	// TTL is the fixed lifetime applied to every entry at insertion.
	// Reads never extend it (no sliding expiration). A negative TTL is
	// treated as zero, meaning entries are already stale when written.
	TTL time.Duration

	// MaxEntries bounds the number of entries. When a write would exceed
	// it, the entry with the oldest last-access time is evicted first.
	MaxEntries int
}

// Cache is an in-memory store with TTL expiry and LRU eviction, keyed by
// normalized strings. It is safe for concurrent use by multiple goroutines.
type Cache[V any] struct {
	mutex   sync.Mutex
	entries map[string]*entry[V]

	ttl        time.Duration
	maxEntries int

	stats counters

	// now is swapped out in tests for deterministic timestamps.
	now func() time.Time

	cancel context.CancelFunc
	wg     sync.WaitGroup
	closed bool
}

type entry[V any] struct {
	value        V
	createdAt    time.Time
	lastAccessed time.Time
	expiresAt    time.Time
}

type counters struct {
	hits        atomic.Int64
	misses      atomic.Int64
	evictions   atomic.Int64
	expirations atomic.Int64
}

// Stats is a point-in-time snapshot of the cache's monotonic counters.
type Stats struct {
	Hits        int64 `json:"hits"`
	Misses      int64 `json:"misses"`
	Evictions   int64 `json:"evictions"`
	Expirations int64 `json:"expirations"`
}

// EntryInfo describes a cached entry for introspection.
type EntryInfo struct {
	Key          string
	CreatedAt    time.Time
	LastAccessed time.Time
	ExpiresAt    time.Time
}
