// Package cache provides the caching layer for omarket. Two backends
// implement the same byte-oriented interface: an in-process map for
// single-node deployments and Redis for shared installations.
package cache

import (
	"context"
	"time"
)

// Cache is the interface all backends implement. Implementations must
// be safe for concurrent use. Values are opaque byte slices so the same
// interface serves both the in-memory and the Redis backend.
type Cache interface {
	// Get returns the value for key, or ErrMiss when the key is
	// absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key. A zero ttl means the backend's
	// default TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every entry owned by this cache.
	Clear(ctx context.Context) error

	// Close releases backend resources. Operations after Close
	// return ErrClosed.
	Close() error
}

// StatsProvider is implemented by backends that track hit counters.
type StatsProvider interface {
	Stats() Stats
}

// Stats holds counters since the cache was created.
type Stats struct {
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	Sets    int64   `json:"sets"`
	Items   int     `json:"items"`
	HitRate float64 `json:"hit_rate"`
}

// Error is a sentinel error type for cache operations.
type Error string

func (e Error) Error() string { return string(e) }

const (
	// ErrMiss indicates the key was not found or has expired.
	ErrMiss Error = "cache miss"

	// ErrClosed indicates the cache has been closed.
	ErrClosed Error = "cache closed"
)

func hitRate(hits, misses int64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total) * 100
}
