// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Memory is a thread-safe in-process cache with per-entry expiry.
type Memory struct {
	data       sync.Map
	defaultTTL time.Duration
	maxItems   int
	stopCh     chan struct{}
	closed     atomic.Bool

	hits   atomic.Int64
	misses atomic.Int64
	sets   atomic.Int64
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryOptions configures the in-process backend.
type MemoryOptions struct {
	DefaultTTL time.Duration
	// MaxItems caps the entry count (0 = unlimited). When the cap is
	// reached, expired entries are swept before the write proceeds.
	MaxItems int
	// CleanupInterval is how often expired entries are swept in the
	// background (0 = on-demand only).
	CleanupInterval time.Duration
}

// NewMemory creates an in-process cache.
func NewMemory(opts MemoryOptions) *Memory {
	c := &Memory{
		defaultTTL: opts.DefaultTTL,
		maxItems:   opts.MaxItems,
		stopCh:     make(chan struct{}),
	}
	if opts.CleanupInterval > 0 {
		go c.cleanupLoop(opts.CleanupInterval)
	}
	return c
}

func (c *Memory) Get(_ context.Context, key string) ([]byte, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}

	val, ok := c.data.Load(key)
	if !ok {
		c.misses.Add(1)
		return nil, ErrMiss
	}

	entry := val.(*memoryEntry)
	if time.Now().After(entry.expiresAt) {
		c.data.Delete(key)
		c.misses.Add(1)
		return nil, ErrMiss
	}

	c.hits.Add(1)
	// Callers get a copy so they cannot mutate the cached value.
	out := make([]byte, len(entry.value))
	copy(out, entry.value)
	return out, nil
}

func (c *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if c.closed.Load() {
		return ErrClosed
	}

	if ttl == 0 {
		ttl = c.defaultTTL
	}

	if c.maxItems > 0 && c.count() >= c.maxItems {
		c.removeExpired()
	}

	stored := make([]byte, len(value))
	copy(stored, value)

	c.data.Store(key, &memoryEntry{value: stored, expiresAt: time.Now().Add(ttl)})
	c.sets.Add(1)
	return nil
}

func (c *Memory) Delete(_ context.Context, key string) error {
	if c.closed.Load() {
		return ErrClosed
	}
	c.data.Delete(key)
	return nil
}

func (c *Memory) Clear(_ context.Context) error {
	if c.closed.Load() {
		return ErrClosed
	}
	c.data.Range(func(key, _ any) bool {
		c.data.Delete(key)
		return true
	})
	return nil
}

// Close stops the background sweeper. Close is idempotent.
func (c *Memory) Close() error {
	if c.closed.CompareAndSwap(false, true) {
		close(c.stopCh)
	}
	return nil
}

func (c *Memory) Stats() Stats {
	hits := c.hits.Load()
	misses := c.misses.Load()
	return Stats{
		Hits:    hits,
		Misses:  misses,
		Sets:    c.sets.Load(),
		Items:   c.count(),
		HitRate: hitRate(hits, misses),
	}
}

func (c *Memory) count() int {
	n := 0
	c.data.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func (c *Memory) removeExpired() {
	now := time.Now()
	c.data.Range(func(key, value any) bool {
		if now.After(value.(*memoryEntry).expiresAt) {
			c.data.Delete(key)
		}
		return true
	})
}

func (c *Memory) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stopCh:
			return
		}
	}
}

var (
	_ Cache         = (*Memory)(nil)
	_ StatsProvider = (*Memory)(nil)
)
