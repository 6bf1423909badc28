// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"fmt"
	"time"
)

// Config selects and configures a cache backend.
type Config struct {
	// Type is "memory" or "redis".
	Type string

	// RedisURL is required when Type is "redis".
	RedisURL string

	// Prefix namespaces keys in Redis, ignored for memory.
	Prefix string

	DefaultTTL time.Duration

	// MaxItems limits the memory backend (0 = unlimited).
	MaxItems int

	CleanupInterval time.Duration
}

// DefaultConfig returns the memory backend with conservative limits.
func DefaultConfig() Config {
	return Config{
		Type:            "memory",
		DefaultTTL:      time.Hour,
		MaxItems:        10000,
		CleanupInterval: time.Minute,
	}
}

// New creates the backend named by cfg.Type.
func New(cfg Config) (Cache, error) {
	switch cfg.Type {
	case "", "memory":
		return NewMemory(MemoryOptions{
			DefaultTTL:      cfg.DefaultTTL,
			MaxItems:        cfg.MaxItems,
			CleanupInterval: cfg.CleanupInterval,
		}), nil
	case "redis":
		return NewRedis(RedisOptions{
			URL:        cfg.RedisURL,
			Prefix:     cfg.Prefix,
			DefaultTTL: cfg.DefaultTTL,
		})
	default:
		return nil, fmt.Errorf("unknown cache type %q", cfg.Type)
	}
}
