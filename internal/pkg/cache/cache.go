package cache

import (
	"time"

	"github.com/boostgridhq/BoostGrid/internal/pkg/env"
)

// Store is the cache contract shared by every pipeline stage. Values are
// strings (usually JSON documents). An expired entry behaves exactly like a
// missing one.
type Store interface {
	// Set stores a value under key for the given TTL, replacing any
	// existing entry.
	Set(key, value string, ttl time.Duration) error
	// Get returns the value for key and whether a live entry exists.
	Get(key string) (string, bool)
	// Clear removes the given keys, or empties the whole store when
	// called without arguments.
	Clear(keys ...string) error
}

// FromEnv builds the cache backend selected by CACHE_DRIVER. The in-memory
// store is the default; "redis" connects to the shared cache server.
func FromEnv() Store {
	if env.GetEnv("CACHE_DRIVER", "memory") == "redis" {
		return NewRedisStore()
	}
	return NewMemoryStore()
}
