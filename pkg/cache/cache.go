// Package cache provides pluggable byte caches for fetched web pages.
//
// Three backends are available:
//   - FileCache: on-disk cache under the XDG cache directory (default for CLI use)
//   - RedisCache: shared cache for repeated runs against a Redis instance
//   - NullCache: no-op cache for testing or --no-cache runs
//
// Keys are arbitrary strings; backends hash them with SHA-256 where the
// storage medium needs safe names. Entries carry an optional TTL.
package cache

import (
	"context"
	"time"
)

// Cache is the interface implemented by all cache backends.
// Implementations must be safe for use by a single goroutine; the CLI
// never shares one instance across goroutines.
type Cache interface {
	// Get retrieves a value. The second return value reports a hit.
	// Expired entries are treated as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}
