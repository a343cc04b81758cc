// Package cache stores rendered artifacts between runs.
//
// # Backends
//
//   - [NullCache]: stores nothing; the default when caching is off
//   - [FileCache]: one JSON file per entry under the user cache directory,
//     for the CLI
//   - [RedisCache]: shared cache for multi-instance servers
//
// All backends are safe for concurrent use.
//
// # Keys
//
// A [Keyer] derives storage keys from a spec hash and the render options,
// so the same spec rendered to SVG and PNG lands in different entries:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.ArtifactKey(specHash, cache.ArtifactKeyOpts{Format: "svg"})
//
// [NewScopedKeyer] prefixes every key, which keeps tenants or deployments
// apart in a shared Redis.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the entry for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}

// Default time-to-live values.
const (
	// ArtifactTTL applies to rendered outputs. Rendering is deterministic,
	// so entries only expire to bound disk and memory use.
	ArtifactTTL = 7 * 24 * time.Hour
)
