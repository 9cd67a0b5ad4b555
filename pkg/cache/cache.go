// Package cache stores rendered timeline artifacts so that an unchanged
// input is not laid out and rasterized twice.
//
// A [Cache] is a plain byte store with expiry. Keys come from a [Keyer],
// which hashes everything that can change the output: the normalized
// entries, the surface size and date range, the resolved styling and the
// output format. [NewFileCache] backs the CLI, [NewMemoryCache] the HTTP
// server and [NewNullCache] disables caching.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long a rendered artifact stays valid.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored data and whether it was found and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the cache's resources.
	Close() error
}
