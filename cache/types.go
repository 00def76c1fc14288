package cache

import (
	"context"
	"time"
)

// Cache stores opaque values by key. The hacker service keeps encoded search results
// in it so that repeated requests for the same ciphertext skip the key space scan.
type Cache interface {
	// Get retrieves a value by key; a missing or expired key reports ErrKeyNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with optional TTL (0 uses the driver default)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key
	Delete(ctx context.Context, key string) error

	// Exists checks if a key exists
	Exists(ctx context.Context, key string) (bool, error)

	// Clear removes all keys under the cache's prefix
	Clear(ctx context.Context) error

	// Close closes the cache connection
	Close() error

	// Ping checks if cache is reachable
	Ping(ctx context.Context) error
}
