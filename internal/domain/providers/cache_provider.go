package providers

import (
	"context"
	"time"
)

// CacheProvider is the storage backend behind the clinic cache. Implemented
// by Redis in production and by an in-memory map in tests.
type CacheProvider interface {
	// Get retrieves a value from cache. A missing key is an error.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in cache with an expiration. A zero TTL means the
	// value does not expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from cache.
	Delete(ctx context.Context, key string) error
}
