package cache

import (
	"context"
	"time"
)

// Cache is the contract for the cache layer. Implementations must treat a
// miss as (found=false, nil error) and leave dest untouched on a miss.
type Cache interface {
	// Get reads a key and unmarshals it into dest.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores a value under key with the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes the given keys.
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob pattern (e.g. "blog:*").
	DeletePattern(ctx context.Context, pattern string) error

	// Ping checks the connection.
	Ping(ctx context.Context) error
}
