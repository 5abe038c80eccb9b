// Package cache provides byte-oriented caching with TTL expiry for
// pipeline stage results. Keys are namespaced per stage kind and
// document so a re-run can reuse fresh stage output without touching
// unrelated entries.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrCacheMiss is returned when a key does not exist or has expired.
var ErrCacheMiss = errors.New("cache miss")

// Cache stores opaque byte values with per-entry TTLs.
type Cache interface {
	// Get returns the value for key, or ErrCacheMiss when the key is
	// absent or its TTL has elapsed.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key for the given TTL. A non-positive TTL
	// stores the value without expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any backing resources.
	Close() error
}

// StageKey builds the cache key for one pipeline stage's result on one
// document.
func StageKey(kind string, documentID uuid.UUID) string {
	return fmt.Sprintf("pipeline:%s:%s", kind, documentID)
}
