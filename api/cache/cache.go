// Package cache holds the read-through caches used in front of the Riot API.
package cache

import (
	"context"
	"time"
)

// Cache is a TTL key/value cache. A missing or expired key is reported
// with found == false and no error.
type Cache[T any] interface {
	Get(ctx context.Context, key string) (value T, found bool, err error)
	Set(ctx context.Context, key string, value T, ttl time.Duration) error
}
