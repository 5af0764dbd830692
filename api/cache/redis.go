package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lolstats/pkg/redis"
)

// RedisCache stores JSON encoded values in redis, shared between instances.
type RedisCache[T any] struct {
	client *redis.RedisClient
	prefix string
}

// NewRedisCache creates a cache whose keys are namespaced by prefix.
func NewRedisCache[T any](client *redis.RedisClient, prefix string) *RedisCache[T] {
	return &RedisCache[T]{client: client, prefix: prefix}
}

func (rc *RedisCache[T]) key(key string) string {
	return fmt.Sprintf("cache:%s:%s", rc.prefix, key)
}

// Get returns the decoded value of a key.
func (rc *RedisCache[T]) Get(ctx context.Context, key string) (T, bool, error) {
	var value T

	raw, err := rc.client.Get(ctx, rc.key(key))
	if errors.Is(err, redis.Nil) {
		return value, false, nil
	}
	if err != nil {
		return value, false, fmt.Errorf("couldn't read the cache key %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return value, false, fmt.Errorf("couldn't decode the cache key %s: %w", key, err)
	}

	return value, true, nil
}

// Set stores the JSON encoding of value with the given TTL.
func (rc *RedisCache[T]) Set(ctx context.Context, key string, value T, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("couldn't encode the cache key %s: %w", key, err)
	}

	return rc.client.Set(ctx, rc.key(key), raw, ttl)
}
