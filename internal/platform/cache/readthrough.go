package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// ReadThrough caches a loader's result in Redis under a fixed key. Reads go
// through the cache; Invalidate forces the next read back to the loader.
// A nil or unreachable Redis client degrades to calling the loader directly,
// so the cache can never take reads down with it.
type ReadThrough[T any] struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	load   func(context.Context) (T, error)
}

// NewReadThrough constructs a read-through cache for one key.
func NewReadThrough[T any](client *redis.Client, key string, ttl time.Duration, load func(context.Context) (T, error)) *ReadThrough[T] {
	return &ReadThrough[T]{client: client, key: key, ttl: ttl, load: load}
}

// Get returns the cached value, loading and storing it on a miss.
func (c *ReadThrough[T]) Get(ctx context.Context) (T, error) {
	var value T
	if c.client != nil {
		raw, err := c.client.Get(ctx, c.key).Bytes()
		if err == nil {
			if err := json.Unmarshal(raw, &value); err == nil {
				return value, nil
			}
			// Corrupt entry: drop it and fall through to the loader.
			_ = c.client.Del(ctx, c.key).Err()
		}
	}

	value, err := c.load(ctx)
	if err != nil {
		return value, err
	}

	if c.client != nil {
		if raw, err := json.Marshal(value); err == nil {
			_ = c.client.Set(ctx, c.key, raw, c.ttl).Err()
		}
	}

	return value, nil
}

// Invalidate removes the cached entry so the next Get refreshes it.
func (c *ReadThrough[T]) Invalidate(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, c.key).Err()
}
