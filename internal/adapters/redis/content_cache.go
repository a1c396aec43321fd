package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ContentCache caches rendered JSON payloads (site bundle, settings) with a
// fixed TTL. Lookups degrade to a miss on any Redis failure so the site
// never goes down with the cache.
type ContentCache struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewContentCache creates a content cache with the given TTL.
// A zero TTL defaults to one minute.
func NewContentCache(client redis.UniversalClient, ttl time.Duration) *ContentCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &ContentCache{
		client: client,
		prefix: "content:",
		ttl:    ttl,
	}
}

// Get returns the cached payload for key, with ok=false on a miss.
func (c *ContentCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores a payload under key for the cache TTL.
func (c *ContentCache) Set(ctx context.Context, key string, payload []byte) error {
	if key == "" {
		return errors.New("cache key cannot be empty")
	}
	if err := c.client.Set(ctx, c.prefix+key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Invalidate drops the cached payload for key. Missing keys are a no-op.
func (c *ContentCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.prefix + k
	}
	return c.client.Del(ctx, full...).Err()
}
