package events

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a best-effort string cache for the settings payload.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
}

// redisCache adapts a go-redis client to Cache. Errors are swallowed; a cache
// miss just falls through to Postgres.
type redisCache struct {
	rdb *redis.Client
}

// NewRedisCache wraps a go-redis client as a Cache.
func NewRedisCache(rdb *redis.Client) Cache {
	return &redisCache{rdb: rdb}
}

func (c *redisCache) Get(ctx context.Context, key string) (string, bool) {
	v, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return v, true
}

func (c *redisCache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	_ = c.rdb.Set(ctx, key, value, ttl).Err()
}
