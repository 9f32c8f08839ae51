package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/halcyonpress/halcyon/internal/logger"
)

// RedisCache backs the Cache interface with a shared Redis instance.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache connects and pings; a Redis that is down at startup is a
// configuration error, not something to limp past.
func NewRedisCache(redisURL, prefix string) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCache{client: client, prefix: prefix}, nil
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Get().Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
		return nil, false
	}
	return val, true
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := r.client.Set(ctx, r.prefix+key, value, ttl).Err(); err != nil {
		logger.Get().Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

func (r *RedisCache) Delete(ctx context.Context, keys ...string) {
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = r.prefix + k
	}
	if err := r.client.Del(ctx, prefixed...).Err(); err != nil {
		logger.Get().Warn().Err(err).Msg("cache invalidation failed")
	}
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
