package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fightstation/backend/internal/config"
)

type RedisCache struct {
	Client *redis.Client
}

// NewRedisCache initializes the Redis client from config.
// Only Addr is mandatory, Password/DB are optional.
func NewRedisCache(cfg *config.Config) *RedisCache {
	opts := &redis.Options{
		Addr: cfg.Redis.Addr,
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}
	return &RedisCache{Client: redis.NewClient(opts)}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return c.Client.Set(ctx, key, value, ttl).Err()
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	return c.Client.Get(ctx, key).Result()
}

func (c *RedisCache) Del(ctx context.Context, key string) error {
	return c.Client.Del(ctx, key).Err()
}

// KeyForRanking generates the cache key for a default-criteria ranking.
func (c *RedisCache) KeyForRanking(kind, fighterID string, limit int) string {
	return fmt.Sprintf("rank:%s:%s:%d", kind, fighterID, limit)
}

// GetRanking reads a cached ranking payload into dest.
// Returns false on cache miss; refreshes the TTL on a hit.
func (c *RedisCache) GetRanking(ctx context.Context, key string, ttl time.Duration, dest any) (bool, error) {
	raw, err := c.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		// stale or corrupt entry, drop it
		_ = c.Client.Del(ctx, key).Err()
		return false, nil
	}
	_ = c.Client.Expire(ctx, key, ttl).Err()
	return true, nil
}

// SetRanking stores a ranking payload as JSON with a TTL.
func (c *RedisCache) SetRanking(ctx context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal ranking: %w", err)
	}
	return c.Client.Set(ctx, key, b, ttl).Err()
}
