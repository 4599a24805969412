package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/emberapp/ember-backend/internal/config"
)

// CounterTTL bounds how long a liked-you counter lives without activity.
const CounterTTL = time.Hour

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

// KeyForLikedYouCount generates the Redis key for a user's liked-you counter.
func (c *RedisCache) KeyForLikedYouCount(userID uint64) string {
	return fmt.Sprintf("liked_you:count:%d", userID)
}

// IncrLikedYouCount bumps the liked-you counter for a user and refreshes its
// TTL. Missing keys are left absent so the next read repopulates from the DB.
func (c *RedisCache) IncrLikedYouCount(ctx context.Context, userID uint64) error {
	key := c.KeyForLikedYouCount(userID)
	exists, err := c.Client.Exists(ctx, key).Result()
	if err != nil || exists == 0 {
		return err
	}
	if err := c.Client.Incr(ctx, key).Err(); err != nil {
		return err
	}
	return c.Client.Expire(ctx, key, CounterTTL).Err()
}

// GetLikedYouCount reads the cached counter. A cache miss is reported via
// the second return value, not an error.
func (c *RedisCache) GetLikedYouCount(ctx context.Context, userID uint64) (int64, bool, error) {
	val, err := c.Client.Get(ctx, c.KeyForLikedYouCount(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	} else if err != nil {
		return 0, false, err
	}

	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, nil // treat garbage as a miss
	}

	// refresh TTL on access
	_ = c.Client.Expire(ctx, c.KeyForLikedYouCount(userID), CounterTTL).Err()
	return n, true, nil
}

// SetLikedYouCount stores the counter with the standard TTL.
func (c *RedisCache) SetLikedYouCount(ctx context.Context, userID uint64, count int64) error {
	return c.Client.Set(ctx, c.KeyForLikedYouCount(userID), count, CounterTTL).Err()
}
