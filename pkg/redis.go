package pkg

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/behavioral-assessment/internal/cache"
	"github.com/SAP-F-2025/behavioral-assessment/internal/config"
	"github.com/SAP-F-2025/behavioral-assessment/internal/utils"
	"github.com/redis/go-redis/v9"
)

// MemoryCacheURL selects the in-process cache instead of Redis.
const MemoryCacheURL = "memory://"

func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return client, nil
}

// NewCache returns the session cache for cfg and a func releasing it.
func NewCache(ctx context.Context, cfg *config.Config, logger utils.Logger) (cache.CacheService, func() error, error) {
	if cfg.RedisURL == MemoryCacheURL {
		if cfg.IsProduction() {
			return nil, nil, fmt.Errorf("in-memory cache is not allowed in production")
		}
		logger.Warn("Using in-memory session cache")
		return cache.NewMemoryCache(), func() error { return nil }, nil
	}

	client, err := NewRedisClient(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return cache.NewRedisCache(client, logger), client.Close, nil
}
