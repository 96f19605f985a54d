package app

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Gyu-bot/myspot/internal/platform/cache"
	"github.com/Gyu-bot/myspot/internal/platform/logger"
	"github.com/Gyu-bot/myspot/internal/platform/redisdb"
)

type Clients struct {
	Redis    *goredis.Client
	TagCache cache.JSONCache
}

// wireClients connects Redis when REDIS_ADDR is set and falls back to an
// in-process cache otherwise.
func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	if cfg.RedisAddr == "" {
		return Clients{TagCache: cache.NewMemoryCache(cfg.TagCacheTTL)}, nil
	}
	rdb, err := redisdb.NewClient(ctx, log, redisdb.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return Clients{}, fmt.Errorf("init redis: %w", err)
	}
	tagCache, err := cache.NewRedisCache(rdb, "myspot:", cfg.TagCacheTTL, log)
	if err != nil {
		_ = rdb.Close()
		return Clients{}, fmt.Errorf("init tag cache: %w", err)
	}
	return Clients{Redis: rdb, TagCache: tagCache}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
