package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	"github.com/Gyu-bot/myspot/internal/platform/logger"
)

// JSONCache stores JSON-encodable values under string keys. Get reports
// false on a miss.
type JSONCache interface {
	Get(ctx context.Context, key string, dst interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Backend() string
}

const (
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type redisCache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
	log    *logger.Logger
}

func NewRedisCache(rdb *redis.Client, prefix string, ttl time.Duration, baseLog *logger.Logger) (JSONCache, error) {
	if rdb == nil {
		return nil, fmt.Errorf("nil redis client")
	}
	return &redisCache{
		rdb:    rdb,
		prefix: prefix,
		ttl:    ttl,
		log:    baseLog.With("cache", "RedisCache"),
	}, nil
}

func (c *redisCache) key(k string) string { return c.prefix + k }

func (c *redisCache) Get(ctx context.Context, key string, dst interface{}) (bool, error) {
	raw, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		c.log.Warn("Dropping undecodable cache entry", "key", key, "error", err)
		_ = c.rdb.Del(ctx, c.key(key)).Err()
		return false, nil
	}
	return true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.key(key), raw, c.ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, c.key(key)).Err()
}

func (c *redisCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *redisCache) Backend() string { return BackendRedis }

// memoryCache keeps encoded bytes rather than the value itself so callers
// never share mutable state with the cache.
type memoryCache struct {
	store *gocache.Cache
}

func NewMemoryCache(ttl time.Duration) JSONCache {
	cleanup := ttl * 2
	if cleanup <= 0 {
		cleanup = 10 * time.Minute
	}
	return &memoryCache{store: gocache.New(ttl, cleanup)}
}

func (c *memoryCache) Get(_ context.Context, key string, dst interface{}) (bool, error) {
	v, ok := c.store.Get(key)
	if !ok {
		return false, nil
	}
	raw, ok := v.([]byte)
	if !ok {
		c.store.Delete(key)
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.store.SetDefault(key, raw)
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.store.Delete(key)
	return nil
}

func (c *memoryCache) Ping(context.Context) error { return nil }

func (c *memoryCache) Backend() string { return BackendMemory }
