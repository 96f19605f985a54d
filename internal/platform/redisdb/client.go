package redisdb

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Gyu-bot/myspot/internal/platform/logger"
)

type Config struct {
	Addr     string
	Password string
	DB       int
}

// NewClient dials Redis and pings it once so a bad address fails at startup
// rather than on the first cache read.
func NewClient(ctx context.Context, log *logger.Logger, cfg Config) (*goredis.Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	log.Info("Redis connected", "addr", addr, "db", cfg.DB)
	return rdb, nil
}
