package redisdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Gyu-bot/myspot/internal/platform/logger"
)

func TestNewClientValidatesConfig(t *testing.T) {
	_, err := NewClient(context.Background(), nil, Config{Addr: "localhost:6379"})
	require.Error(t, err)

	_, err = NewClient(context.Background(), logger.Nop(), Config{Addr: "  "})
	require.ErrorContains(t, err, "REDIS_ADDR")
}
