package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gyu-bot/myspot/internal/data/db"
	"github.com/Gyu-bot/myspot/internal/platform/cache"
	"github.com/Gyu-bot/myspot/internal/platform/logger"
)

func newSQLiteApp(t *testing.T) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := Config{
		Port:        "0",
		APIKey:      "k",
		DBDriver:    db.DriverSQLite,
		SQLitePath:  ":memory:",
		TagCacheTTL: time.Minute,
	}
	a, err := New(context.Background(), logger.Nop(), cfg)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func TestNewWiresSQLiteApp(t *testing.T) {
	a := newSQLiteApp(t)
	assert.Nil(t, a.Clients.Redis)
	assert.Equal(t, cache.BackendMemory, a.Clients.TagCache.Backend())

	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/places", nil)
	req.Header.Set("X-API-Key", "k")
	a.Router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestServeStopsOnCancel(t *testing.T) {
	a := newSQLiteApp(t)
	a.Start()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := New(context.Background(), logger.Nop(), Config{DBDriver: "mysql"})
	require.ErrorContains(t, err, "unknown DB_DRIVER")
}
