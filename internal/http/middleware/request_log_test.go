package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Gyu-bot/myspot/internal/platform/logger"
)

func TestRequestLoggerLevels(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.DebugLevel)
	log := &logger.Logger{SugaredLogger: zap.New(core).Sugar()}

	r := gin.New()
	r.Use(AttachTraceContext(), RequestLogger(log))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/v1/places/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("store down"))
		c.Status(http.StatusInternalServerError)
	})

	for _, path := range []string{"/health", "/api/v1/places/abc", "/boom"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "/api/v1/places/:id", entries[1].ContextMap()["route"])
	assert.NotEmpty(t, entries[1].ContextMap()["request_id"])
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Contains(t, entries[2].ContextMap()["errors"], "store down")
}
