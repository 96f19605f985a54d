package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gyu-bot/myspot/internal/platform/ctxutil"
)

func TestAttachTraceContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var seen *ctxutil.TraceData
	r := gin.New()
	r.Use(AttachTraceContext())
	r.GET("/x", func(c *gin.Context) {
		seen = ctxutil.GetTraceData(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderRequestID, "req-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.NotNil(t, seen)
	assert.Equal(t, "req-123", seen.RequestID)
	assert.NotEmpty(t, seen.TraceID)
	assert.Equal(t, "req-123", rec.Header().Get(HeaderRequestID))
	assert.Equal(t, seen.TraceID, rec.Header().Get(HeaderTraceID))
}

func TestAttachTraceContextReplacesUnsafeIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var seen *ctxutil.TraceData
	r := gin.New()
	r.Use(AttachTraceContext())
	r.GET("/x", func(c *gin.Context) {
		seen = ctxutil.GetTraceData(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderRequestID, strings.Repeat("a", maxCorrelationIDLen+1))
	req.Header.Set(HeaderTraceID, "trace 1")
	r.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, seen)
	_, err := uuid.Parse(seen.RequestID)
	assert.NoError(t, err)
	assert.Equal(t, seen.RequestID, seen.TraceID)
}

func TestCleanCorrelationID(t *testing.T) {
	assert.Equal(t, "abc-123", cleanCorrelationID("  abc-123 "))
	assert.Empty(t, cleanCorrelationID("has space"))
	assert.Empty(t, cleanCorrelationID("요청"))
	assert.Empty(t, cleanCorrelationID(""))
}

func TestRequestTimeout(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var deadline time.Time
	var hasDeadline bool
	r := gin.New()
	r.Use(RequestTimeout(time.Second))
	r.GET("/x", func(c *gin.Context) {
		deadline, hasDeadline = c.Request.Context().Deadline()
		c.Status(http.StatusOK)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	require.True(t, hasDeadline)
	assert.WithinDuration(t, time.Now().Add(time.Second), deadline, time.Second)

	var ctxErr error
	off := gin.New()
	off.Use(RequestTimeout(0))
	off.GET("/x", func(c *gin.Context) {
		_, hasDeadline = c.Request.Context().Deadline()
		ctxErr = c.Request.Context().Err()
		c.Status(http.StatusOK)
	})
	off.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil).WithContext(context.Background()))
	assert.False(t, hasDeadline)
	assert.NoError(t, ctxErr)
}
