package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gyu-bot/myspot/internal/platform/ctxutil"
	"github.com/Gyu-bot/myspot/internal/platform/logger"
)

// RequestLogger writes one entry per request once the handler chain is done.
// Health probes log at debug; 4xx at warn; 5xx at error with the errors the
// handlers attached through c.Error.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		return func(c *gin.Context) { c.Next() }
	}
	log = log.With("middleware", "RequestLogger")

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		status := c.Writer.Status()
		fields := []interface{}{
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"bytes", c.Writer.Size(),
			"client_ip", c.ClientIP(),
		}
		if td := ctxutil.GetTraceData(c.Request.Context()); td != nil {
			fields = append(fields, "request_id", td.RequestID, "trace_id", td.TraceID)
		}
		if errs := c.Errors.ByType(gin.ErrorTypeAny); len(errs) > 0 {
			fields = append(fields, "errors", errs.String())
		}

		switch {
		case status >= 500:
			log.Error("HTTP request failed", fields...)
		case status >= 400:
			log.Warn("HTTP request rejected", fields...)
		case route == "/health":
			log.Debug("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}
