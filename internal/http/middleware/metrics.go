package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gyu-bot/myspot/internal/observability"
)

// unmeteredRoutes are probes and scrapes; counting them would drown the
// API series.
var unmeteredRoutes = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// Metrics records request count, latency and in-flight gauge per route
// template. Unmatched paths share the "unmatched" label so random URLs
// cannot blow up series cardinality.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil || unmeteredRoutes[c.FullPath()] {
			c.Next()
			return
		}
		m.ApiInflightInc()
		start := time.Now()
		defer func() {
			m.ApiInflightDec()
			route := c.FullPath()
			if route == "" {
				route = "unmatched"
			}
			m.ObserveAPI(c.Request.Method, route, c.Writer.Status(), time.Since(start))
		}()
		c.Next()
	}
}
