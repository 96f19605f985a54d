package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var defaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://127.0.0.1:3000",
	"http://127.0.0.1:5173",
}

// CORS allows the given origins, or the local dev servers when none are
// configured. A single "*" allows any origin without credentials.
func CORS(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", "X-API-Key", "X-Request-Id", "X-Trace-Id"},
		ExposeHeaders: []string{"X-Request-Id", "X-Trace-Id"},
		MaxAge:        12 * time.Hour,
	}
	switch {
	case len(origins) == 1 && origins[0] == "*":
		cfg.AllowAllOrigins = true
	case len(origins) == 0:
		cfg.AllowOrigins = defaultCORSOrigins
		cfg.AllowCredentials = true
	default:
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}
