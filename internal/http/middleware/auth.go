package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Gyu-bot/myspot/internal/platform/logger"
)

const HeaderAPIKey = "X-API-Key"

type AuthMiddleware struct {
	log    *logger.Logger
	apiKey []byte
}

func NewAuthMiddleware(log *logger.Logger, apiKey string) *AuthMiddleware {
	return &AuthMiddleware{
		log:    log.With("middleware", "AuthMiddleware"),
		apiKey: []byte(strings.TrimSpace(apiKey)),
	}
}

// RequireAPIKey rejects requests whose X-API-Key header differs from the
// configured key. An unset key rejects everything.
func (am *AuthMiddleware) RequireAPIKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		given := []byte(strings.TrimSpace(c.GetHeader(HeaderAPIKey)))
		if len(am.apiKey) == 0 || len(given) == 0 || subtle.ConstantTimeCompare(given, am.apiKey) != 1 {
			am.log.Debug("Rejected request", "path", c.Request.URL.Path, "has_key", len(given) > 0)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "invalid or missing API key", "code": "unauthorized"},
			})
			return
		}
		c.Next()
	}
}
