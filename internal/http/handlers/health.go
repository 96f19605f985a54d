package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Gyu-bot/myspot/internal/http/response"
	"github.com/Gyu-bot/myspot/internal/services"
)

type HealthHandler struct {
	healthService services.HealthService
}

func NewHealthHandler(healthService services.HealthService) *HealthHandler {
	return &HealthHandler{healthService: healthService}
}

// GET /health answers 200 even when degraded; the body says which
// dependency is down.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	response.RespondOK(c, h.healthService.Check(c.Request.Context()))
}
