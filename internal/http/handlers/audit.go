package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Gyu-bot/myspot/internal/http/response"
	"github.com/Gyu-bot/myspot/internal/platform/logger"
	"github.com/Gyu-bot/myspot/internal/services"
)

type AuditHandler struct {
	log          *logger.Logger
	auditService services.AuditService
}

func NewAuditHandler(log *logger.Logger, auditService services.AuditService) *AuditHandler {
	return &AuditHandler{log: log.With("handler", "AuditHandler"), auditService: auditService}
}

// GET /audit-logs?entity_id=&limit=
func (h *AuditHandler) ListAuditLogs(c *gin.Context) {
	entityID, ok := queryUUID(c, "entity_id")
	if !ok {
		return
	}
	limit, ok := queryLimit(c)
	if !ok {
		return
	}
	logs, err := h.auditService.List(c.Request.Context(), entityID, limit)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, logs)
}
