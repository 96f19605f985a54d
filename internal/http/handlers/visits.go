package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Gyu-bot/myspot/internal/http/response"
	"github.com/Gyu-bot/myspot/internal/platform/logger"
	"github.com/Gyu-bot/myspot/internal/services"
)

type VisitHandler struct {
	log          *logger.Logger
	visitService services.VisitService
}

func NewVisitHandler(log *logger.Logger, visitService services.VisitService) *VisitHandler {
	return &VisitHandler{log: log.With("handler", "VisitHandler"), visitService: visitService}
}

// POST /visits
// body: { "place_id": "<uuid>", "visited_at": "2025-03-01", "rating": 4, ... }
func (h *VisitHandler) CreateVisit(c *gin.Context) {
	var in services.VisitInput
	if !bindJSON(c, &in) {
		return
	}
	visit, err := h.visitService.Create(c.Request.Context(), in)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, visit)
}

// GET /visits?place_id=
func (h *VisitHandler) ListVisits(c *gin.Context) {
	placeID, ok := requiredQueryUUID(c, "place_id")
	if !ok {
		return
	}
	visits, err := h.visitService.ListByPlace(c.Request.Context(), placeID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, visits)
}
