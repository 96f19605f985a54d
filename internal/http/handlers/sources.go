package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Gyu-bot/myspot/internal/http/response"
	"github.com/Gyu-bot/myspot/internal/platform/logger"
	"github.com/Gyu-bot/myspot/internal/services"
)

type SourceHandler struct {
	log           *logger.Logger
	sourceService services.SourceService
}

func NewSourceHandler(log *logger.Logger, sourceService services.SourceService) *SourceHandler {
	return &SourceHandler{log: log.With("handler", "SourceHandler"), sourceService: sourceService}
}

// POST /sources
func (h *SourceHandler) CreateSource(c *gin.Context) {
	var in services.SourceInput
	if !bindJSON(c, &in) {
		return
	}
	src, err := h.sourceService.Create(c.Request.Context(), in)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, src)
}

// GET /sources?place_id=&cursor=&limit=
func (h *SourceHandler) ListSources(c *gin.Context) {
	placeID, ok := requiredQueryUUID(c, "place_id")
	if !ok {
		return
	}
	limit, ok := queryLimit(c)
	if !ok {
		return
	}
	page, err := h.sourceService.ListByPlace(c.Request.Context(), placeID, c.Query("cursor"), limit)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, page)
}

// DELETE /sources/:id
func (h *SourceHandler) DeleteSource(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.sourceService.Delete(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondNoContent(c)
}
