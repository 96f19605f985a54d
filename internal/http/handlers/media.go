package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Gyu-bot/myspot/internal/http/response"
	"github.com/Gyu-bot/myspot/internal/platform/logger"
	"github.com/Gyu-bot/myspot/internal/services"
)

type MediaHandler struct {
	log          *logger.Logger
	mediaService services.MediaService
}

func NewMediaHandler(log *logger.Logger, mediaService services.MediaService) *MediaHandler {
	return &MediaHandler{log: log.With("handler", "MediaHandler"), mediaService: mediaService}
}

// POST /media
func (h *MediaHandler) CreateMedia(c *gin.Context) {
	var in services.MediaInput
	if !bindJSON(c, &in) {
		return
	}
	m, err := h.mediaService.Create(c.Request.Context(), in)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, m)
}

// GET /media?place_id=
func (h *MediaHandler) ListMedia(c *gin.Context) {
	placeID, ok := requiredQueryUUID(c, "place_id")
	if !ok {
		return
	}
	items, err := h.mediaService.ListByPlace(c.Request.Context(), placeID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, items)
}

// DELETE /media/:id
func (h *MediaHandler) DeleteMedia(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.mediaService.Delete(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondNoContent(c)
}
