package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Gyu-bot/myspot/internal/http/response"
	"github.com/Gyu-bot/myspot/internal/platform/logger"
	"github.com/Gyu-bot/myspot/internal/services"
)

type TagHandler struct {
	log        *logger.Logger
	tagService services.TagService
}

func NewTagHandler(log *logger.Logger, tagService services.TagService) *TagHandler {
	return &TagHandler{log: log.With("handler", "TagHandler"), tagService: tagService}
}

// POST /tags
// body: { "name": "...", "type": "freeform" | "system" }
func (h *TagHandler) CreateTag(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
		Type string `json:"type"`
	}
	if !bindJSON(c, &req) {
		return
	}
	tag, err := h.tagService.Create(c.Request.Context(), req.Name, req.Type)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, tag)
}

// GET /tags
func (h *TagHandler) ListTags(c *gin.Context) {
	tags, err := h.tagService.List(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, tags)
}
