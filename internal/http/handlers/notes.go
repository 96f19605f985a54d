package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Gyu-bot/myspot/internal/http/response"
	"github.com/Gyu-bot/myspot/internal/platform/logger"
	"github.com/Gyu-bot/myspot/internal/services"
)

type NoteHandler struct {
	log         *logger.Logger
	noteService services.NoteService
}

func NewNoteHandler(log *logger.Logger, noteService services.NoteService) *NoteHandler {
	return &NoteHandler{log: log.With("handler", "NoteHandler"), noteService: noteService}
}

// POST /notes
// body: { "place_id": "<uuid>", "content": "..." }
func (h *NoteHandler) CreateNote(c *gin.Context) {
	var req struct {
		PlaceID uuid.UUID `json:"place_id" binding:"required"`
		Content string    `json:"content" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	note, err := h.noteService.Create(c.Request.Context(), req.PlaceID, req.Content)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, note)
}

// GET /notes?place_id=
func (h *NoteHandler) ListNotes(c *gin.Context) {
	placeID, ok := requiredQueryUUID(c, "place_id")
	if !ok {
		return
	}
	notes, err := h.noteService.ListByPlace(c.Request.Context(), placeID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, notes)
}

// PATCH /notes/:id
// body: { "content": "..." }
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	note, err := h.noteService.Update(c.Request.Context(), id, req.Content)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, note)
}

// DELETE /notes/:id
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.noteService.Delete(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondNoContent(c)
}
