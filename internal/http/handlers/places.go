package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Gyu-bot/myspot/internal/http/response"
	"github.com/Gyu-bot/myspot/internal/modules/dedup"
	"github.com/Gyu-bot/myspot/internal/platform/logger"
	"github.com/Gyu-bot/myspot/internal/services"
)

type PlaceHandler struct {
	log          *logger.Logger
	placeService services.PlaceService
	dedupService services.DedupService
}

func NewPlaceHandler(log *logger.Logger, placeService services.PlaceService, dedupService services.DedupService) *PlaceHandler {
	return &PlaceHandler{
		log:          log.With("handler", "PlaceHandler"),
		placeService: placeService,
		dedupService: dedupService,
	}
}

// POST /places
func (h *PlaceHandler) CreatePlace(c *gin.Context) {
	var in services.PlaceInput
	if !bindJSON(c, &in) {
		return
	}
	place, candidates, err := h.placeService.Create(c.Request.Context(), in)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{
		"place":                place,
		"duplicate_candidates": candidates,
	})
}

// GET /places?cursor=&limit=&category_primary=&is_favorite=
func (h *PlaceHandler) ListPlaces(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		return
	}
	fav, ok := queryBool(c, "is_favorite")
	if !ok {
		return
	}
	page, err := h.placeService.List(c.Request.Context(), services.PlaceListParams{
		Cursor:          c.Query("cursor"),
		Limit:           limit,
		CategoryPrimary: queryString(c, "category_primary"),
		IsFavorite:      fav,
	})
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, page)
}

type checkDuplicatesRequest struct {
	CanonicalName string   `json:"canonical_name"`
	AddressRoad   *string  `json:"address_road"`
	Lat           *float64 `json:"lat"`
	Lng           *float64 `json:"lng"`
	Phone         *string  `json:"phone"`
}

// POST /places/check-duplicates
// body: { "canonical_name": "...", "lat": 37.5, "lng": 127.0, "phone": "..." }
func (h *PlaceHandler) CheckDuplicates(c *gin.Context) {
	var req checkDuplicatesRequest
	if !bindJSON(c, &req) {
		return
	}
	candidates, err := h.dedupService.FindDuplicates(c.Request.Context(), services.DuplicateQuery{
		Name:  req.CanonicalName,
		Lat:   req.Lat,
		Lng:   req.Lng,
		Phone: req.Phone,
	})
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, nonNilCandidates(candidates))
}

// GET /places/:id
func (h *PlaceHandler) GetPlace(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	place, err := h.placeService.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, place)
}

// GET /places/:id/duplicates
func (h *PlaceHandler) ListPlaceDuplicates(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	candidates, err := h.dedupService.FindDuplicatesOf(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, nonNilCandidates(candidates))
}

// PATCH /places/:id
func (h *PlaceHandler) UpdatePlace(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var patch services.PlacePatch
	if !bindJSON(c, &patch) {
		return
	}
	place, err := h.placeService.Update(c.Request.Context(), id, patch)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, place)
}

// DELETE /places/:id
func (h *PlaceHandler) DeletePlace(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.placeService.Delete(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondNoContent(c)
}

type mergeRequest struct {
	MergeWith uuid.UUID `json:"merge_with" binding:"required"`
}

// POST /places/:id/merge
// body: { "merge_with": "<uuid>" }
func (h *PlaceHandler) MergePlace(c *gin.Context) {
	keepID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req mergeRequest
	if !bindJSON(c, &req) {
		return
	}
	merged, err := h.dedupService.MergePlaces(c.Request.Context(), keepID, req.MergeWith)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	h.log.Info("Places merged via API", "keep_id", keepID, "merge_id", req.MergeWith)
	response.RespondOK(c, merged)
}

func nonNilCandidates(in []dedup.Candidate) []dedup.Candidate {
	if in == nil {
		return []dedup.Candidate{}
	}
	return in
}
