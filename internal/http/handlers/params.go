package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Gyu-bot/myspot/internal/http/response"
	"github.com/Gyu-bot/myspot/internal/pkg/pagination"
	"github.com/Gyu-bot/myspot/internal/platform/apierr"
)

// pathUUID reads a uuid path parameter, answering 400 when it is malformed.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param(name)))
	if err != nil {
		response.RespondServiceError(c, apierr.BadRequest("invalid_id", fmt.Errorf("invalid %s: %w", name, err)))
		return uuid.Nil, false
	}
	return id, true
}

// queryUUID reads an optional uuid query parameter.
func queryUUID(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		response.RespondServiceError(c, apierr.BadRequest("invalid_argument", fmt.Errorf("invalid %s: %w", name, err)))
		return nil, false
	}
	return &id, true
}

// requiredQueryUUID is queryUUID for parameters that must be present.
func requiredQueryUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, ok := queryUUID(c, name)
	if !ok {
		return uuid.Nil, false
	}
	if id == nil {
		response.RespondServiceError(c, apierr.BadRequest("invalid_argument", fmt.Errorf("%s is required", name)))
		return uuid.Nil, false
	}
	return *id, true
}

// queryLimit reads "limit", which must lie in [1, MaxLimit] when given.
// Zero means the default.
func queryLimit(c *gin.Context) (int, bool) {
	raw := strings.TrimSpace(c.Query("limit"))
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > pagination.MaxLimit {
		response.RespondServiceError(c, apierr.BadRequest("invalid_argument",
			fmt.Errorf("limit must be an integer between 1 and %d", pagination.MaxLimit)))
		return 0, false
	}
	return n, true
}

func queryBool(c *gin.Context, name string) (*bool, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		response.RespondServiceError(c, apierr.BadRequest("invalid_argument", fmt.Errorf("invalid %s: %q", name, raw)))
		return nil, false
	}
	return &v, true
}

func queryString(c *gin.Context, name string) *string {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil
	}
	return &raw
}

// bindJSON decodes the body into dst, answering 400 on malformed input.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.RespondServiceError(c, apierr.BadRequest("invalid_request", err))
		return false
	}
	return true
}
