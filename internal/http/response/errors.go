package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	svcerr "github.com/Gyu-bot/myspot/internal/pkg/errors"
	"github.com/Gyu-bot/myspot/internal/pkg/pagination"
	"github.com/Gyu-bot/myspot/internal/platform/apierr"
)

// RespondServiceError maps a service error onto its status and code.
// Unclassified errors become a 500 with a generic message and are attached to
// the gin context for the request logger.
func RespondServiceError(c *gin.Context, err error) {
	var apiErr *apierr.Error
	switch {
	case errors.As(err, &apiErr):
		RespondError(c, apiErr.Status, apiErr.Code, apiErr.Err)
	case errors.Is(err, pagination.ErrInvalidCursor):
		RespondError(c, http.StatusBadRequest, "invalid_cursor", err)
	case errors.Is(err, svcerr.ErrInvalidArgument):
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
	case errors.Is(err, svcerr.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, svcerr.ErrConflict):
		RespondError(c, http.StatusConflict, "conflict", err)
	case errors.Is(err, svcerr.ErrUnauthorized):
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
	default:
		_ = c.Error(err)
		RespondError(c, http.StatusInternalServerError, "internal", errors.New("internal server error"))
	}
}
