package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	svcerr "github.com/Gyu-bot/myspot/internal/pkg/errors"
	"github.com/Gyu-bot/myspot/internal/pkg/pagination"
	"github.com/Gyu-bot/myspot/internal/platform/apierr"
	"github.com/Gyu-bot/myspot/internal/platform/ctxutil"
)

func TestRespondServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid argument", fmt.Errorf("%w: name is required", svcerr.ErrInvalidArgument), http.StatusBadRequest, "invalid_argument"},
		{"invalid cursor", fmt.Errorf("%w: %w", svcerr.ErrInvalidArgument, pagination.ErrInvalidCursor), http.StatusBadRequest, "invalid_cursor"},
		{"not found", fmt.Errorf("place: %w", svcerr.ErrNotFound), http.StatusNotFound, "not_found"},
		{"conflict", fmt.Errorf("create tag: %w", svcerr.ErrConflict), http.StatusConflict, "conflict"},
		{"api error", apierr.BadRequest("invalid_id", errors.New("bad uuid")), http.StatusBadRequest, "invalid_id"},
		{"store failure", errors.New("connection reset"), http.StatusInternalServerError, "internal"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			RespondServiceError(c, tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)
			var body ErrorEnvelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.wantCode, body.Error.Code)
			if tc.wantStatus == http.StatusInternalServerError {
				assert.Equal(t, "internal server error", body.Error.Message)
				assert.Len(t, c.Errors, 1)
			}
		})
	}
}

func TestRespondErrorEchoesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/places/x", nil)
	c.Request = req.WithContext(ctxutil.WithTraceData(req.Context(), &ctxutil.TraceData{RequestID: "req-42"}))

	RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("bad uuid"))

	assert.True(t, c.IsAborted())
	var body ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "req-42", body.Error.RequestID)
	assert.Equal(t, "bad uuid", body.Error.Message)
}
