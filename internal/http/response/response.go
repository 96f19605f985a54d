package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gyu-bot/myspot/internal/platform/ctxutil"
)

type APIError struct {
	Message   string `json:"message"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// RespondError aborts the handler chain with an error envelope. The request
// id from the trace middleware is echoed so clients can quote it.
func RespondError(c *gin.Context, status int, code string, err error) {
	body := APIError{Message: "unknown error", Code: code}
	if err != nil {
		body.Message = err.Error()
	}
	if c.Request != nil {
		body.RequestID = ctxutil.RequestID(c.Request.Context())
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{Error: body})
}

func RespondOK(c *gin.Context, payload any) { c.JSON(http.StatusOK, payload) }

func RespondCreated(c *gin.Context, payload any) { c.JSON(http.StatusCreated, payload) }

func RespondNoContent(c *gin.Context) { c.Status(http.StatusNoContent) }
