package apierr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	cause := errors.New("bad uuid")

	assert.Equal(t, "bad uuid", BadRequest("invalid_id", cause).Error())
	assert.Equal(t, "invalid_id", BadRequest("invalid_id", nil).Error())
	assert.Equal(t, "http 404 Not Found", New(http.StatusNotFound, "", nil).Error())
	assert.Equal(t, "api error", (&Error{}).Error())

	var nilErr *Error
	assert.Equal(t, "", nilErr.Error())
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("missing")
	err := NotFound("not_found", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusNotFound, err.Status)

	var target *Error
	assert.True(t, errors.As(error(err), &target))
	assert.Equal(t, "not_found", target.Code)
}
