// Package apierr lets handlers reject a request with an explicit status and
// code before a service is ever called, e.g. for a malformed path id.
package apierr

import (
	"net/http"
	"strconv"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return ""
	case e.Err != nil:
		return e.Err.Error()
	case e.Code != "":
		return e.Code
	case e.Status != 0:
		return "http " + strconv.Itoa(e.Status) + " " + http.StatusText(e.Status)
	default:
		return "api error"
	}
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func BadRequest(code string, err error) *Error { return New(http.StatusBadRequest, code, err) }

func NotFound(code string, err error) *Error { return New(http.StatusNotFound, code, err) }
