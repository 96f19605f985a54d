// Package errors holds the sentinels services wrap and the HTTP layer maps to
// status codes. Wrap with %w so errors.Is keeps working across layers.
package errors

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConflict covers unique violations such as a duplicate tag name or a
	// provider id already attached to another place.
	ErrConflict = errors.New("conflict")
)
