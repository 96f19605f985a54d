package pagination

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ErrInvalidCursor is wrapped by every Decode failure.
var ErrInvalidCursor = errors.New("invalid cursor")

// Cursor points at the last row of a page ordered by (created_at DESC, id DESC).
type Cursor struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

// Encode renders c as URL-safe base64 of "<RFC3339Nano>|<uuid>".
func (c Cursor) Encode() string {
	raw := c.CreatedAt.UTC().Format(time.RFC3339Nano) + "|" + c.ID.String()
	return base64.URLEncoding.EncodeToString([]byte(raw))
}

// Decode parses a cursor produced by Encode. Unpadded input is accepted too.
func Decode(s string) (Cursor, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Cursor{}, fmt.Errorf("%w: empty", ErrInvalidCursor)
	}
	raw, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		raw, err = base64.RawURLEncoding.DecodeString(s)
		if err != nil {
			return Cursor{}, fmt.Errorf("%w: %w", ErrInvalidCursor, err)
		}
	}
	tsPart, idPart, ok := strings.Cut(string(raw), "|")
	if !ok {
		return Cursor{}, fmt.Errorf("%w: missing separator", ErrInvalidCursor)
	}
	ts, err := time.Parse(time.RFC3339Nano, tsPart)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: timestamp: %w", ErrInvalidCursor, err)
	}
	id, err := uuid.Parse(idPart)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: id: %w", ErrInvalidCursor, err)
	}
	return Cursor{CreatedAt: ts.UTC(), ID: id}, nil
}

// ClampLimit maps a requested page size onto [1, MaxLimit], using
// DefaultLimit for zero or negative values.
func ClampLimit(n int) int {
	switch {
	case n <= 0:
		return DefaultLimit
	case n > MaxLimit:
		return MaxLimit
	default:
		return n
	}
}
