package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	svcerr "github.com/Gyu-bot/myspot/internal/pkg/errors"
)

// mapStoreError tags constraint violations with the matching service
// sentinel. Other errors come back wrapped with op and otherwise unchanged.
func mapStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w: %w", op, svcerr.ErrConflict, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%s: %w: %w", op, svcerr.ErrNotFound, err)
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return fmt.Errorf("%s: %w: %w", op, svcerr.ErrInvalidArgument, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "23505":
			return fmt.Errorf("%s: %w: %w", op, svcerr.ErrConflict, err) // unique_violation
		case "23503":
			return fmt.Errorf("%s: %w: %w", op, svcerr.ErrNotFound, err) // foreign_key_violation
		case "23514":
			return fmt.Errorf("%s: %w: %w", op, svcerr.ErrInvalidArgument, err) // check_violation
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func invalidArgument(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", svcerr.ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func notFound(what string) error {
	return fmt.Errorf("%s: %w", what, svcerr.ErrNotFound)
}
