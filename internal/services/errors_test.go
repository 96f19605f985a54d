package services

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	svcerr "github.com/Gyu-bot/myspot/internal/pkg/errors"
)

func TestMapStoreError(t *testing.T) {
	storeDown := errors.New("connection refused")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"duplicate key", gorm.ErrDuplicatedKey, svcerr.ErrConflict},
		{"postgres unique violation", &pgconn.PgError{Code: "23505"}, svcerr.ErrConflict},
		{"foreign key", gorm.ErrForeignKeyViolated, svcerr.ErrNotFound},
		{"postgres foreign key", &pgconn.PgError{Code: "23503"}, svcerr.ErrNotFound},
		{"check constraint", &pgconn.PgError{Code: "23514"}, svcerr.ErrInvalidArgument},
		{"other", storeDown, storeDown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapStoreError("op", tt.in)
			assert.ErrorIs(t, got, tt.want)
			assert.ErrorIs(t, got, tt.in)
		})
	}
	assert.NoError(t, mapStoreError("op", nil))
}
