package places

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/Gyu-bot/myspot/internal/domain"
	"github.com/Gyu-bot/myspot/internal/pkg/dbctx"
	"github.com/Gyu-bot/myspot/internal/pkg/pagination"
	"github.com/Gyu-bot/myspot/internal/platform/logger"
)

type SourceRepo interface {
	Create(dbc dbctx.Context, source *types.Source) (*types.Source, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Source, error)
	ListByPlace(dbc dbctx.Context, placeID uuid.UUID, cursor *pagination.Cursor, limit int) ([]*types.Source, *pagination.Cursor, error)
	Delete(dbc dbctx.Context, id uuid.UUID) (bool, error)
}

type sourceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSourceRepo(db *gorm.DB, baseLog *logger.Logger) SourceRepo {
	return &sourceRepo{
		db:  db,
		log: baseLog.With("repo", "SourceRepo"),
	}
}

func (r *sourceRepo) Create(dbc dbctx.Context, source *types.Source) (*types.Source, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(dbc.Ctx).Create(source).Error; err != nil {
		return nil, err
	}
	return source, nil
}

func (r *sourceRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Source, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var source types.Source
	if err := transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&source).Error; err != nil {
		return nil, err
	}
	if source.ID == uuid.Nil {
		return nil, nil
	}
	return &source, nil
}

func (r *sourceRepo) ListByPlace(dbc dbctx.Context, placeID uuid.UUID, cursor *pagination.Cursor, limit int) ([]*types.Source, *pagination.Cursor, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	limit = pagination.ClampLimit(limit)
	var rows []*types.Source
	q := transaction.WithContext(dbc.Ctx).Where("place_id = ?", placeID)
	if err := applyCursor(q, cursor).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit + 1).
		Find(&rows).Error; err != nil {
		return nil, nil, err
	}
	var next *pagination.Cursor
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		next = &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}
	}
	return rows, next, nil
}

func (r *sourceRepo) Delete(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Delete(&types.Source{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
