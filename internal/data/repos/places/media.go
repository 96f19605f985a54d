package places

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/Gyu-bot/myspot/internal/domain"
	"github.com/Gyu-bot/myspot/internal/pkg/dbctx"
	"github.com/Gyu-bot/myspot/internal/platform/logger"
)

type MediaRepo interface {
	Create(dbc dbctx.Context, media *types.Media) (*types.Media, error)
	ListByPlace(dbc dbctx.Context, placeID uuid.UUID) ([]*types.Media, error)
	Delete(dbc dbctx.Context, id uuid.UUID) (bool, error)
}

type mediaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMediaRepo(db *gorm.DB, baseLog *logger.Logger) MediaRepo {
	return &mediaRepo{
		db:  db,
		log: baseLog.With("repo", "MediaRepo"),
	}
}

func (r *mediaRepo) Create(dbc dbctx.Context, media *types.Media) (*types.Media, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(dbc.Ctx).Create(media).Error; err != nil {
		return nil, err
	}
	return media, nil
}

func (r *mediaRepo) ListByPlace(dbc dbctx.Context, placeID uuid.UUID) ([]*types.Media, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Media
	if err := transaction.WithContext(dbc.Ctx).
		Where("place_id = ?", placeID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mediaRepo) Delete(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Delete(&types.Media{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
