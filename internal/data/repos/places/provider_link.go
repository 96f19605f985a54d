package places

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/Gyu-bot/myspot/internal/domain"
	"github.com/Gyu-bot/myspot/internal/pkg/dbctx"
	"github.com/Gyu-bot/myspot/internal/platform/logger"
)

type ProviderLinkRepo interface {
	Create(dbc dbctx.Context, links []*types.ProviderLink) ([]*types.ProviderLink, error)
	ListByPlace(dbc dbctx.Context, placeID uuid.UUID) ([]*types.ProviderLink, error)
}

type providerLinkRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProviderLinkRepo(db *gorm.DB, baseLog *logger.Logger) ProviderLinkRepo {
	return &providerLinkRepo{
		db:  db,
		log: baseLog.With("repo", "ProviderLinkRepo"),
	}
}

func (r *providerLinkRepo) Create(dbc dbctx.Context, links []*types.ProviderLink) ([]*types.ProviderLink, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(links) == 0 {
		return []*types.ProviderLink{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

func (r *providerLinkRepo) ListByPlace(dbc dbctx.Context, placeID uuid.UUID) ([]*types.ProviderLink, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.ProviderLink
	if err := transaction.WithContext(dbc.Ctx).
		Where("place_id = ?", placeID).
		Order("provider ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
