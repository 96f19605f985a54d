package places

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/Gyu-bot/myspot/internal/domain"
	"github.com/Gyu-bot/myspot/internal/pkg/dbctx"
	"github.com/Gyu-bot/myspot/internal/platform/logger"
)

type VisitRepo interface {
	Create(dbc dbctx.Context, visit *types.Visit) (*types.Visit, error)
	ListByPlace(dbc dbctx.Context, placeID uuid.UUID) ([]*types.Visit, error)
}

type visitRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVisitRepo(db *gorm.DB, baseLog *logger.Logger) VisitRepo {
	return &visitRepo{
		db:  db,
		log: baseLog.With("repo", "VisitRepo"),
	}
}

func (r *visitRepo) Create(dbc dbctx.Context, visit *types.Visit) (*types.Visit, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(dbc.Ctx).Create(visit).Error; err != nil {
		return nil, err
	}
	return visit, nil
}

// ListByPlace returns visits with the most recent date first.
func (r *visitRepo) ListByPlace(dbc dbctx.Context, placeID uuid.UUID) ([]*types.Visit, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Visit
	if err := transaction.WithContext(dbc.Ctx).
		Where("place_id = ?", placeID).
		Order("visited_at DESC").
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
