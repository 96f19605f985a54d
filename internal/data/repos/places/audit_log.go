package places

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/Gyu-bot/myspot/internal/domain"
	"github.com/Gyu-bot/myspot/internal/pkg/dbctx"
	"github.com/Gyu-bot/myspot/internal/pkg/pagination"
	"github.com/Gyu-bot/myspot/internal/platform/logger"
)

// AuditLogRepo is append-only: there is no update or delete.
type AuditLogRepo interface {
	Create(dbc dbctx.Context, entry *types.AuditLog) (*types.AuditLog, error)
	List(dbc dbctx.Context, entityID *uuid.UUID, limit int) ([]*types.AuditLog, error)
}

type auditLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAuditLogRepo(db *gorm.DB, baseLog *logger.Logger) AuditLogRepo {
	return &auditLogRepo{
		db:  db,
		log: baseLog.With("repo", "AuditLogRepo"),
	}
}

func (r *auditLogRepo) Create(dbc dbctx.Context, entry *types.AuditLog) (*types.AuditLog, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(dbc.Ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *auditLogRepo) List(dbc dbctx.Context, entityID *uuid.UUID, limit int) ([]*types.AuditLog, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(dbc.Ctx).Model(&types.AuditLog{})
	if entityID != nil {
		q = q.Where("entity_id = ?", *entityID)
	}
	var out []*types.AuditLog
	if err := q.Order("created_at DESC").
		Order("id DESC").
		Limit(pagination.ClampLimit(limit)).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
