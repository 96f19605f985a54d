package places

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/Gyu-bot/myspot/internal/domain"
	"github.com/Gyu-bot/myspot/internal/pkg/dbctx"
	"github.com/Gyu-bot/myspot/internal/platform/logger"
)

type NoteRepo interface {
	Create(dbc dbctx.Context, notes []*types.Note) ([]*types.Note, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Note, error)
	ListByPlace(dbc dbctx.Context, placeID uuid.UUID) ([]*types.Note, error)
	UpdateContent(dbc dbctx.Context, id uuid.UUID, content string) (bool, error)
	Delete(dbc dbctx.Context, id uuid.UUID) (bool, error)
}

type noteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNoteRepo(db *gorm.DB, baseLog *logger.Logger) NoteRepo {
	return &noteRepo{
		db:  db,
		log: baseLog.With("repo", "NoteRepo"),
	}
}

func (r *noteRepo) Create(dbc dbctx.Context, notes []*types.Note) ([]*types.Note, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(notes) == 0 {
		return []*types.Note{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Note, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var note types.Note
	if err := transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&note).Error; err != nil {
		return nil, err
	}
	if note.ID == uuid.Nil {
		return nil, nil
	}
	return &note, nil
}

// ListByPlace returns notes newest first.
func (r *noteRepo) ListByPlace(dbc dbctx.Context, placeID uuid.UUID) ([]*types.Note, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Note
	if err := transaction.WithContext(dbc.Ctx).
		Where("place_id = ?", placeID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *noteRepo) UpdateContent(dbc dbctx.Context, id uuid.UUID, content string) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(dbc.Ctx).
		Model(&types.Note{}).
		Where("id = ?", id).
		Update("content", content)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *noteRepo) Delete(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Delete(&types.Note{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
