package places

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/Gyu-bot/myspot/internal/domain"
	"github.com/Gyu-bot/myspot/internal/pkg/dbctx"
	"github.com/Gyu-bot/myspot/internal/platform/logger"
)

type TagRepo interface {
	Create(dbc dbctx.Context, tag *types.Tag) (*types.Tag, error)
	UpsertByNames(dbc dbctx.Context, names []string) ([]*types.Tag, error)
	List(dbc dbctx.Context) ([]*types.Tag, error)
}

type tagRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTagRepo(db *gorm.DB, baseLog *logger.Logger) TagRepo {
	return &tagRepo{
		db:  db,
		log: baseLog.With("repo", "TagRepo"),
	}
}

func (r *tagRepo) Create(dbc dbctx.Context, tag *types.Tag) (*types.Tag, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(dbc.Ctx).Create(tag).Error; err != nil {
		return nil, err
	}
	return tag, nil
}

// UpsertByNames inserts missing freeform tags and returns the rows for every
// name, existing or new, ordered by name. Names are expected to be cleaned.
func (r *tagRepo) UpsertByNames(dbc dbctx.Context, names []string) ([]*types.Tag, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(names) == 0 {
		return []*types.Tag{}, nil
	}
	rows := make([]*types.Tag, 0, len(names))
	for _, n := range names {
		rows = append(rows, &types.Tag{Name: n, Type: types.TagTypeFreeform})
	}
	if err := transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&rows).Error; err != nil {
		return nil, err
	}

	var out []*types.Tag
	if err := transaction.WithContext(dbc.Ctx).
		Where("name IN ?", names).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *tagRepo) List(dbc dbctx.Context) ([]*types.Tag, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Tag
	if err := transaction.WithContext(dbc.Ctx).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

type PlaceTagRepo interface {
	Attach(dbc dbctx.Context, placeID uuid.UUID, tagIDs []uuid.UUID) error
	Replace(dbc dbctx.Context, placeID uuid.UUID, tagIDs []uuid.UUID) error
	ListTagIDs(dbc dbctx.Context, placeID uuid.UUID) ([]uuid.UUID, error)
}

type placeTagRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPlaceTagRepo(db *gorm.DB, baseLog *logger.Logger) PlaceTagRepo {
	return &placeTagRepo{
		db:  db,
		log: baseLog.With("repo", "PlaceTagRepo"),
	}
}

// Attach links tags to the place; links that already exist are left alone.
func (r *placeTagRepo) Attach(dbc dbctx.Context, placeID uuid.UUID, tagIDs []uuid.UUID) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(tagIDs) == 0 {
		return nil
	}
	rows := make([]*types.PlaceTag, 0, len(tagIDs))
	for _, id := range tagIDs {
		rows = append(rows, &types.PlaceTag{PlaceID: placeID, TagID: id})
	}
	return transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
}

// Replace makes tagIDs the complete tag set of the place.
func (r *placeTagRepo) Replace(dbc dbctx.Context, placeID uuid.UUID, tagIDs []uuid.UUID) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("place_id = ?", placeID).
		Delete(&types.PlaceTag{}).Error; err != nil {
		return err
	}
	return r.Attach(dbc.WithTx(transaction), placeID, tagIDs)
}

func (r *placeTagRepo) ListTagIDs(dbc dbctx.Context, placeID uuid.UUID) ([]uuid.UUID, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []uuid.UUID
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.PlaceTag{}).
		Where("place_id = ?", placeID).
		Order("tag_id ASC").
		Pluck("tag_id", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
