package places

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Gyu-bot/myspot/internal/data/db"
	types "github.com/Gyu-bot/myspot/internal/domain"
	"github.com/Gyu-bot/myspot/internal/normalization"
	"github.com/Gyu-bot/myspot/internal/pkg/dbctx"
	"github.com/Gyu-bot/myspot/internal/pkg/geo"
	"github.com/Gyu-bot/myspot/internal/pkg/pagination"
	"github.com/Gyu-bot/myspot/internal/platform/logger"
)

type PlaceListFilter struct {
	Cursor          *pagination.Cursor
	Limit           int
	CategoryPrimary *string
	IsFavorite      *bool
}

// DuplicateMatchQuery selects rows that share at least one signal with the
// query: name similarity at or above NameThreshold, equal normalized phone,
// or a location within RadiusMeters.
type DuplicateMatchQuery struct {
	NormalizedName  string
	NormalizedPhone string
	Point           *geo.Point
	ExcludeID       *uuid.UUID
	NameThreshold   float64
	RadiusMeters    float64
}

type DuplicateMatch struct {
	Place          *types.Place
	NameSimilarity float64
	PhoneMatch     bool
	WithinRadius   bool
}

type PlaceRepo interface {
	Create(dbc dbctx.Context, place *types.Place) (*types.Place, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Place, error)
	GetDetail(dbc dbctx.Context, id uuid.UUID) (*types.Place, error)
	LockByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Place, error)
	List(dbc dbctx.Context, filter PlaceListFilter) ([]*types.Place, *pagination.Cursor, int64, error)
	Save(dbc dbctx.Context, place *types.Place) error
	Delete(dbc dbctx.Context, id uuid.UUID) (bool, error)
	FindDuplicateMatches(dbc dbctx.Context, q DuplicateMatchQuery) ([]DuplicateMatch, error)
}

type placeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPlaceRepo(db *gorm.DB, baseLog *logger.Logger) PlaceRepo {
	return &placeRepo{
		db:  db,
		log: baseLog.With("repo", "PlaceRepo"),
	}
}

func (r *placeRepo) Create(dbc dbctx.Context, place *types.Place) (*types.Place, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if place == nil {
		return nil, fmt.Errorf("nil place")
	}
	if err := transaction.WithContext(dbc.Ctx).Create(place).Error; err != nil {
		return nil, err
	}
	return place, nil
}

// GetByID returns the bare row, or nil when it does not exist.
func (r *placeRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Place, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var place types.Place
	err := transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&place).Error
	if err != nil {
		return nil, err
	}
	if place.ID == uuid.Nil {
		return nil, nil
	}
	return &place, nil
}

// GetDetail loads the place with every child collection and its tags.
func (r *placeRepo) GetDetail(dbc dbctx.Context, id uuid.UUID) (*types.Place, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var place types.Place
	err := transaction.WithContext(dbc.Ctx).
		Preload("ProviderLinks", orderBy("provider ASC")).
		Preload("Sources", orderBy("created_at DESC, id DESC")).
		Preload("Notes", orderBy("created_at DESC, id DESC")).
		Preload("Visits", orderBy("visited_at DESC, created_at DESC")).
		Preload("Media", orderBy("created_at DESC, id DESC")).
		Where("id = ?", id).
		Limit(1).
		Find(&place).Error
	if err != nil {
		return nil, err
	}
	if place.ID == uuid.Nil {
		return nil, nil
	}
	if err := attachTags(transaction.WithContext(dbc.Ctx), []*types.Place{&place}); err != nil {
		return nil, err
	}
	return &place, nil
}

// LockByIDs takes row locks on the given places for the rest of the
// transaction. Rows come back ordered by id so concurrent callers lock in the
// same order.
func (r *placeRepo) LockByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Place, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Place
	if len(ids) == 0 {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// List pages places newest first. The returned cursor is nil on the last page;
// total counts every row matching the filters regardless of the cursor.
func (r *placeRepo) List(dbc dbctx.Context, filter PlaceListFilter) ([]*types.Place, *pagination.Cursor, int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	limit := pagination.ClampLimit(filter.Limit)

	base := transaction.WithContext(dbc.Ctx).Model(&types.Place{})
	if filter.CategoryPrimary != nil {
		base = base.Where("category_primary = ?", *filter.CategoryPrimary)
	}
	if filter.IsFavorite != nil {
		base = base.Where("is_favorite = ?", *filter.IsFavorite)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, nil, 0, err
	}

	var rows []*types.Place
	q := applyCursor(base.Session(&gorm.Session{}), filter.Cursor)
	if err := q.Order("created_at DESC").Order("id DESC").Limit(limit + 1).Find(&rows).Error; err != nil {
		return nil, nil, 0, err
	}

	var next *pagination.Cursor
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		next = &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}
	}
	if err := attachTags(transaction.WithContext(dbc.Ctx), rows); err != nil {
		return nil, nil, 0, err
	}
	return rows, next, total, nil
}

// Save writes every column of place. Child collections are not touched.
func (r *placeRepo) Save(dbc dbctx.Context, place *types.Place) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx).
		Omit(clause.Associations).
		Save(place).Error
}

func (r *placeRepo) Delete(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Delete(&types.Place{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *placeRepo) FindDuplicateMatches(dbc dbctx.Context, q DuplicateMatchQuery) ([]DuplicateMatch, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if db.IsPostgres(transaction) {
		return r.findDuplicateMatchesPostgres(transaction.WithContext(dbc.Ctx), q)
	}
	return r.findDuplicateMatchesScan(transaction.WithContext(dbc.Ctx), q)
}

type duplicateMatchRow struct {
	ID             uuid.UUID `gorm:"column:id"`
	NameSimilarity float64   `gorm:"column:name_similarity"`
	WithinRadius   bool      `gorm:"column:within_radius"`
}

const geographyWithin = `(lat IS NOT NULL AND lng IS NOT NULL AND ST_DWithin(
	ST_SetSRID(ST_MakePoint(lng, lat), 4326)::geography,
	ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography,
	?))`

// findDuplicateMatchesPostgres lets pg_trgm and PostGIS do the filtering,
// then loads the matched rows.
func (r *placeRepo) findDuplicateMatchesPostgres(tx *gorm.DB, q DuplicateMatchQuery) ([]DuplicateMatch, error) {
	selectSQL := "id, similarity(normalized_name, ?) AS name_similarity"
	selectArgs := []interface{}{q.NormalizedName}

	conds := []string{"similarity(normalized_name, ?) >= ?"}
	condArgs := []interface{}{q.NormalizedName, q.NameThreshold}

	if q.NormalizedPhone != "" {
		conds = append(conds, "normalized_phone = ?")
		condArgs = append(condArgs, q.NormalizedPhone)
	}
	if q.Point != nil {
		selectSQL += ", " + geographyWithin + " AS within_radius"
		selectArgs = append(selectArgs, q.Point.Lng, q.Point.Lat, q.RadiusMeters)
		conds = append(conds, geographyWithin)
		condArgs = append(condArgs, q.Point.Lng, q.Point.Lat, q.RadiusMeters)
	} else {
		selectSQL += ", false AS within_radius"
	}

	stmt := tx.Model(&types.Place{}).
		Select(selectSQL, selectArgs...).
		Where("("+strings.Join(conds, " OR ")+")", condArgs...)
	if q.ExcludeID != nil {
		stmt = stmt.Where("id <> ?", *q.ExcludeID)
	}

	var rows []duplicateMatchRow
	if err := stmt.Order("created_at ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []DuplicateMatch{}, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	var found []*types.Place
	if err := tx.Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*types.Place, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	out := make([]DuplicateMatch, 0, len(rows))
	for _, row := range rows {
		p, ok := byID[row.ID]
		if !ok {
			continue
		}
		out = append(out, DuplicateMatch{
			Place:          p,
			NameSimilarity: row.NameSimilarity,
			PhoneMatch:     q.NormalizedPhone != "" && p.NormalizedPhone == q.NormalizedPhone,
			WithinRadius:   row.WithinRadius,
		})
	}
	return out, nil
}

// findDuplicateMatchesScan evaluates the same predicates in Go for stores
// without pg_trgm or PostGIS.
func (r *placeRepo) findDuplicateMatchesScan(tx *gorm.DB, q DuplicateMatchQuery) ([]DuplicateMatch, error) {
	stmt := tx.Model(&types.Place{})
	if q.ExcludeID != nil {
		stmt = stmt.Where("id <> ?", *q.ExcludeID)
	}
	var all []*types.Place
	if err := stmt.Order("created_at ASC").Find(&all).Error; err != nil {
		return nil, err
	}

	out := make([]DuplicateMatch, 0)
	for _, p := range all {
		m := DuplicateMatch{
			Place:          p,
			NameSimilarity: normalization.TrigramSimilarity(p.NormalizedName, q.NormalizedName),
			PhoneMatch:     q.NormalizedPhone != "" && p.NormalizedPhone == q.NormalizedPhone,
		}
		if q.Point != nil && p.HasLocation() {
			m.WithinRadius = geo.WithinMeters(*q.Point, geo.Point{Lat: *p.Lat, Lng: *p.Lng}, q.RadiusMeters)
		}
		if m.NameSimilarity >= q.NameThreshold || m.PhoneMatch || m.WithinRadius {
			out = append(out, m)
		}
	}
	return out, nil
}

func orderBy(expr string) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB { return tx.Order(expr) }
}

func applyCursor(q *gorm.DB, c *pagination.Cursor) *gorm.DB {
	if c == nil {
		return q
	}
	return q.Where("(created_at < ? OR (created_at = ? AND id < ?))", c.CreatedAt, c.CreatedAt, c.ID)
}

// attachTags fills Place.Tags for every place in one query.
func attachTags(tx *gorm.DB, rows []*types.Place) error {
	if len(rows) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(rows))
	for _, p := range rows {
		ids = append(ids, p.ID)
	}
	byPlace, err := tagsByPlace(tx, ids)
	if err != nil {
		return err
	}
	for _, p := range rows {
		p.Tags = byPlace[p.ID]
		if p.Tags == nil {
			p.Tags = []types.Tag{}
		}
	}
	return nil
}

type placeTagRow struct {
	PlaceID   uuid.UUID `gorm:"column:place_id"`
	TagID     uuid.UUID `gorm:"column:tag_id"`
	Name      string    `gorm:"column:name"`
	Type      string    `gorm:"column:type"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func tagsByPlace(tx *gorm.DB, placeIDs []uuid.UUID) (map[uuid.UUID][]types.Tag, error) {
	var rows []placeTagRow
	err := tx.Table("place_tags").
		Select("place_tags.place_id, tags.id AS tag_id, tags.name, tags.type, tags.created_at").
		Joins("JOIN tags ON tags.id = place_tags.tag_id").
		Where("place_tags.place_id IN ?", placeIDs).
		Order("tags.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID][]types.Tag, len(placeIDs))
	for _, row := range rows {
		out[row.PlaceID] = append(out[row.PlaceID], types.Tag{
			ID:        row.TagID,
			Name:      row.Name,
			Type:      row.Type,
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}
