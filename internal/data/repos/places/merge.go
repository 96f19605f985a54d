package places

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Gyu-bot/myspot/internal/data/db"
	types "github.com/Gyu-bot/myspot/internal/domain"
	"github.com/Gyu-bot/myspot/internal/pkg/dbctx"
	"github.com/Gyu-bot/myspot/internal/platform/logger"
)

// childTables are the tables whose rows follow a place through a merge, in
// the order they are moved.
var childTables = []string{
	"provider_links",
	"sources",
	"notes",
	"visits",
	"media",
	"place_tags",
}

// MergeMoves records what a merge did to the child rows of the merged place.
type MergeMoves struct {
	Moved            map[string]int64 `json:"moved"`
	DroppedTagIDs    []uuid.UUID      `json:"dropped_tag_ids"`
	DroppedProviders []string         `json:"dropped_providers"`
}

// PlaceMergeRepo moves child rows between places. It must run inside the
// caller's transaction.
type PlaceMergeRepo interface {
	MoveChildren(dbc dbctx.Context, keepID, mergeID uuid.UUID) (*MergeMoves, error)
}

type placeMergeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPlaceMergeRepo(db *gorm.DB, baseLog *logger.Logger) PlaceMergeRepo {
	return &placeMergeRepo{
		db:  db,
		log: baseLog.With("repo", "PlaceMergeRepo"),
	}
}

// MoveChildren first removes merge-side rows that would collide with a keep-side
// row (a tag both places carry, a provider both places link), then repoints
// every remaining child row from mergeID to keepID with one UPDATE per table.
func (r *placeMergeRepo) MoveChildren(dbc dbctx.Context, keepID, mergeID uuid.UUID) (*MergeMoves, error) {
	transaction := dbc.Tx
	if transaction == nil {
		return nil, fmt.Errorf("place merge requires a transaction")
	}
	tx := transaction.WithContext(dbc.Ctx)
	moves := &MergeMoves{
		Moved:            make(map[string]int64, len(childTables)),
		DroppedTagIDs:    []uuid.UUID{},
		DroppedProviders: []string{},
	}

	if err := tx.Model(&types.PlaceTag{}).
		Where("place_id = ? AND tag_id IN (?)", mergeID,
			tx.Model(&types.PlaceTag{}).Select("tag_id").Where("place_id = ?", keepID)).
		Order("tag_id ASC").
		Pluck("tag_id", &moves.DroppedTagIDs).Error; err != nil {
		return nil, fmt.Errorf("find shared tags: %w", err)
	}
	if len(moves.DroppedTagIDs) > 0 {
		if err := tx.Where("place_id = ? AND tag_id IN ?", mergeID, moves.DroppedTagIDs).
			Delete(&types.PlaceTag{}).Error; err != nil {
			return nil, fmt.Errorf("drop shared tags: %w", err)
		}
	}

	if err := tx.Model(&types.ProviderLink{}).
		Where("place_id = ? AND provider IN (?)", mergeID,
			tx.Model(&types.ProviderLink{}).Select("provider").Where("place_id = ?", keepID)).
		Order("provider ASC").
		Pluck("provider", &moves.DroppedProviders).Error; err != nil {
		return nil, fmt.Errorf("find shared providers: %w", err)
	}
	if len(moves.DroppedProviders) > 0 {
		if err := tx.Where("place_id = ? AND provider IN ?", mergeID, moves.DroppedProviders).
			Delete(&types.ProviderLink{}).Error; err != nil {
			return nil, fmt.Errorf("drop shared providers: %w", err)
		}
	}

	now := db.Now()
	for _, table := range childTables {
		res := tx.Exec(
			fmt.Sprintf("UPDATE %s SET place_id = ?, updated_at = ? WHERE place_id = ?", table),
			keepID, now, mergeID,
		)
		if res.Error != nil {
			return nil, fmt.Errorf("move %s: %w", table, res.Error)
		}
		moves.Moved[table] = res.RowsAffected
	}

	r.log.Debug("Moved place children", "keep_id", keepID, "merge_id", mergeID, "moved", moves.Moved)
	return moves, nil
}
