package db

import (
	"fmt"

	types "github.com/Gyu-bot/myspot/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(types.Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if IsPostgres(db) {
		return EnsurePlaceIndexes(db)
	}
	return nil
}

// EnsurePlaceIndexes adds the Postgres-only indexes behind duplicate lookup.
func EnsurePlaceIndexes(db *gorm.DB) error {
	// Trigram index for similarity(normalized_name, ?).
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_places_normalized_name
		ON places
		USING GIN (normalized_name gin_trgm_ops);
	`).Error; err != nil {
		return fmt.Errorf("create idx_places_normalized_name: %w", err)
	}

	// Geography expression index for ST_DWithin radius checks.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_places_location
		ON places
		USING GIST ((ST_SetSRID(ST_MakePoint(lng, lat), 4326)::geography))
		WHERE lat IS NOT NULL AND lng IS NOT NULL;
	`).Error; err != nil {
		return fmt.Errorf("create idx_places_location: %w", err)
	}

	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_places_created_id
		ON places (created_at DESC, id DESC);
	`).Error; err != nil {
		return fmt.Errorf("create idx_places_created_id: %w", err)
	}

	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_audit_logs_entity_created
		ON audit_logs (entity_id, created_at DESC);
	`).Error; err != nil {
		return fmt.Errorf("create idx_audit_logs_entity_created: %w", err)
	}
	return nil
}
