package places

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	AuditActionMerge = "merge"
	AuditEntityPlace = "place"
)

// AuditLog rows are append-only.
type AuditLog struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Action     string         `gorm:"column:action;size:64;not null;index" json:"action"`
	EntityType string         `gorm:"column:entity_type;size:32" json:"entity_type"`
	EntityID   *uuid.UUID     `gorm:"type:uuid;column:entity_id;index" json:"entity_id"`
	Detail     datatypes.JSON `gorm:"column:detail" json:"detail"`
	CreatedAt  time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null" json:"-"`
}

func (AuditLog) TableName() string { return "audit_logs" }

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
