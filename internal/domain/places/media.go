package places

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const MediaTypeImage = "image"

type Media struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PlaceID    uuid.UUID  `gorm:"type:uuid;column:place_id;not null;index" json:"place_id"`
	Type       string     `gorm:"column:type;size:32;not null;default:'image'" json:"type"`
	StorageURL string     `gorm:"column:storage_url;not null" json:"storage_url"`
	Caption    *string    `gorm:"column:caption" json:"caption"`
	CapturedAt *time.Time `gorm:"column:captured_at" json:"captured_at"`
	CreatedAt  time.Time  `gorm:"not null;index" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"not null" json:"updated_at"`
}

func (Media) TableName() string { return "media" }

func (m *Media) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Type == "" {
		m.Type = MediaTypeImage
	}
	return nil
}
