package places

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TagTypeFreeform = "freeform"
	TagTypeSystem   = "system"
)

type Tag struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string     `gorm:"column:name;not null;uniqueIndex" json:"name"`
	Type      string     `gorm:"column:type;size:16;not null;default:'freeform';check:ck_tags_type,type IN ('freeform','system')" json:"type"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null" json:"-"`
	PlaceTags []PlaceTag `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Tag) TableName() string { return "tags" }

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Type == "" {
		t.Type = TagTypeFreeform
	}
	return nil
}

// PlaceTag is the place/tag association. The pair is the primary key, so a
// place carries a tag at most once.
type PlaceTag struct {
	PlaceID   uuid.UUID `gorm:"type:uuid;column:place_id;primaryKey" json:"place_id"`
	TagID     uuid.UUID `gorm:"type:uuid;column:tag_id;primaryKey;index" json:"tag_id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (PlaceTag) TableName() string { return "place_tags" }
