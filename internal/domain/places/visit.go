package places

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DateLayout is the wire format of Visit.VisitedAt.
const DateLayout = "2006-01-02"

type Visit struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PlaceID   uuid.UUID `gorm:"type:uuid;column:place_id;not null;index" json:"place_id"`
	VisitedAt time.Time `gorm:"column:visited_at;type:date;not null;index" json:"-"`
	Rating    *int      `gorm:"column:rating;check:ck_visits_rating,rating BETWEEN 1 AND 5" json:"rating"`
	WithWhom  *string   `gorm:"column:with_whom" json:"with_whom"`
	Situation *string   `gorm:"column:situation" json:"situation"`
	Memo      *string   `gorm:"column:memo" json:"memo"`
	Revisit   *bool     `gorm:"column:revisit" json:"revisit"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`

	// VisitedOn mirrors VisitedAt as a calendar date for JSON.
	VisitedOn string `gorm:"-" json:"visited_at"`
}

func (Visit) TableName() string { return "visits" }

func (v *Visit) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

func (v *Visit) BeforeSave(tx *gorm.DB) error {
	y, m, d := v.VisitedAt.Date()
	v.VisitedAt = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	v.VisitedOn = v.VisitedAt.Format(DateLayout)
	return nil
}

func (v *Visit) AfterFind(tx *gorm.DB) error {
	v.VisitedOn = v.VisitedAt.UTC().Format(DateLayout)
	return nil
}
