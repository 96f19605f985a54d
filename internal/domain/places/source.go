package places

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SourceURL           = "URL"
	SourceText          = "TEXT"
	SourceImage         = "IMAGE"
	SourceReviewSnippet = "REVIEW_SNIPPET"
)

type Source struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PlaceID    uuid.UUID  `gorm:"type:uuid;column:place_id;not null;index" json:"place_id"`
	Type       string     `gorm:"column:type;size:32;not null;check:ck_sources_type,type IN ('URL','TEXT','IMAGE','REVIEW_SNIPPET')" json:"type"`
	URL        *string    `gorm:"column:url" json:"url"`
	Title      *string    `gorm:"column:title" json:"title"`
	Snippet    *string    `gorm:"column:snippet" json:"snippet"`
	RawText    *string    `gorm:"column:raw_text" json:"raw_text,omitempty"`
	CapturedAt *time.Time `gorm:"column:captured_at" json:"captured_at"`
	CreatedAt  time.Time  `gorm:"not null;index" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"not null" json:"updated_at"`
}

func (Source) TableName() string { return "sources" }

func (s *Source) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.CapturedAt == nil {
		now := tx.NowFunc()
		s.CapturedAt = &now
	}
	return nil
}

func ValidSourceType(t string) bool {
	switch t {
	case SourceURL, SourceText, SourceImage, SourceReviewSnippet:
		return true
	}
	return false
}
