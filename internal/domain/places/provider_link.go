package places

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ProviderNaver  = "NAVER"
	ProviderKakao  = "KAKAO"
	ProviderGoogle = "GOOGLE"
	ProviderEtc    = "ETC"
)

type ProviderLink struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PlaceID         uuid.UUID  `gorm:"type:uuid;column:place_id;not null;uniqueIndex:uq_provider_links_place_provider,priority:1" json:"place_id"`
	Provider        string     `gorm:"column:provider;size:16;not null;uniqueIndex:uq_provider_links_place_provider,priority:2;check:ck_provider_links_provider,provider IN ('NAVER','KAKAO','GOOGLE','ETC')" json:"provider"`
	ProviderPlaceID *string    `gorm:"column:provider_place_id" json:"provider_place_id"`
	ProviderURL     *string    `gorm:"column:provider_url" json:"provider_url"`
	LastVerifiedAt  *time.Time `gorm:"column:last_verified_at" json:"last_verified_at,omitempty"`
	CreatedAt       time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"not null" json:"updated_at"`
}

func (ProviderLink) TableName() string { return "provider_links" }

func (l *ProviderLink) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// ValidProvider reports whether p is one of the known provider codes.
func ValidProvider(p string) bool {
	switch p {
	case ProviderNaver, ProviderKakao, ProviderGoogle, ProviderEtc:
		return true
	}
	return false
}
