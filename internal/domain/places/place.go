package places

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Gyu-bot/myspot/internal/normalization"
)

const (
	ReservationAvailable   = "available"
	ReservationRequired    = "required"
	ReservationUnavailable = "unavailable"
	ReservationUnknown     = "unknown"

	PriceCheap         = "cheap"
	PriceModerate      = "moderate"
	PriceExpensive     = "expensive"
	PriceVeryExpensive = "very_expensive"
	PriceUnknown       = "unknown"
)

type Place struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CanonicalName   string    `gorm:"column:canonical_name;not null" json:"canonical_name"`
	NormalizedName  string    `gorm:"column:normalized_name;not null" json:"normalized_name"`
	NormalizedPhone string    `gorm:"column:normalized_phone;index" json:"-"`

	AddressRoad  *string `gorm:"column:address_road" json:"address_road"`
	AddressJibun *string `gorm:"column:address_jibun" json:"address_jibun"`
	RegionDepth1 *string `gorm:"column:region_depth1" json:"region_depth1"`
	RegionDepth2 *string `gorm:"column:region_depth2" json:"region_depth2"`
	RegionDepth3 *string `gorm:"column:region_depth3" json:"region_depth3"`

	// Lat and Lng are set together or not at all.
	Lat   *float64 `gorm:"column:lat" json:"lat"`
	Lng   *float64 `gorm:"column:lng" json:"lng"`
	Phone *string  `gorm:"column:phone;size:32" json:"phone"`

	CategoryPrimary   *string `gorm:"column:category_primary;index:idx_places_category,priority:1" json:"category_primary"`
	CategorySecondary *string `gorm:"column:category_secondary;index:idx_places_category,priority:2" json:"category_secondary"`

	Parking     *bool   `gorm:"column:parking" json:"parking"`
	Reservation *string `gorm:"column:reservation;size:32;check:ck_places_reservation,reservation IN ('available','required','unavailable','unknown')" json:"reservation"`
	PriceRange  *string `gorm:"column:price_range;size:32;check:ck_places_price_range,price_range IN ('cheap','moderate','expensive','very_expensive','unknown')" json:"price_range"`

	Mood       datatypes.JSONSlice[string] `gorm:"column:mood" json:"mood"`
	Companions datatypes.JSONSlice[string] `gorm:"column:companions" json:"companions"`
	Situations datatypes.JSONSlice[string] `gorm:"column:situations" json:"situations"`

	IsFavorite bool `gorm:"column:is_favorite;not null;default:false" json:"is_favorite"`
	UserRating *int `gorm:"column:user_rating;check:ck_places_user_rating,user_rating BETWEEN 1 AND 5" json:"user_rating"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`

	ProviderLinks []ProviderLink `gorm:"foreignKey:PlaceID;constraint:OnDelete:CASCADE" json:"provider_links"`
	Sources       []Source       `gorm:"foreignKey:PlaceID;constraint:OnDelete:CASCADE" json:"sources,omitempty"`
	Notes         []Note         `gorm:"foreignKey:PlaceID;constraint:OnDelete:CASCADE" json:"notes,omitempty"`
	Visits        []Visit        `gorm:"foreignKey:PlaceID;constraint:OnDelete:CASCADE" json:"visits,omitempty"`
	Media         []Media        `gorm:"foreignKey:PlaceID;constraint:OnDelete:CASCADE" json:"media,omitempty"`
	PlaceTags     []PlaceTag     `gorm:"foreignKey:PlaceID;constraint:OnDelete:CASCADE" json:"-"`

	// Tags is filled by the repo from place_tags.
	Tags []Tag `gorm:"-" json:"tags"`
}

func (Place) TableName() string { return "places" }

func (p *Place) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// BeforeSave keeps the derived match keys in step with the editable fields.
func (p *Place) BeforeSave(tx *gorm.DB) error {
	p.NormalizedName = normalization.NormalizePlaceName(p.CanonicalName)
	p.NormalizedPhone = ""
	if p.Phone != nil {
		p.NormalizedPhone = normalization.NormalizePhone(*p.Phone)
	}
	return nil
}

// HasLocation reports whether both coordinates are present.
func (p *Place) HasLocation() bool {
	return p != nil && p.Lat != nil && p.Lng != nil
}

func ValidReservation(v string) bool {
	switch v {
	case ReservationAvailable, ReservationRequired, ReservationUnavailable, ReservationUnknown:
		return true
	}
	return false
}

func ValidPriceRange(v string) bool {
	switch v {
	case PriceCheap, PriceModerate, PriceExpensive, PriceVeryExpensive, PriceUnknown:
		return true
	}
	return false
}
