package domain

import (
	"github.com/Gyu-bot/myspot/internal/domain/places"
)

const (
	AuditActionMerge = places.AuditActionMerge
	AuditEntityPlace = places.AuditEntityPlace

	TagTypeFreeform = places.TagTypeFreeform
	TagTypeSystem   = places.TagTypeSystem
	MediaTypeImage  = places.MediaTypeImage
	DateLayout      = places.DateLayout
	SourceURL       = places.SourceURL
)

var (
	ValidProvider    = places.ValidProvider
	ValidSourceType  = places.ValidSourceType
	ValidReservation = places.ValidReservation
	ValidPriceRange  = places.ValidPriceRange
)

type Place = places.Place
type ProviderLink = places.ProviderLink
type Source = places.Source
type Note = places.Note
type Visit = places.Visit
type Media = places.Media
type Tag = places.Tag
type PlaceTag = places.PlaceTag
type AuditLog = places.AuditLog

// Models lists every persisted type in migration order.
func Models() []interface{} {
	return []interface{}{
		&Place{},
		&Tag{},
		&ProviderLink{},
		&Source{},
		&Note{},
		&Visit{},
		&Media{},
		&PlaceTag{},
		&AuditLog{},
	}
}
