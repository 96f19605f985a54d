package repos

import (
	"github.com/Gyu-bot/myspot/internal/data/repos/places"
	"github.com/Gyu-bot/myspot/internal/platform/logger"
	"gorm.io/gorm"
)

type PlaceRepo = places.PlaceRepo
type PlaceListFilter = places.PlaceListFilter
type DuplicateMatchQuery = places.DuplicateMatchQuery
type DuplicateMatch = places.DuplicateMatch
type PlaceMergeRepo = places.PlaceMergeRepo
type MergeMoves = places.MergeMoves

type ProviderLinkRepo = places.ProviderLinkRepo
type SourceRepo = places.SourceRepo
type NoteRepo = places.NoteRepo
type VisitRepo = places.VisitRepo
type MediaRepo = places.MediaRepo
type TagRepo = places.TagRepo
type PlaceTagRepo = places.PlaceTagRepo
type AuditLogRepo = places.AuditLogRepo

func NewPlaceRepo(db *gorm.DB, baseLog *logger.Logger) PlaceRepo {
	return places.NewPlaceRepo(db, baseLog)
}
func NewPlaceMergeRepo(db *gorm.DB, baseLog *logger.Logger) PlaceMergeRepo {
	return places.NewPlaceMergeRepo(db, baseLog)
}

func NewProviderLinkRepo(db *gorm.DB, baseLog *logger.Logger) ProviderLinkRepo {
	return places.NewProviderLinkRepo(db, baseLog)
}
func NewSourceRepo(db *gorm.DB, baseLog *logger.Logger) SourceRepo {
	return places.NewSourceRepo(db, baseLog)
}
func NewNoteRepo(db *gorm.DB, baseLog *logger.Logger) NoteRepo {
	return places.NewNoteRepo(db, baseLog)
}
func NewVisitRepo(db *gorm.DB, baseLog *logger.Logger) VisitRepo {
	return places.NewVisitRepo(db, baseLog)
}
func NewMediaRepo(db *gorm.DB, baseLog *logger.Logger) MediaRepo {
	return places.NewMediaRepo(db, baseLog)
}

func NewTagRepo(db *gorm.DB, baseLog *logger.Logger) TagRepo { return places.NewTagRepo(db, baseLog) }
func NewPlaceTagRepo(db *gorm.DB, baseLog *logger.Logger) PlaceTagRepo {
	return places.NewPlaceTagRepo(db, baseLog)
}

func NewAuditLogRepo(db *gorm.DB, baseLog *logger.Logger) AuditLogRepo {
	return places.NewAuditLogRepo(db, baseLog)
}
