package app

import (
	"gorm.io/gorm"

	"github.com/Gyu-bot/myspot/internal/data/repos"
	"github.com/Gyu-bot/myspot/internal/platform/logger"
)

type Repos struct {
	Place        repos.PlaceRepo
	PlaceMerge   repos.PlaceMergeRepo
	ProviderLink repos.ProviderLinkRepo
	Source       repos.SourceRepo
	Note         repos.NoteRepo
	Visit        repos.VisitRepo
	Media        repos.MediaRepo
	Tag          repos.TagRepo
	PlaceTag     repos.PlaceTagRepo
	AuditLog     repos.AuditLogRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Place:        repos.NewPlaceRepo(db, log),
		PlaceMerge:   repos.NewPlaceMergeRepo(db, log),
		ProviderLink: repos.NewProviderLinkRepo(db, log),
		Source:       repos.NewSourceRepo(db, log),
		Note:         repos.NewNoteRepo(db, log),
		Visit:        repos.NewVisitRepo(db, log),
		Media:        repos.NewMediaRepo(db, log),
		Tag:          repos.NewTagRepo(db, log),
		PlaceTag:     repos.NewPlaceTagRepo(db, log),
		AuditLog:     repos.NewAuditLogRepo(db, log),
	}
}
