package app

import (
	"gorm.io/gorm"

	"github.com/Gyu-bot/myspot/internal/observability"
	"github.com/Gyu-bot/myspot/internal/platform/logger"
	"github.com/Gyu-bot/myspot/internal/services"
)

type Services struct {
	Place  services.PlaceService
	Dedup  services.DedupService
	Tag    services.TagService
	Note   services.NoteService
	Source services.SourceService
	Visit  services.VisitService
	Media  services.MediaService
	Audit  services.AuditService
	Health services.HealthService
}

func wireServices(db *gorm.DB, log *logger.Logger, metrics *observability.Metrics, clients Clients, r Repos) Services {
	log.Info("Wiring services...")

	dedup := services.NewDedupService(db, log, metrics, r.Place, r.PlaceMerge, r.AuditLog)
	tags := services.NewTagService(db, log, clients.TagCache, metrics, r.Tag)
	return Services{
		Place:  services.NewPlaceService(db, log, dedup, tags, r.Place, r.PlaceTag, r.Note, r.ProviderLink),
		Dedup:  dedup,
		Tag:    tags,
		Note:   services.NewNoteService(db, log, r.Place, r.Note),
		Source: services.NewSourceService(db, log, r.Place, r.Source),
		Visit:  services.NewVisitService(db, log, r.Place, r.Visit),
		Media:  services.NewMediaService(db, log, r.Place, r.Media),
		Audit:  services.NewAuditService(log, r.AuditLog),
		Health: services.NewHealthService(db, log, clients.TagCache),
	}
}
