package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Gyu-bot/myspot/internal/data/repos"
	"github.com/Gyu-bot/myspot/internal/data/repos/testutil"
	types "github.com/Gyu-bot/myspot/internal/domain"
	"github.com/Gyu-bot/myspot/internal/observability"
	"github.com/Gyu-bot/myspot/internal/platform/cache"
)

type fixture struct {
	db      *gorm.DB
	metrics *observability.Metrics
	cache   cache.JSONCache
	tagRepo repos.TagRepo
	places  PlaceService
	dedup   DedupService
	tags    TagService
	notes   NoteService
	sources SourceService
	visits  VisitService
	media   MediaService
	audit   AuditService
	health  HealthService
}

// newFixture wires every service over a private SQLite database. Services
// open their own transactions, so there is no outer test transaction.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.SQLite(t)
	log := testutil.Logger(t)
	metrics := observability.NewMetrics()
	tagCache := cache.NewMemoryCache(time.Minute)

	placeRepo := repos.NewPlaceRepo(db, log)
	tagRepo := repos.NewTagRepo(db, log)
	auditRepo := repos.NewAuditLogRepo(db, log)

	f := &fixture{db: db, metrics: metrics, cache: tagCache, tagRepo: tagRepo}
	f.dedup = NewDedupService(db, log, metrics, placeRepo, repos.NewPlaceMergeRepo(db, log), auditRepo)
	f.tags = NewTagService(db, log, tagCache, metrics, tagRepo)
	f.places = NewPlaceService(db, log, f.dedup, f.tags, placeRepo,
		repos.NewPlaceTagRepo(db, log), repos.NewNoteRepo(db, log), repos.NewProviderLinkRepo(db, log))
	f.notes = NewNoteService(db, log, placeRepo, repos.NewNoteRepo(db, log))
	f.sources = NewSourceService(db, log, placeRepo, repos.NewSourceRepo(db, log))
	f.visits = NewVisitService(db, log, placeRepo, repos.NewVisitRepo(db, log))
	f.media = NewMediaService(db, log, placeRepo, repos.NewMediaRepo(db, log))
	f.audit = NewAuditService(log, auditRepo)
	f.health = NewHealthService(db, log, tagCache)
	return f
}

func (f *fixture) createPlace(t *testing.T, in PlaceInput) *types.Place {
	t.Helper()
	p, _, err := f.places.Create(context.Background(), in)
	require.NoError(t, err)
	return p
}

func tagNames(p *types.Place) []string {
	out := make([]string, 0, len(p.Tags))
	for _, tag := range p.Tags {
		out = append(out, tag.Name)
	}
	return out
}
