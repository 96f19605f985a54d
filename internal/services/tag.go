package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Gyu-bot/myspot/internal/data/repos"
	types "github.com/Gyu-bot/myspot/internal/domain"
	"github.com/Gyu-bot/myspot/internal/normalization"
	"github.com/Gyu-bot/myspot/internal/observability"
	"github.com/Gyu-bot/myspot/internal/pkg/dbctx"
	"github.com/Gyu-bot/myspot/internal/platform/cache"
	"github.com/Gyu-bot/myspot/internal/platform/logger"
)

const tagListCacheKey = "tags:all"

type TagService interface {
	Create(ctx context.Context, name, tagType string) (*types.Tag, error)
	List(ctx context.Context) ([]*types.Tag, error)
	// Resolve returns a tag row for every cleaned name, creating freeform
	// tags as needed. It runs on dbc's transaction when there is one.
	Resolve(dbc dbctx.Context, names []string) ([]*types.Tag, error)
	InvalidateCache(ctx context.Context)
}

type tagService struct {
	db      *gorm.DB
	log     *logger.Logger
	cache   cache.JSONCache
	metrics *observability.Metrics
	tagRepo repos.TagRepo
}

// NewTagService builds the service; tagCache may be nil to always read
// through to the store.
func NewTagService(db *gorm.DB, log *logger.Logger, tagCache cache.JSONCache, metrics *observability.Metrics, tagRepo repos.TagRepo) TagService {
	return &tagService{
		db:      db,
		log:     log.With("service", "TagService"),
		cache:   tagCache,
		metrics: metrics,
		tagRepo: tagRepo,
	}
}

func (s *tagService) Create(ctx context.Context, name, tagType string) (*types.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidArgument("tag name is required")
	}
	tagType = strings.ToLower(strings.TrimSpace(tagType))
	if tagType == "" {
		tagType = types.TagTypeFreeform
	}
	if tagType != types.TagTypeFreeform && tagType != types.TagTypeSystem {
		return nil, invalidArgument("unknown tag type %q", tagType)
	}
	tag, err := s.tagRepo.Create(dbctx.New(ctx), &types.Tag{Name: name, Type: tagType})
	if err != nil {
		return nil, mapStoreError("create tag", err)
	}
	s.InvalidateCache(ctx)
	return tag, nil
}

func (s *tagService) List(ctx context.Context) ([]*types.Tag, error) {
	if s.cache != nil {
		var cached []*types.Tag
		ok, err := s.cache.Get(ctx, tagListCacheKey, &cached)
		if err != nil {
			s.log.Warn("Tag cache read failed", "backend", s.cache.Backend(), "error", err)
		}
		s.metrics.IncTagCache(ok)
		if ok {
			return cached, nil
		}
	}

	tags, err := s.tagRepo.List(dbctx.New(ctx))
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	if tags == nil {
		tags = []*types.Tag{}
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, tagListCacheKey, tags); err != nil {
			s.log.Warn("Tag cache write failed", "backend", s.cache.Backend(), "error", err)
		}
	}
	return tags, nil
}

func (s *tagService) Resolve(dbc dbctx.Context, names []string) ([]*types.Tag, error) {
	cleaned := normalization.CleanTagNames(names)
	if len(cleaned) == 0 {
		return []*types.Tag{}, nil
	}
	tags, err := s.tagRepo.UpsertByNames(dbc, cleaned)
	if err != nil {
		return nil, mapStoreError("upsert tags", err)
	}
	return tags, nil
}

func (s *tagService) InvalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, tagListCacheKey); err != nil {
		s.log.Warn("Tag cache invalidation failed", "backend", s.cache.Backend(), "error", err)
	}
}
