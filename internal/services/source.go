package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Gyu-bot/myspot/internal/data/repos"
	types "github.com/Gyu-bot/myspot/internal/domain"
	"github.com/Gyu-bot/myspot/internal/pkg/dbctx"
	"github.com/Gyu-bot/myspot/internal/pkg/pagination"
	"github.com/Gyu-bot/myspot/internal/platform/logger"
)

type SourceInput struct {
	PlaceID    uuid.UUID  `json:"place_id"`
	Type       string     `json:"type"`
	URL        *string    `json:"url"`
	Title      *string    `json:"title"`
	Snippet    *string    `json:"snippet"`
	RawText    *string    `json:"raw_text"`
	CapturedAt *time.Time `json:"captured_at"`
}

type SourcePage struct {
	Items      []*types.Source `json:"items"`
	NextCursor *string         `json:"next_cursor"`
}

type SourceService interface {
	Create(ctx context.Context, in SourceInput) (*types.Source, error)
	ListByPlace(ctx context.Context, placeID uuid.UUID, cursor string, limit int) (*SourcePage, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type sourceService struct {
	db         *gorm.DB
	log        *logger.Logger
	placeRepo  repos.PlaceRepo
	sourceRepo repos.SourceRepo
}

func NewSourceService(db *gorm.DB, log *logger.Logger, placeRepo repos.PlaceRepo, sourceRepo repos.SourceRepo) SourceService {
	return &sourceService{
		db:         db,
		log:        log.With("service", "SourceService"),
		placeRepo:  placeRepo,
		sourceRepo: sourceRepo,
	}
}

func (s *sourceService) Create(ctx context.Context, in SourceInput) (*types.Source, error) {
	kind := strings.ToUpper(strings.TrimSpace(in.Type))
	if kind == "" {
		kind = types.SourceURL
	}
	if !types.ValidSourceType(kind) {
		return nil, invalidArgument("unknown source type %q", in.Type)
	}
	if err := requirePlace(dbctx.New(ctx), s.placeRepo, in.PlaceID); err != nil {
		return nil, err
	}
	src, err := s.sourceRepo.Create(dbctx.New(ctx), &types.Source{
		PlaceID:    in.PlaceID,
		Type:       kind,
		URL:        in.URL,
		Title:      in.Title,
		Snippet:    in.Snippet,
		RawText:    in.RawText,
		CapturedAt: in.CapturedAt,
	})
	if err != nil {
		return nil, mapStoreError("create source", err)
	}
	return src, nil
}

func (s *sourceService) ListByPlace(ctx context.Context, placeID uuid.UUID, cursor string, limit int) (*SourcePage, error) {
	if placeID == uuid.Nil {
		return nil, invalidArgument("place_id is required")
	}
	if limit < 0 || limit > pagination.MaxLimit {
		return nil, invalidArgument("limit must be between 1 and %d", pagination.MaxLimit)
	}
	after, err := parseCursor(cursor)
	if err != nil {
		return nil, err
	}
	rows, next, err := s.sourceRepo.ListByPlace(dbctx.New(ctx), placeID, after, limit)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	page := &SourcePage{Items: rows}
	if page.Items == nil {
		page.Items = []*types.Source{}
	}
	if next != nil {
		enc := next.Encode()
		page.NextCursor = &enc
	}
	return page, nil
}

func (s *sourceService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.sourceRepo.Delete(dbctx.New(ctx), id)
	if err != nil {
		return fmt.Errorf("delete source: %w", err)
	}
	if !deleted {
		return notFound("source")
	}
	return nil
}
