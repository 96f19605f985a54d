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
	"github.com/Gyu-bot/myspot/internal/platform/logger"
)

type MediaInput struct {
	PlaceID    uuid.UUID  `json:"place_id"`
	Type       string     `json:"type"`
	StorageURL string     `json:"storage_url"`
	Caption    *string    `json:"caption"`
	CapturedAt *time.Time `json:"captured_at"`
}

type MediaService interface {
	Create(ctx context.Context, in MediaInput) (*types.Media, error)
	ListByPlace(ctx context.Context, placeID uuid.UUID) ([]*types.Media, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type mediaService struct {
	db        *gorm.DB
	log       *logger.Logger
	placeRepo repos.PlaceRepo
	mediaRepo repos.MediaRepo
}

func NewMediaService(db *gorm.DB, log *logger.Logger, placeRepo repos.PlaceRepo, mediaRepo repos.MediaRepo) MediaService {
	return &mediaService{
		db:        db,
		log:       log.With("service", "MediaService"),
		placeRepo: placeRepo,
		mediaRepo: mediaRepo,
	}
}

func (s *mediaService) Create(ctx context.Context, in MediaInput) (*types.Media, error) {
	storageURL := strings.TrimSpace(in.StorageURL)
	if storageURL == "" {
		return nil, invalidArgument("storage_url is required")
	}
	if err := requirePlace(dbctx.New(ctx), s.placeRepo, in.PlaceID); err != nil {
		return nil, err
	}
	m, err := s.mediaRepo.Create(dbctx.New(ctx), &types.Media{
		PlaceID:    in.PlaceID,
		Type:       strings.ToLower(strings.TrimSpace(in.Type)),
		StorageURL: storageURL,
		Caption:    in.Caption,
		CapturedAt: in.CapturedAt,
	})
	if err != nil {
		return nil, mapStoreError("create media", err)
	}
	return m, nil
}

func (s *mediaService) ListByPlace(ctx context.Context, placeID uuid.UUID) ([]*types.Media, error) {
	if placeID == uuid.Nil {
		return nil, invalidArgument("place_id is required")
	}
	media, err := s.mediaRepo.ListByPlace(dbctx.New(ctx), placeID)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	if media == nil {
		media = []*types.Media{}
	}
	return media, nil
}

func (s *mediaService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.mediaRepo.Delete(dbctx.New(ctx), id)
	if err != nil {
		return fmt.Errorf("delete media: %w", err)
	}
	if !deleted {
		return notFound("media")
	}
	return nil
}
