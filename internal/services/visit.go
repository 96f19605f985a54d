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

type VisitInput struct {
	PlaceID   uuid.UUID `json:"place_id"`
	VisitedAt string    `json:"visited_at"`
	Rating    *int      `json:"rating"`
	WithWhom  *string   `json:"with_whom"`
	Situation *string   `json:"situation"`
	Memo      *string   `json:"memo"`
	Revisit   *bool     `json:"revisit"`
}

type VisitService interface {
	Create(ctx context.Context, in VisitInput) (*types.Visit, error)
	ListByPlace(ctx context.Context, placeID uuid.UUID) ([]*types.Visit, error)
}

type visitService struct {
	db        *gorm.DB
	log       *logger.Logger
	placeRepo repos.PlaceRepo
	visitRepo repos.VisitRepo
}

func NewVisitService(db *gorm.DB, log *logger.Logger, placeRepo repos.PlaceRepo, visitRepo repos.VisitRepo) VisitService {
	return &visitService{
		db:        db,
		log:       log.With("service", "VisitService"),
		placeRepo: placeRepo,
		visitRepo: visitRepo,
	}
}

func (s *visitService) Create(ctx context.Context, in VisitInput) (*types.Visit, error) {
	day, err := time.Parse(types.DateLayout, strings.TrimSpace(in.VisitedAt))
	if err != nil {
		return nil, invalidArgument("visited_at must be a %s date", types.DateLayout)
	}
	if err := validateRating("rating", in.Rating); err != nil {
		return nil, err
	}
	if err := requirePlace(dbctx.New(ctx), s.placeRepo, in.PlaceID); err != nil {
		return nil, err
	}
	visit, err := s.visitRepo.Create(dbctx.New(ctx), &types.Visit{
		PlaceID:   in.PlaceID,
		VisitedAt: day,
		Rating:    in.Rating,
		WithWhom:  in.WithWhom,
		Situation: in.Situation,
		Memo:      in.Memo,
		Revisit:   in.Revisit,
	})
	if err != nil {
		return nil, mapStoreError("create visit", err)
	}
	return visit, nil
}

func (s *visitService) ListByPlace(ctx context.Context, placeID uuid.UUID) ([]*types.Visit, error) {
	if placeID == uuid.Nil {
		return nil, invalidArgument("place_id is required")
	}
	visits, err := s.visitRepo.ListByPlace(dbctx.New(ctx), placeID)
	if err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	if visits == nil {
		visits = []*types.Visit{}
	}
	return visits, nil
}
