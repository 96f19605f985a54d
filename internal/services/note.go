package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Gyu-bot/myspot/internal/data/repos"
	types "github.com/Gyu-bot/myspot/internal/domain"
	"github.com/Gyu-bot/myspot/internal/pkg/dbctx"
	"github.com/Gyu-bot/myspot/internal/platform/logger"
)

type NoteService interface {
	Create(ctx context.Context, placeID uuid.UUID, content string) (*types.Note, error)
	ListByPlace(ctx context.Context, placeID uuid.UUID) ([]*types.Note, error)
	Update(ctx context.Context, id uuid.UUID, content string) (*types.Note, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type noteService struct {
	db        *gorm.DB
	log       *logger.Logger
	placeRepo repos.PlaceRepo
	noteRepo  repos.NoteRepo
}

func NewNoteService(db *gorm.DB, log *logger.Logger, placeRepo repos.PlaceRepo, noteRepo repos.NoteRepo) NoteService {
	return &noteService{
		db:        db,
		log:       log.With("service", "NoteService"),
		placeRepo: placeRepo,
		noteRepo:  noteRepo,
	}
}

func (s *noteService) Create(ctx context.Context, placeID uuid.UUID, content string) (*types.Note, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalidArgument("content is required")
	}
	if err := requirePlace(dbctx.New(ctx), s.placeRepo, placeID); err != nil {
		return nil, err
	}
	created, err := s.noteRepo.Create(dbctx.New(ctx), []*types.Note{{PlaceID: placeID, Content: content}})
	if err != nil {
		return nil, mapStoreError("create note", err)
	}
	return created[0], nil
}

func (s *noteService) ListByPlace(ctx context.Context, placeID uuid.UUID) ([]*types.Note, error) {
	if placeID == uuid.Nil {
		return nil, invalidArgument("place_id is required")
	}
	notes, err := s.noteRepo.ListByPlace(dbctx.New(ctx), placeID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	if notes == nil {
		notes = []*types.Note{}
	}
	return notes, nil
}

func (s *noteService) Update(ctx context.Context, id uuid.UUID, content string) (*types.Note, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalidArgument("content is required")
	}
	dbc := dbctx.New(ctx)
	updated, err := s.noteRepo.UpdateContent(dbc, id, content)
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	if !updated {
		return nil, notFound("note")
	}
	note, err := s.noteRepo.GetByID(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("load note: %w", err)
	}
	if note == nil {
		return nil, notFound("note")
	}
	return note, nil
}

func (s *noteService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.noteRepo.Delete(dbctx.New(ctx), id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if !deleted {
		return notFound("note")
	}
	return nil
}

// requirePlace returns a not-found error unless the place exists.
func requirePlace(dbc dbctx.Context, placeRepo repos.PlaceRepo, placeID uuid.UUID) error {
	if placeID == uuid.Nil {
		return invalidArgument("place_id is required")
	}
	place, err := placeRepo.GetByID(dbc, placeID)
	if err != nil {
		return fmt.Errorf("load place: %w", err)
	}
	if place == nil {
		return notFound("place")
	}
	return nil
}
