package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Gyu-bot/myspot/internal/data/repos"
	types "github.com/Gyu-bot/myspot/internal/domain"
	"github.com/Gyu-bot/myspot/internal/modules/dedup"
	"github.com/Gyu-bot/myspot/internal/normalization"
	"github.com/Gyu-bot/myspot/internal/observability"
	"github.com/Gyu-bot/myspot/internal/pkg/dbctx"
	svcerr "github.com/Gyu-bot/myspot/internal/pkg/errors"
	"github.com/Gyu-bot/myspot/internal/pkg/geo"
	"github.com/Gyu-bot/myspot/internal/platform/ctxutil"
	"github.com/Gyu-bot/myspot/internal/platform/logger"
)

// DuplicateQuery describes a place that may already exist. Coordinates count
// only when both are set; a phone without digits counts as absent.
type DuplicateQuery struct {
	Name      string
	Lat       *float64
	Lng       *float64
	Phone     *string
	ExcludeID *uuid.UUID
}

type DedupService interface {
	FindDuplicates(ctx context.Context, q DuplicateQuery) ([]dedup.Candidate, error)
	FindDuplicatesOf(ctx context.Context, placeID uuid.UUID) ([]dedup.Candidate, error)
	MergePlaces(ctx context.Context, keepID, mergeID uuid.UUID) (*types.Place, error)
}

type dedupService struct {
	db        *gorm.DB
	log       *logger.Logger
	metrics   *observability.Metrics
	placeRepo repos.PlaceRepo
	mergeRepo repos.PlaceMergeRepo
	auditRepo repos.AuditLogRepo
}

func NewDedupService(
	db *gorm.DB,
	log *logger.Logger,
	metrics *observability.Metrics,
	placeRepo repos.PlaceRepo,
	mergeRepo repos.PlaceMergeRepo,
	auditRepo repos.AuditLogRepo,
) DedupService {
	return &dedupService{
		db:        db,
		log:       log.With("service", "DedupService"),
		metrics:   metrics,
		placeRepo: placeRepo,
		mergeRepo: mergeRepo,
		auditRepo: auditRepo,
	}
}

func (s *dedupService) FindDuplicates(ctx context.Context, q DuplicateQuery) ([]dedup.Candidate, error) {
	ctx, span := observability.Tracer().Start(ctx, "dedup.find_duplicates")
	defer span.End()

	out, err := s.findDuplicates(dbctx.New(ctx), q)
	s.metrics.ObserveDuplicateCheck(len(out), err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("dedup.candidates", len(out)))
	return out, nil
}

// findDuplicates treats every field as optional. A blank name normalizes to
// "" and only contributes zero similarity.
func (s *dedupService) findDuplicates(dbc dbctx.Context, q DuplicateQuery) ([]dedup.Candidate, error) {
	match := repos.DuplicateMatchQuery{
		NormalizedName: normalization.NormalizePlaceName(q.Name),
		ExcludeID:      q.ExcludeID,
		NameThreshold:  dedup.NameSimilarityThreshold,
		RadiusMeters:   dedup.RadiusMeters,
	}
	if q.Phone != nil {
		match.NormalizedPhone = normalization.NormalizePhone(*q.Phone)
	}
	if q.Lat != nil && q.Lng != nil {
		p := geo.Point{Lat: *q.Lat, Lng: *q.Lng}
		if !p.Valid() {
			return nil, invalidArgument("coordinates out of range: lat=%v lng=%v", p.Lat, p.Lng)
		}
		match.Point = &p
	}

	rows, err := s.placeRepo.FindDuplicateMatches(dbc, match)
	if err != nil {
		return nil, fmt.Errorf("select duplicate candidates: %w", err)
	}
	signals := make([]dedup.Signals, 0, len(rows))
	for _, row := range rows {
		signals = append(signals, dedup.Signals{
			PlaceID:        row.Place.ID,
			CanonicalName:  row.Place.CanonicalName,
			NameSimilarity: row.NameSimilarity,
			PhoneMatch:     row.PhoneMatch,
			WithinRadius:   row.WithinRadius,
		})
	}
	out := dedup.Rank(signals)
	s.log.Debug("Duplicate check",
		"normalized_name", match.NormalizedName,
		"matches", len(rows),
		"candidates", len(out),
	)
	return out, nil
}

// FindDuplicatesOf runs the duplicate check for a stored place against every
// other place.
func (s *dedupService) FindDuplicatesOf(ctx context.Context, placeID uuid.UUID) ([]dedup.Candidate, error) {
	place, err := s.placeRepo.GetByID(dbctx.New(ctx), placeID)
	if err != nil {
		return nil, fmt.Errorf("load place: %w", err)
	}
	if place == nil {
		return nil, notFound("place")
	}
	return s.FindDuplicates(ctx, DuplicateQuery{
		Name:      place.CanonicalName,
		Lat:       place.Lat,
		Lng:       place.Lng,
		Phone:     place.Phone,
		ExcludeID: &place.ID,
	})
}

type mergeAuditDetail struct {
	KeepID  uuid.UUID `json:"keep_id"`
	MergeID uuid.UUID `json:"merge_id"`
	*repos.MergeMoves
}

// MergePlaces folds mergeID into keepID: child rows move to keep, rows keep
// already has (shared tags, same provider) are dropped, mergeID is deleted
// and an audit entry is written. Everything happens in one transaction.
func (s *dedupService) MergePlaces(ctx context.Context, keepID, mergeID uuid.UUID) (*types.Place, error) {
	start := time.Now()
	ctx, span := observability.Tracer().Start(ctx, "dedup.merge_places", trace.WithAttributes(
		attribute.String("place.keep_id", keepID.String()),
		attribute.String("place.merge_id", mergeID.String()),
	))
	defer span.End()

	place, err := s.mergePlaces(ctx, keepID, mergeID)
	s.metrics.ObserveMerge(mergeOutcome(err), time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return place, nil
}

func (s *dedupService) mergePlaces(ctx context.Context, keepID, mergeID uuid.UUID) (*types.Place, error) {
	if keepID == mergeID {
		return nil, invalidArgument("cannot merge a place into itself")
	}

	var moves *repos.MergeMoves
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		locked, err := s.placeRepo.LockByIDs(dbc, []uuid.UUID{keepID, mergeID})
		if err != nil {
			return fmt.Errorf("lock places: %w", err)
		}
		if len(locked) < 2 {
			return notFound("place")
		}

		moves, err = s.mergeRepo.MoveChildren(dbc, keepID, mergeID)
		if err != nil {
			return err
		}

		deleted, err := s.placeRepo.Delete(dbc, mergeID)
		if err != nil {
			return fmt.Errorf("delete merged place: %w", err)
		}
		if !deleted {
			return notFound("place")
		}

		detail, err := json.Marshal(mergeAuditDetail{KeepID: keepID, MergeID: mergeID, MergeMoves: moves})
		if err != nil {
			return fmt.Errorf("encode audit detail: %w", err)
		}
		if _, err := s.auditRepo.Create(dbc, &types.AuditLog{
			Action:     types.AuditActionMerge,
			EntityType: types.AuditEntityPlace,
			EntityID:   &keepID,
			Detail:     datatypes.JSON(detail),
		}); err != nil {
			return fmt.Errorf("write audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Merged places", ctxutil.LogFields(ctx,
		"keep_id", keepID,
		"merge_id", mergeID,
		"moved", moves.Moved,
		"dropped_tags", len(moves.DroppedTagIDs),
		"dropped_providers", moves.DroppedProviders,
	)...)

	merged, err := s.placeRepo.GetDetail(dbctx.New(ctx), keepID)
	if err != nil {
		return nil, fmt.Errorf("reload merged place: %w", err)
	}
	if merged == nil {
		return nil, notFound("place")
	}
	return merged, nil
}

func mergeOutcome(err error) string {
	switch {
	case err == nil:
		return "merged"
	case errors.Is(err, svcerr.ErrInvalidArgument):
		return "invalid"
	case errors.Is(err, svcerr.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
