package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Gyu-bot/myspot/internal/data/repos"
	types "github.com/Gyu-bot/myspot/internal/domain"
	"github.com/Gyu-bot/myspot/internal/modules/dedup"
	"github.com/Gyu-bot/myspot/internal/normalization"
	"github.com/Gyu-bot/myspot/internal/pkg/dbctx"
	svcerr "github.com/Gyu-bot/myspot/internal/pkg/errors"
	"github.com/Gyu-bot/myspot/internal/pkg/geo"
	"github.com/Gyu-bot/myspot/internal/pkg/pagination"
	"github.com/Gyu-bot/myspot/internal/platform/ctxutil"
	"github.com/Gyu-bot/myspot/internal/platform/logger"
)

type ProviderLinkInput struct {
	Provider        string  `json:"provider" yaml:"provider"`
	ProviderPlaceID *string `json:"provider_place_id" yaml:"provider_place_id"`
	ProviderURL     *string `json:"provider_url" yaml:"provider_url"`
}

// PlaceInput is a new place as supplied by a client. Normalized fields are
// always derived, never accepted.
type PlaceInput struct {
	CanonicalName     string              `json:"canonical_name" yaml:"canonical_name"`
	AddressRoad       *string             `json:"address_road" yaml:"address_road"`
	AddressJibun      *string             `json:"address_jibun" yaml:"address_jibun"`
	RegionDepth1      *string             `json:"region_depth1" yaml:"region_depth1"`
	RegionDepth2      *string             `json:"region_depth2" yaml:"region_depth2"`
	RegionDepth3      *string             `json:"region_depth3" yaml:"region_depth3"`
	Lat               *float64            `json:"lat" yaml:"lat"`
	Lng               *float64            `json:"lng" yaml:"lng"`
	Phone             *string             `json:"phone" yaml:"phone"`
	CategoryPrimary   *string             `json:"category_primary" yaml:"category_primary"`
	CategorySecondary *string             `json:"category_secondary" yaml:"category_secondary"`
	Parking           *bool               `json:"parking" yaml:"parking"`
	Reservation       *string             `json:"reservation" yaml:"reservation"`
	PriceRange        *string             `json:"price_range" yaml:"price_range"`
	Mood              []string            `json:"mood" yaml:"mood"`
	Companions        []string            `json:"companions" yaml:"companions"`
	Situations        []string            `json:"situations" yaml:"situations"`
	IsFavorite        bool                `json:"is_favorite" yaml:"is_favorite"`
	UserRating        *int                `json:"user_rating" yaml:"user_rating"`
	Tags              []string            `json:"tags" yaml:"tags"`
	Notes             []string            `json:"notes" yaml:"notes"`
	ProviderLinks     []ProviderLinkInput `json:"provider_links" yaml:"provider_links"`
}

// PlacePatch changes only the fields that are set. Tags, when set, replace
// the whole tag set. Lat and Lng must be set together.
type PlacePatch struct {
	CanonicalName     *string   `json:"canonical_name"`
	AddressRoad       *string   `json:"address_road"`
	AddressJibun      *string   `json:"address_jibun"`
	RegionDepth1      *string   `json:"region_depth1"`
	RegionDepth2      *string   `json:"region_depth2"`
	RegionDepth3      *string   `json:"region_depth3"`
	Lat               *float64  `json:"lat"`
	Lng               *float64  `json:"lng"`
	Phone             *string   `json:"phone"`
	CategoryPrimary   *string   `json:"category_primary"`
	CategorySecondary *string   `json:"category_secondary"`
	Parking           *bool     `json:"parking"`
	Reservation       *string   `json:"reservation"`
	PriceRange        *string   `json:"price_range"`
	Mood              *[]string `json:"mood"`
	Companions        *[]string `json:"companions"`
	Situations        *[]string `json:"situations"`
	IsFavorite        *bool     `json:"is_favorite"`
	UserRating        *int      `json:"user_rating"`
	Tags              *[]string `json:"tags"`
}

type PlaceListParams struct {
	Cursor          string
	Limit           int
	CategoryPrimary *string
	IsFavorite      *bool
}

type PlacePage struct {
	Items      []*types.Place `json:"items"`
	NextCursor *string        `json:"next_cursor"`
	Total      int64          `json:"total"`
}

type PlaceService interface {
	Create(ctx context.Context, in PlaceInput) (*types.Place, []dedup.Candidate, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Place, error)
	List(ctx context.Context, params PlaceListParams) (*PlacePage, error)
	Update(ctx context.Context, id uuid.UUID, patch PlacePatch) (*types.Place, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type placeService struct {
	db               *gorm.DB
	log              *logger.Logger
	dedup            DedupService
	tags             TagService
	placeRepo        repos.PlaceRepo
	placeTagRepo     repos.PlaceTagRepo
	noteRepo         repos.NoteRepo
	providerLinkRepo repos.ProviderLinkRepo
}

func NewPlaceService(
	db *gorm.DB,
	log *logger.Logger,
	dedupService DedupService,
	tagService TagService,
	placeRepo repos.PlaceRepo,
	placeTagRepo repos.PlaceTagRepo,
	noteRepo repos.NoteRepo,
	providerLinkRepo repos.ProviderLinkRepo,
) PlaceService {
	return &placeService{
		db:               db,
		log:              log.With("service", "PlaceService"),
		dedup:            dedupService,
		tags:             tagService,
		placeRepo:        placeRepo,
		placeTagRepo:     placeTagRepo,
		noteRepo:         noteRepo,
		providerLinkRepo: providerLinkRepo,
	}
}

// Create scores duplicates against the existing places first, then stores
// the place with its tags, notes and provider links. The candidates never
// include the new place.
func (s *placeService) Create(ctx context.Context, in PlaceInput) (*types.Place, []dedup.Candidate, error) {
	if err := validatePlaceInput(in); err != nil {
		return nil, nil, err
	}

	candidates, err := s.dedup.FindDuplicates(ctx, DuplicateQuery{
		Name:  in.CanonicalName,
		Lat:   in.Lat,
		Lng:   in.Lng,
		Phone: in.Phone,
	})
	if err != nil {
		return nil, nil, err
	}

	place := &types.Place{
		CanonicalName:     strings.TrimSpace(in.CanonicalName),
		AddressRoad:       in.AddressRoad,
		AddressJibun:      in.AddressJibun,
		RegionDepth1:      in.RegionDepth1,
		RegionDepth2:      in.RegionDepth2,
		RegionDepth3:      in.RegionDepth3,
		Lat:               in.Lat,
		Lng:               in.Lng,
		Phone:             in.Phone,
		CategoryPrimary:   in.CategoryPrimary,
		CategorySecondary: in.CategorySecondary,
		Parking:           in.Parking,
		Reservation:       in.Reservation,
		PriceRange:        in.PriceRange,
		Mood:              jsonSlice(in.Mood),
		Companions:        jsonSlice(in.Companions),
		Situations:        jsonSlice(in.Situations),
		IsFavorite:        in.IsFavorite,
		UserRating:        in.UserRating,
	}
	tagNames := normalization.CleanTagNames(in.Tags)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if _, err := s.placeRepo.Create(dbc, place); err != nil {
			return mapStoreError("create place", err)
		}
		if err := s.attachTags(dbc, place.ID, tagNames, false); err != nil {
			return err
		}

		notes := make([]*types.Note, 0, len(in.Notes))
		for _, n := range in.Notes {
			if n = strings.TrimSpace(n); n != "" {
				notes = append(notes, &types.Note{PlaceID: place.ID, Content: n})
			}
		}
		if _, err := s.noteRepo.Create(dbc, notes); err != nil {
			return mapStoreError("create notes", err)
		}

		links := make([]*types.ProviderLink, 0, len(in.ProviderLinks))
		for _, l := range in.ProviderLinks {
			links = append(links, &types.ProviderLink{
				PlaceID:         place.ID,
				Provider:        strings.ToUpper(strings.TrimSpace(l.Provider)),
				ProviderPlaceID: l.ProviderPlaceID,
				ProviderURL:     l.ProviderURL,
			})
		}
		if _, err := s.providerLinkRepo.Create(dbc, links); err != nil {
			return mapStoreError("create provider links", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	if len(tagNames) > 0 {
		s.tags.InvalidateCache(ctx)
	}

	s.log.Info("Created place", ctxutil.LogFields(ctx, "place_id", place.ID, "duplicate_candidates", len(candidates))...)
	created, err := s.Get(ctx, place.ID)
	if err != nil {
		return nil, nil, err
	}
	return created, candidates, nil
}

func (s *placeService) Get(ctx context.Context, id uuid.UUID) (*types.Place, error) {
	place, err := s.placeRepo.GetDetail(dbctx.New(ctx), id)
	if err != nil {
		return nil, fmt.Errorf("load place: %w", err)
	}
	if place == nil {
		return nil, notFound("place")
	}
	return place, nil
}

func (s *placeService) List(ctx context.Context, params PlaceListParams) (*PlacePage, error) {
	cursor, err := parseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if params.Limit < 0 || params.Limit > pagination.MaxLimit {
		return nil, invalidArgument("limit must be between 1 and %d", pagination.MaxLimit)
	}
	rows, next, total, err := s.placeRepo.List(dbctx.New(ctx), repos.PlaceListFilter{
		Cursor:          cursor,
		Limit:           params.Limit,
		CategoryPrimary: params.CategoryPrimary,
		IsFavorite:      params.IsFavorite,
	})
	if err != nil {
		return nil, fmt.Errorf("list places: %w", err)
	}
	page := &PlacePage{Items: rows, Total: total}
	if page.Items == nil {
		page.Items = []*types.Place{}
	}
	if next != nil {
		enc := next.Encode()
		page.NextCursor = &enc
	}
	return page, nil
}

func (s *placeService) Update(ctx context.Context, id uuid.UUID, patch PlacePatch) (*types.Place, error) {
	if err := validatePlacePatch(patch); err != nil {
		return nil, err
	}
	var tagNames []string
	if patch.Tags != nil {
		tagNames = normalization.CleanTagNames(*patch.Tags)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		place, err := s.placeRepo.GetByID(dbc, id)
		if err != nil {
			return fmt.Errorf("load place: %w", err)
		}
		if place == nil {
			return notFound("place")
		}
		applyPlacePatch(place, patch)
		if err := s.placeRepo.Save(dbc, place); err != nil {
			return mapStoreError("save place", err)
		}
		if patch.Tags != nil {
			return s.attachTags(dbc, place.ID, tagNames, true)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(tagNames) > 0 {
		s.tags.InvalidateCache(ctx)
	}
	return s.Get(ctx, id)
}

func (s *placeService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.placeRepo.Delete(dbctx.New(ctx), id)
	if err != nil {
		return fmt.Errorf("delete place: %w", err)
	}
	if !deleted {
		return notFound("place")
	}
	s.log.Info("Deleted place", ctxutil.LogFields(ctx, "place_id", id)...)
	return nil
}

// attachTags upserts names and links them to the place. With replace set the
// place ends up with exactly these tags.
func (s *placeService) attachTags(dbc dbctx.Context, placeID uuid.UUID, names []string, replace bool) error {
	tags, err := s.tags.Resolve(dbc, names)
	if err != nil {
		return err
	}
	ids := make([]uuid.UUID, 0, len(tags))
	for _, t := range tags {
		ids = append(ids, t.ID)
	}
	if replace {
		err = s.placeTagRepo.Replace(dbc, placeID, ids)
	} else {
		err = s.placeTagRepo.Attach(dbc, placeID, ids)
	}
	if err != nil {
		return mapStoreError("link tags", err)
	}
	return nil
}

func applyPlacePatch(p *types.Place, patch PlacePatch) {
	if patch.CanonicalName != nil {
		p.CanonicalName = strings.TrimSpace(*patch.CanonicalName)
	}
	setIfPresent(&p.AddressRoad, patch.AddressRoad)
	setIfPresent(&p.AddressJibun, patch.AddressJibun)
	setIfPresent(&p.RegionDepth1, patch.RegionDepth1)
	setIfPresent(&p.RegionDepth2, patch.RegionDepth2)
	setIfPresent(&p.RegionDepth3, patch.RegionDepth3)
	if patch.Lat != nil && patch.Lng != nil {
		p.Lat, p.Lng = patch.Lat, patch.Lng
	}
	setIfPresent(&p.Phone, patch.Phone)
	setIfPresent(&p.CategoryPrimary, patch.CategoryPrimary)
	setIfPresent(&p.CategorySecondary, patch.CategorySecondary)
	setIfPresent(&p.Parking, patch.Parking)
	setIfPresent(&p.Reservation, patch.Reservation)
	setIfPresent(&p.PriceRange, patch.PriceRange)
	if patch.Mood != nil {
		p.Mood = jsonSlice(*patch.Mood)
	}
	if patch.Companions != nil {
		p.Companions = jsonSlice(*patch.Companions)
	}
	if patch.Situations != nil {
		p.Situations = jsonSlice(*patch.Situations)
	}
	if patch.IsFavorite != nil {
		p.IsFavorite = *patch.IsFavorite
	}
	setIfPresent(&p.UserRating, patch.UserRating)
}

func setIfPresent[T any](dst **T, v *T) {
	if v != nil {
		*dst = v
	}
}

func jsonSlice(v []string) datatypes.JSONSlice[string] {
	if v == nil {
		return nil
	}
	return datatypes.JSONSlice[string](v)
}

func validatePlaceInput(in PlaceInput) error {
	if strings.TrimSpace(in.CanonicalName) == "" {
		return invalidArgument("canonical_name is required")
	}
	if err := validateCoordinates(in.Lat, in.Lng); err != nil {
		return err
	}
	if err := validatePlaceEnums(in.Reservation, in.PriceRange, in.UserRating); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(in.ProviderLinks))
	for _, l := range in.ProviderLinks {
		p := strings.ToUpper(strings.TrimSpace(l.Provider))
		if !types.ValidProvider(p) {
			return invalidArgument("unknown provider %q", l.Provider)
		}
		if _, dup := seen[p]; dup {
			return invalidArgument("provider %s given twice", p)
		}
		seen[p] = struct{}{}
	}
	return nil
}

func validatePlacePatch(patch PlacePatch) error {
	if patch.CanonicalName != nil && strings.TrimSpace(*patch.CanonicalName) == "" {
		return invalidArgument("canonical_name cannot be blank")
	}
	if err := validateCoordinates(patch.Lat, patch.Lng); err != nil {
		return err
	}
	return validatePlaceEnums(patch.Reservation, patch.PriceRange, patch.UserRating)
}

func validateCoordinates(lat, lng *float64) error {
	if (lat == nil) != (lng == nil) {
		return invalidArgument("lat and lng must be given together")
	}
	if lat != nil && !(geo.Point{Lat: *lat, Lng: *lng}).Valid() {
		return invalidArgument("coordinates out of range: lat=%v lng=%v", *lat, *lng)
	}
	return nil
}

func validatePlaceEnums(reservation, priceRange *string, rating *int) error {
	if reservation != nil && !types.ValidReservation(*reservation) {
		return invalidArgument("unknown reservation %q", *reservation)
	}
	if priceRange != nil && !types.ValidPriceRange(*priceRange) {
		return invalidArgument("unknown price_range %q", *priceRange)
	}
	return validateRating("user_rating", rating)
}

func validateRating(field string, rating *int) error {
	if rating != nil && (*rating < 1 || *rating > 5) {
		return invalidArgument("%s must be between 1 and 5", field)
	}
	return nil
}

func parseCursor(raw string) (*pagination.Cursor, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	c, err := pagination.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", svcerr.ErrInvalidArgument, err)
	}
	return &c, nil
}
