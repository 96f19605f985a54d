package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Gyu-bot/myspot/internal/modules/dedup"
	svcerr "github.com/Gyu-bot/myspot/internal/pkg/errors"
	"github.com/Gyu-bot/myspot/internal/pkg/pointers"
)

func findCandidate(cands []dedup.Candidate, id uuid.UUID) (dedup.Candidate, bool) {
	for _, c := range cands {
		if c.PlaceID == id {
			return c, true
		}
	}
	return dedup.Candidate{}, false
}

func TestFindDuplicates_NameVariantIsStrongCandidate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	place := f.createPlace(t, PlaceInput{CanonicalName: "중복테스트카페"})

	cands, err := f.dedup.FindDuplicates(ctx, DuplicateQuery{Name: "중복 테스트 카페"})
	require.NoError(t, err)

	c, ok := findCandidate(cands, place.ID)
	require.True(t, ok, "expected %s among %+v", place.ID, cands)
	assert.Equal(t, "중복테스트카페", c.CanonicalName)
	assert.GreaterOrEqual(t, c.Score, dedup.MinScore)
	assert.Equal(t, []string{"name_similarity=1.00", dedup.ReasonHighNameSimilarity}, c.Reasons)
}

func TestFindDuplicates_PhoneOnlyMatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	place := f.createPlace(t, PlaceInput{CanonicalName: "전화중복테스트", Phone: pointers.String("010-9999-0000")})

	cands, err := f.dedup.FindDuplicates(ctx, DuplicateQuery{Name: "다른이름", Phone: pointers.String("01099990000")})
	require.NoError(t, err)

	c, ok := findCandidate(cands, place.ID)
	require.True(t, ok)
	assert.Equal(t, []string{dedup.ReasonPhoneMatch}, c.Reasons)
	assert.Equal(t, 0.4, c.Score)
}

func TestFindDuplicates_ProximityAloneIsDropped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createPlace(t, PlaceInput{CanonicalName: "성수동빵집", Lat: pointers.Float64(37.5445), Lng: pointers.Float64(127.0557)})

	cands, err := f.dedup.FindDuplicates(ctx, DuplicateQuery{
		Name: "전혀다른국밥",
		Lat:  pointers.Float64(37.5445),
		Lng:  pointers.Float64(127.0558),
	})
	require.NoError(t, err)
	assert.Empty(t, cands)
}

func TestFindDuplicates_AllSignalsScoreAboveOne(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	place := f.createPlace(t, PlaceInput{
		CanonicalName: "Blue Bottle Seongsu",
		Phone:         pointers.String("02-1234-5678"),
		Lat:           pointers.Float64(37.5478),
		Lng:           pointers.Float64(127.0453),
	})

	cands, err := f.dedup.FindDuplicates(ctx, DuplicateQuery{
		Name:  "blue bottle seongsu!",
		Phone: pointers.String("+82 2 1234 5678"),
		Lat:   pointers.Float64(37.5479),
		Lng:   pointers.Float64(127.0453),
	})
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, place.ID, cands[0].PlaceID)
	assert.Equal(t, 1.4, cands[0].Score)
	assert.Equal(t, []string{
		"name_similarity=1.00",
		dedup.ReasonHighNameSimilarity,
		dedup.ReasonPhoneMatch,
		dedup.ReasonWithinRadius,
	}, cands[0].Reasons)
}

func TestFindDuplicates_SortedByScore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	nameOnly := f.createPlace(t, PlaceInput{CanonicalName: "블루보틀성수"})
	withPhone := f.createPlace(t, PlaceInput{CanonicalName: "블루보틀성수", Phone: pointers.String("010-1111-2222")})

	cands, err := f.dedup.FindDuplicates(ctx, DuplicateQuery{Name: "블루보틀 성수", Phone: pointers.String("01011112222")})
	require.NoError(t, err)
	require.Len(t, cands, 2)
	assert.Equal(t, withPhone.ID, cands[0].PlaceID)
	assert.Equal(t, 1.1, cands[0].Score)
	assert.Equal(t, nameOnly.ID, cands[1].PlaceID)
	assert.Equal(t, 0.7, cands[1].Score)
}

func TestFindDuplicatesOf_ExcludesThePlaceItself(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.createPlace(t, PlaceInput{CanonicalName: "을지로 노가리"})
	b := f.createPlace(t, PlaceInput{CanonicalName: "을지로노가리"})

	cands, err := f.dedup.FindDuplicatesOf(ctx, a.ID)
	require.NoError(t, err)
	_, self := findCandidate(cands, a.ID)
	assert.False(t, self)
	_, other := findCandidate(cands, b.ID)
	assert.True(t, other)

	_, err = f.dedup.FindDuplicatesOf(ctx, uuid.New())
	assert.ErrorIs(t, err, svcerr.ErrNotFound)
}

func TestFindDuplicates_BlankNameStillMatchesPhone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	place := f.createPlace(t, PlaceInput{CanonicalName: "이름없는조회", Phone: pointers.String("010-9999-0000")})

	cands, err := f.dedup.FindDuplicates(ctx, DuplicateQuery{Name: "  ", Phone: pointers.String("01099990000")})
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, place.ID, cands[0].PlaceID)
	assert.Equal(t, []string{dedup.ReasonPhoneMatch}, cands[0].Reasons)

	cands, err = f.dedup.FindDuplicates(ctx, DuplicateQuery{})
	require.NoError(t, err)
	assert.Empty(t, cands)
}

func TestFindDuplicates_RejectsBadCoordinates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.dedup.FindDuplicates(ctx, DuplicateQuery{Name: "x", Lat: pointers.Float64(91), Lng: pointers.Float64(0)})
	assert.ErrorIs(t, err, svcerr.ErrInvalidArgument)
}

func TestMergePlaces_MovesNotesAndDeletesMergedPlace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	keep := f.createPlace(t, PlaceInput{CanonicalName: "merge-keep"})
	merge := f.createPlace(t, PlaceInput{CanonicalName: "merge-src", Notes: []string{"merge-note"}})

	merged, err := f.dedup.MergePlaces(ctx, keep.ID, merge.ID)
	require.NoError(t, err)
	assert.Equal(t, keep.ID, merged.ID)
	require.Len(t, merged.Notes, 1)
	assert.Equal(t, "merge-note", merged.Notes[0].Content)
	assert.Equal(t, keep.ID, merged.Notes[0].PlaceID)

	_, err = f.places.Get(ctx, merge.ID)
	assert.ErrorIs(t, err, svcerr.ErrNotFound)

	logs, err := f.audit.List(ctx, &keep.ID, 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "merge", logs[0].Action)
	assert.Equal(t, "place", logs[0].EntityType)

	var detail struct {
		KeepID  uuid.UUID        `json:"keep_id"`
		MergeID uuid.UUID        `json:"merge_id"`
		Moved   map[string]int64 `json:"moved"`
	}
	require.NoError(t, json.Unmarshal(logs[0].Detail, &detail))
	assert.Equal(t, keep.ID, detail.KeepID)
	assert.Equal(t, merge.ID, detail.MergeID)
	assert.Equal(t, int64(1), detail.Moved["notes"])
}

func TestMergePlaces_SameIDIsRejectedWithoutChanges(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createPlace(t, PlaceInput{CanonicalName: "self", Notes: []string{"stay"}})

	_, err := f.dedup.MergePlaces(ctx, p.ID, p.ID)
	require.ErrorIs(t, err, svcerr.ErrInvalidArgument)

	got, err := f.places.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, got.Notes, 1)
	logs, err := f.audit.List(ctx, nil, 0)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestMergePlaces_MissingPlaceRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	keep := f.createPlace(t, PlaceInput{CanonicalName: "lonely", Notes: []string{"n"}})

	_, err := f.dedup.MergePlaces(ctx, keep.ID, uuid.New())
	require.ErrorIs(t, err, svcerr.ErrNotFound)

	_, err = f.dedup.MergePlaces(ctx, uuid.New(), keep.ID)
	require.ErrorIs(t, err, svcerr.ErrNotFound)

	got, err := f.places.Get(ctx, keep.ID)
	require.NoError(t, err)
	assert.Len(t, got.Notes, 1)
	logs, err := f.audit.List(ctx, nil, 0)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestMergePlaces_LateStoreFailureRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	keep := f.createPlace(t, PlaceInput{CanonicalName: "rollback-keep"})
	merge := f.createPlace(t, PlaceInput{
		CanonicalName: "rollback-merge",
		Tags:          []string{"late-failure"},
		Notes:         []string{"should stay"},
	})

	// Fail the audit insert, the last write of the merge transaction.
	require.NoError(t, f.db.Callback().Create().Before("gorm:create").
		Register("test:fail_audit_insert", func(tx *gorm.DB) {
			if tx.Statement.Table == "audit_logs" {
				_ = tx.AddError(errors.New("audit store down"))
			}
		}))

	_, err := f.dedup.MergePlaces(ctx, keep.ID, merge.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "audit store down")

	kept, err := f.places.Get(ctx, merge.ID)
	require.NoError(t, err)
	assert.Len(t, kept.Notes, 1)
	assert.Equal(t, []string{"late-failure"}, tagNames(kept))

	untouched, err := f.places.Get(ctx, keep.ID)
	require.NoError(t, err)
	assert.Empty(t, untouched.Notes)
	assert.Empty(t, untouched.Tags)

	logs, err := f.audit.List(ctx, &keep.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestMergePlaces_SharedTagCollapses(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	keep := f.createPlace(t, PlaceInput{CanonicalName: "keep", Tags: []string{"cafe", "brunch"}})
	merge := f.createPlace(t, PlaceInput{CanonicalName: "merge", Tags: []string{"cafe", "quiet"}})

	merged, err := f.dedup.MergePlaces(ctx, keep.ID, merge.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"brunch", "cafe", "quiet"}, tagNames(merged))
}

func TestMergePlaces_KeepSideProviderLinkWins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	keep := f.createPlace(t, PlaceInput{
		CanonicalName: "keep",
		ProviderLinks: []ProviderLinkInput{{Provider: "NAVER", ProviderPlaceID: pointers.String("keep-naver")}},
	})
	merge := f.createPlace(t, PlaceInput{
		CanonicalName: "merge",
		ProviderLinks: []ProviderLinkInput{
			{Provider: "naver", ProviderPlaceID: pointers.String("merge-naver")},
			{Provider: "KAKAO", ProviderPlaceID: pointers.String("merge-kakao")},
		},
	})

	merged, err := f.dedup.MergePlaces(ctx, keep.ID, merge.ID)
	require.NoError(t, err)
	require.Len(t, merged.ProviderLinks, 2)
	assert.Equal(t, "KAKAO", merged.ProviderLinks[0].Provider)
	assert.Equal(t, "NAVER", merged.ProviderLinks[1].Provider)
	assert.Equal(t, "keep-naver", *merged.ProviderLinks[1].ProviderPlaceID)

	logs, err := f.audit.List(ctx, &keep.ID, 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	var detail struct {
		DroppedProviders []string `json:"dropped_providers"`
	}
	require.NoError(t, json.Unmarshal(logs[0].Detail, &detail))
	assert.Equal(t, []string{"NAVER"}, detail.DroppedProviders)
}
