package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	types "github.com/Gyu-bot/myspot/internal/domain"
	svcerr "github.com/Gyu-bot/myspot/internal/pkg/errors"
	"github.com/Gyu-bot/myspot/internal/pkg/pointers"
)

func TestNoteService_Lifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createPlace(t, PlaceInput{CanonicalName: "noted"})

	n, err := f.notes.Create(ctx, p.ID, " first ")
	require.NoError(t, err)
	assert.Equal(t, "first", n.Content)

	_, err = f.notes.Create(ctx, uuid.New(), "orphan")
	assert.ErrorIs(t, err, svcerr.ErrNotFound)
	_, err = f.notes.Create(ctx, p.ID, "  ")
	assert.ErrorIs(t, err, svcerr.ErrInvalidArgument)

	updated, err := f.notes.Update(ctx, n.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	notes, err := f.notes.ListByPlace(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)

	require.NoError(t, f.notes.Delete(ctx, n.ID))
	assert.ErrorIs(t, f.notes.Delete(ctx, n.ID), svcerr.ErrNotFound)
	_, err = f.notes.Update(ctx, n.ID, "again")
	assert.ErrorIs(t, err, svcerr.ErrNotFound)
}

func TestSourceService_CursorList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createPlace(t, PlaceInput{CanonicalName: "sourced"})

	for i := 0; i < 3; i++ {
		_, err := f.sources.Create(ctx, SourceInput{PlaceID: p.ID, URL: pointers.String("https://example.com")})
		require.NoError(t, err)
	}
	_, err := f.sources.Create(ctx, SourceInput{PlaceID: p.ID, Type: "VIDEO"})
	assert.ErrorIs(t, err, svcerr.ErrInvalidArgument)

	page, err := f.sources.ListByPlace(ctx, p.ID, "", 2)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, types.SourceURL, page.Items[0].Type)
	assert.NotNil(t, page.Items[0].CapturedAt)
	require.NotNil(t, page.NextCursor)

	rest, err := f.sources.ListByPlace(ctx, p.ID, *page.NextCursor, 2)
	require.NoError(t, err)
	assert.Len(t, rest.Items, 1)
	assert.Nil(t, rest.NextCursor)

	require.NoError(t, f.sources.Delete(ctx, rest.Items[0].ID))
	assert.ErrorIs(t, f.sources.Delete(ctx, rest.Items[0].ID), svcerr.ErrNotFound)
}

func TestVisitService_CreateAndList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createPlace(t, PlaceInput{CanonicalName: "visited"})

	_, err := f.visits.Create(ctx, VisitInput{PlaceID: p.ID, VisitedAt: "2025-03-01", Rating: pointers.Int(4)})
	require.NoError(t, err)
	_, err = f.visits.Create(ctx, VisitInput{PlaceID: p.ID, VisitedAt: "2025-04-12"})
	require.NoError(t, err)

	_, err = f.visits.Create(ctx, VisitInput{PlaceID: p.ID, VisitedAt: "12/04/2025"})
	assert.ErrorIs(t, err, svcerr.ErrInvalidArgument)
	_, err = f.visits.Create(ctx, VisitInput{PlaceID: p.ID, VisitedAt: "2025-04-12", Rating: pointers.Int(0)})
	assert.ErrorIs(t, err, svcerr.ErrInvalidArgument)

	visits, err := f.visits.ListByPlace(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, visits, 2)
	assert.Equal(t, "2025-04-12", visits[0].VisitedOn)
	assert.Equal(t, "2025-03-01", visits[1].VisitedOn)
}

func TestMediaService_DefaultsToImage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createPlace(t, PlaceInput{CanonicalName: "pictured"})

	m, err := f.media.Create(ctx, MediaInput{PlaceID: p.ID, StorageURL: "s3://bucket/a.jpg"})
	require.NoError(t, err)
	assert.Equal(t, types.MediaTypeImage, m.Type)

	_, err = f.media.Create(ctx, MediaInput{PlaceID: p.ID})
	assert.ErrorIs(t, err, svcerr.ErrInvalidArgument)

	list, err := f.media.ListByPlace(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, f.media.Delete(ctx, m.ID))
	assert.ErrorIs(t, f.media.Delete(ctx, m.ID), svcerr.ErrNotFound)
}

func TestHealthService_Check(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	status := f.health.Check(ctx)
	assert.Equal(t, HealthOK, status.Status)
	assert.Equal(t, "connected", status.DB)
	assert.Equal(t, "memory", status.Cache)

	sqlDB, err := f.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	status = f.health.Check(ctx)
	assert.Equal(t, HealthDegraded, status.Status)
	assert.NotEqual(t, "connected", status.DB)
}
