package places

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Gyu-bot/myspot/internal/data/repos/testutil"
	types "github.com/Gyu-bot/myspot/internal/domain"
	"github.com/Gyu-bot/myspot/internal/pkg/dbctx"
)

func TestTagRepo_UpsertByNames(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewTagRepo(db, testutil.Logger(t))

	suffix := uuid.NewString()
	first, err := repo.UpsertByNames(dbc, []string{"brunch-" + suffix, "cafe-" + suffix})
	if err != nil || len(first) != 2 {
		t.Fatalf("UpsertByNames: err=%v len=%d", err, len(first))
	}
	second, err := repo.UpsertByNames(dbc, []string{"cafe-" + suffix, "date-" + suffix})
	if err != nil || len(second) != 2 {
		t.Fatalf("UpsertByNames again: err=%v len=%d", err, len(second))
	}
	if second[0].Name != "cafe-"+suffix || second[0].ID != first[1].ID {
		t.Fatalf("existing tag should be reused: %+v vs %+v", second[0], first[1])
	}
	if second[1].Type != types.TagTypeFreeform {
		t.Fatalf("new tag type: %q", second[1].Type)
	}

	_, err = repo.Create(dbc, &types.Tag{Name: "cafe-" + suffix})
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("Create duplicate: expected ErrDuplicatedKey, got %v", err)
	}
}
