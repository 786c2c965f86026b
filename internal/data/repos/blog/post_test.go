package blog

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/blog-backend/internal/data/repos/testutil"
	types "github.com/yungbote/blog-backend/internal/domain"
	"github.com/yungbote/blog-backend/internal/platform/dbctx"
)

func TestPostRepoListOrdersNewestFirst(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	clock := testutil.NewClock()

	author := testutil.SeedUser(t, ctx, tx, "author")
	older := testutil.SeedPost(t, ctx, tx, author.ID, "older", clock.Now())
	same := clock.Now()
	tieA := testutil.SeedPost(t, ctx, tx, author.ID, "tie-a", same)
	tieB := testutil.SeedPost(t, ctx, tx, author.ID, "tie-b", same)

	repo := NewPostRepo(db, testutil.Logger(t))

	got, err := repo.List(dbc, 0, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	// tieB was created after tieA, so its v7 id sorts higher.
	want := []uuid.UUID{tieB.ID, tieA.ID, older.ID}
	if len(got) != len(want) {
		t.Fatalf("List: want=%d posts got=%d", len(want), len(got))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("List[%d]: want=%s got=%s", i, want[i], got[i].ID)
		}
	}

	page2, err := repo.List(dbc, 2, 2)
	if err != nil {
		t.Fatalf("List page 2: %v", err)
	}
	if len(page2) != 1 || page2[0].ID != older.ID {
		t.Fatalf("List page 2: unexpected %+v", page2)
	}

	count, err := repo.Count(dbc)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 3 {
		t.Fatalf("Count: want=3 got=%d", count)
	}
}

func TestPostRepoLockedReadsAndDelete(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	clock := testutil.NewClock()

	author := testutil.SeedUser(t, ctx, tx, "author")
	post := testutil.SeedPost(t, ctx, tx, author.ID, "title", clock.Now())
	repo := NewPostRepo(db, testutil.Logger(t))

	shared, err := repo.GetForShare(dbc, post.ID)
	if err != nil || shared == nil || shared.Title != "title" {
		t.Fatalf("GetForShare: got=%+v,%v", shared, err)
	}
	locked, err := repo.GetForUpdate(dbc, post.ID)
	if err != nil || locked == nil || locked.ID != post.ID {
		t.Fatalf("GetForUpdate: got=%+v,%v", locked, err)
	}

	n, err := repo.Delete(dbc, post.ID)
	if err != nil || n != 1 {
		t.Fatalf("Delete: want=1,nil got=%d,%v", n, err)
	}
	for name, get := range map[string]func(dbctx.Context, uuid.UUID) (*types.Post, error){
		"GetByID":      repo.GetByID,
		"GetForShare":  repo.GetForShare,
		"GetForUpdate": repo.GetForUpdate,
	} {
		missing, err := get(dbc, post.ID)
		if err != nil || missing != nil {
			t.Fatalf("%s after delete: want=nil,nil got=%+v,%v", name, missing, err)
		}
	}
}
