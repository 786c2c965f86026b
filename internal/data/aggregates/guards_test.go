package aggregates

import (
	"context"
	"testing"

	"github.com/yungbote/blog-backend/internal/data/repos/testutil"
	domainagg "github.com/yungbote/blog-backend/internal/domain/aggregates"
	"github.com/yungbote/blog-backend/internal/platform/dbctx"
)

func TestRequireCASSuccess(t *testing.T) {
	if err := RequireCASSuccess(true, "ok"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	err := MapError("op", RequireCASSuccess(false, "stale"))
	if !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("expected conflict code, got=%v", err)
	}
}

func TestUpdateIfUnmodified(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	clock := testutil.NewClock()

	author := testutil.SeedUser(t, ctx, tx, "cas")
	post := testutil.SeedPost(t, ctx, tx, author.ID, "v1", clock.Now())
	guard := NewCASGuard(db)
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	stamp := clock.Now()
	ok, err := guard.UpdateIfUnmodified(dbc, "post", post.ID, post.UpdatedAt, map[string]any{"title": "v2", "updated_at": stamp})
	if err != nil || !ok {
		t.Fatalf("first CAS: want=true,nil got=%v,%v", ok, err)
	}
	ok, err = guard.UpdateIfUnmodified(dbc, "post", post.ID, post.UpdatedAt, map[string]any{"title": "v3", "updated_at": clock.Now()})
	if err != nil || ok {
		t.Fatalf("stale CAS: want=false,nil got=%v,%v", ok, err)
	}

	if _, err := (CASGuard{}).UpdateIfUnmodified(dbctx.Context{Ctx: ctx}, "post", post.ID, stamp, nil); !domainagg.IsCode(MapError("op", err), domainagg.CodeValidation) {
		t.Fatalf("missing db: expected validation error, got=%v", err)
	}
}
