package aggregates_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/blog-backend/internal/data/aggregates"
	aggtest "github.com/yungbote/blog-backend/internal/data/aggregates/testutil"
	"github.com/yungbote/blog-backend/internal/data/repos"
	repotest "github.com/yungbote/blog-backend/internal/data/repos/testutil"
	domainagg "github.com/yungbote/blog-backend/internal/domain/aggregates"
	"github.com/yungbote/blog-backend/internal/platform/dbctx"
)

type engagementFixture struct {
	db    *gorm.DB
	agg   domainagg.EngagementAggregate
	hooks *aggtest.HooksRecorder
	clock *repotest.Clock
	likes repos.LikeRepo
}

func newEngagementFixture(t *testing.T) engagementFixture {
	t.Helper()
	db := repotest.DB(t)
	log := repotest.Logger(t)
	hooks := &aggtest.HooksRecorder{}
	clock := repotest.NewClock()
	likes := repos.NewLikeRepo(db, log)
	agg := aggregates.NewEngagementAggregate(aggregates.EngagementAggregateDeps{
		Base: aggregates.BaseDeps{
			DB:    db,
			Log:   log,
			Hooks: hooks,
			Now:   clock.Now,
		},
		Posts:    repos.NewPostRepo(db, log),
		Comments: repos.NewCommentRepo(db, log),
		Likes:    likes,
	})
	return engagementFixture{db: db, agg: agg, hooks: hooks, clock: clock, likes: likes}
}

func TestToggleLikeIsIdempotent(t *testing.T) {
	f := newEngagementFixture(t)
	ctx := context.Background()
	u := repotest.SeedUser(t, ctx, f.db, "liker")
	post := repotest.SeedPost(t, ctx, f.db, u.ID, "p", f.clock.Now())

	first, err := f.agg.ToggleLike(ctx, u.ID, post.ID)
	if err != nil {
		t.Fatalf("first like: %v", err)
	}
	if !first.Created {
		t.Fatalf("first like: want created=true")
	}
	for i := 0; i < 3; i++ {
		again, err := f.agg.ToggleLike(ctx, u.ID, post.ID)
		if err != nil {
			t.Fatalf("repeat like %d: %v", i, err)
		}
		if again.Created {
			t.Fatalf("repeat like %d: want created=false", i)
		}
	}

	counts, err := f.likes.CountByPostIDs(dbctx.New(ctx), []uuid.UUID{post.ID})
	if err != nil {
		t.Fatalf("CountByPostIDs: %v", err)
	}
	if counts[post.ID] != 1 {
		t.Fatalf("likes count: want=1 got=%d", counts[post.ID])
	}
	if got := f.hooks.Statuses("Blog.Engagement.ToggleLike"); len(got) != 4 || got[0] != "success" || got[3] != "success" {
		t.Fatalf("hook statuses: %+v", got)
	}
}

func TestToggleLikeConcurrentCallersCreateOnce(t *testing.T) {
	f := newEngagementFixture(t)
	ctx := context.Background()
	u := repotest.SeedUser(t, ctx, f.db, "racer")
	post := repotest.SeedPost(t, ctx, f.db, u.ID, "p", f.clock.Peek())

	const callers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		errs    []error
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := f.agg.ToggleLike(ctx, u.ID, post.ID)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			if res.Created {
				created++
			}
		}()
	}
	wg.Wait()

	if len(errs) != 0 {
		t.Fatalf("concurrent likes returned errors: %v", errs)
	}
	if created != 1 {
		t.Fatalf("created results: want=1 got=%d", created)
	}
}

func TestToggleLikeUnknownPost(t *testing.T) {
	f := newEngagementFixture(t)
	ctx := context.Background()
	u := repotest.SeedUser(t, ctx, f.db, "liker")

	_, err := f.agg.ToggleLike(ctx, u.ID, uuid.New())
	if !domainagg.IsCode(err, domainagg.CodeNotFound) || domainagg.SubjectOf(err) != domainagg.SubjectPost {
		t.Fatalf("unknown post: want not_found/post got=%v", err)
	}
	if _, err := f.agg.ToggleLike(ctx, uuid.Nil, uuid.New()); !domainagg.IsCode(err, domainagg.CodeUnauthenticated) {
		t.Fatalf("nil user: want unauthenticated got=%v", err)
	}
}

func TestRemoveLikeIsStrict(t *testing.T) {
	f := newEngagementFixture(t)
	ctx := context.Background()
	u := repotest.SeedUser(t, ctx, f.db, "liker")
	post := repotest.SeedPost(t, ctx, f.db, u.ID, "p", f.clock.Now())

	_, err := f.agg.RemoveLike(ctx, u.ID, post.ID)
	if !domainagg.IsCode(err, domainagg.CodeNotFound) || domainagg.SubjectOf(err) != domainagg.SubjectNotLiked {
		t.Fatalf("unlike without like: want not_found/not-liked got=%v", err)
	}

	if _, err := f.agg.ToggleLike(ctx, u.ID, post.ID); err != nil {
		t.Fatalf("like: %v", err)
	}
	res, err := f.agg.RemoveLike(ctx, u.ID, post.ID)
	if err != nil || !res.Removed {
		t.Fatalf("unlike: want removed got=%+v err=%v", res, err)
	}

	_, err = f.agg.RemoveLike(ctx, u.ID, post.ID)
	if !domainagg.IsCode(err, domainagg.CodeNotFound) || domainagg.SubjectOf(err) != domainagg.SubjectNotLiked {
		t.Fatalf("second unlike: want not_found/not-liked got=%v", err)
	}

	_, err = f.agg.RemoveLike(ctx, u.ID, uuid.New())
	if domainagg.SubjectOf(err) != domainagg.SubjectPost {
		t.Fatalf("unlike unknown post: want not_found/post got=%v", err)
	}
}

func TestAddCommentValidatesAndStamps(t *testing.T) {
	f := newEngagementFixture(t)
	ctx := context.Background()
	u := repotest.SeedUser(t, ctx, f.db, "writer")
	post := repotest.SeedPost(t, ctx, f.db, u.ID, "p", f.clock.Now())

	for _, body := range []string{"", "   ", "\n\t"} {
		_, err := f.agg.AddComment(ctx, u.ID, post.ID, body)
		if !domainagg.IsCode(err, domainagg.CodeValidation) || domainagg.SubjectOf(err) != domainagg.FieldBody {
			t.Fatalf("body %q: want validation/body got=%v", body, err)
		}
	}

	_, err := f.agg.AddComment(ctx, u.ID, uuid.New(), "hello")
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("unknown post: want not_found got=%v", err)
	}

	at := f.clock.Peek()
	c, err := f.agg.AddComment(ctx, u.ID, post.ID, "  hello  ")
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if c.Body != "hello" || c.AuthorID != u.ID || c.PostID != post.ID {
		t.Fatalf("AddComment: unexpected comment %+v", c)
	}
	if !c.CreatedAt.Equal(at) {
		t.Fatalf("AddComment created_at: want=%s got=%s", at, c.CreatedAt)
	}
}

func TestLatestCommentsNewestFirstCappedAtFive(t *testing.T) {
	f := newEngagementFixture(t)
	ctx := context.Background()
	u := repotest.SeedUser(t, ctx, f.db, "writer")
	post := repotest.SeedPost(t, ctx, f.db, u.ID, "p", f.clock.Now())

	var ids []uuid.UUID
	for i := 0; i < 7; i++ {
		c, err := f.agg.AddComment(ctx, u.ID, post.ID, strings.Repeat("x", i+1))
		if err != nil {
			t.Fatalf("AddComment %d: %v", i, err)
		}
		ids = append(ids, c.ID)
	}

	latest, err := f.agg.LatestComments(ctx, post.ID, 0)
	if err != nil {
		t.Fatalf("LatestComments: %v", err)
	}
	if len(latest) != domainagg.DefaultLatestComments {
		t.Fatalf("LatestComments: want=%d got=%d", domainagg.DefaultLatestComments, len(latest))
	}
	for i, c := range latest {
		if want := ids[len(ids)-1-i]; c.ID != want {
			t.Fatalf("LatestComments[%d]: want=%s got=%s", i, want, c.ID)
		}
	}

	two, err := f.agg.LatestComments(ctx, post.ID, 2)
	if err != nil || len(two) != 2 {
		t.Fatalf("LatestComments(2): want 2 got=%d err=%v", len(two), err)
	}
}
