package services

import (
	"context"
	"sync"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/blog-backend/internal/data/aggregates"
	"github.com/yungbote/blog-backend/internal/data/repos"
	"github.com/yungbote/blog-backend/internal/data/repos/testutil"
	types "github.com/yungbote/blog-backend/internal/domain"
	"github.com/yungbote/blog-backend/internal/realtime"
	"github.com/yungbote/blog-backend/internal/realtime/bus"
)

type harness struct {
	db     *gorm.DB
	clock  *testutil.Clock
	feed   FeedService
	blog   BlogService
	engage EngagementService
	auth   AuthService
	events *eventLog
}

type eventLog struct {
	mu     sync.Mutex
	events []realtime.Event
}

func (l *eventLog) add(ev realtime.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
}

func (l *eventLog) kinds() []realtime.EventType {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]realtime.EventType, 0, len(l.events))
	for _, ev := range l.events {
		out = append(out, ev.Type)
	}
	return out
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	clock := testutil.NewClock()

	users := repos.NewUserRepo(db, log)
	posts := repos.NewPostRepo(db, log)
	comments := repos.NewCommentRepo(db, log)
	likes := repos.NewLikeRepo(db, log)
	tokens := repos.NewUserTokenRepo(db, log)
	runner := aggregates.NewGormTxRunner(db)
	base := aggregates.BaseDeps{DB: db, Log: log, Runner: runner, Now: clock.Now}

	events := &eventLog{}
	b := bus.NewMemoryBus()
	if err := b.StartForwarder(context.Background(), events.add); err != nil {
		t.Fatalf("StartForwarder: %v", err)
	}

	auth, err := NewAuthService(AuthServiceDeps{
		Log:    log,
		Runner: runner,
		Users:  users,
		Tokens: tokens,
		Config: AuthConfig{SecretKey: "test-secret", BcryptCost: bcrypt.MinCost},
		Now:    clock.Peek,
	})
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}

	return &harness{
		db:    db,
		clock: clock,
		feed: NewFeedService(FeedServiceDeps{
			Log:      log,
			Runner:   runner,
			Users:    users,
			Posts:    posts,
			Comments: comments,
			Likes:    likes,
		}),
		blog: NewBlogService(log, aggregates.NewPostAggregate(aggregates.PostAggregateDeps{
			Base: base, Posts: posts, Comments: comments, Likes: likes,
		})),
		engage: NewEngagementService(log, aggregates.NewEngagementAggregate(aggregates.EngagementAggregateDeps{
			Base: base, Posts: posts, Comments: comments, Likes: likes,
		}), NewEngagementNotifier(log, b, nil)),
		auth:   auth,
		events: events,
	}
}

func (h *harness) user(t *testing.T, username string) *types.Identity {
	t.Helper()
	return testutil.SeedUser(t, context.Background(), h.db, username).Identity()
}

func (h *harness) staff(t *testing.T, username string) *types.Identity {
	t.Helper()
	u := testutil.SeedUser(t, context.Background(), h.db, username)
	if err := h.db.Model(u).Update("is_staff", true).Error; err != nil {
		t.Fatalf("promote staff: %v", err)
	}
	u.IsStaff = true
	return u.Identity()
}

func (h *harness) post(t *testing.T, author *types.Identity, title string) *types.Post {
	t.Helper()
	p, err := h.blog.CreatePost(context.Background(), author, title, title+" body")
	if err != nil {
		t.Fatalf("CreatePost %q: %v", title, err)
	}
	return p
}

func strp(s string) *string { return &s }
