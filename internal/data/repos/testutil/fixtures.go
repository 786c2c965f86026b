package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/blog-backend/internal/domain"
)

// Clock hands out strictly increasing UTC timestamps, one second apart.
type Clock struct {
	mu   sync.Mutex
	next time.Time
}

func NewClock() *Clock {
	return &Clock{next: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.next
	c.next = c.next.Add(time.Second)
	return t
}

// Peek returns the next timestamp without advancing.
func (c *Clock) Peek() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.next
}

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, username string) *types.User {
	tb.Helper()
	now := time.Now().UTC()
	u := &types.User{
		ID:        uuid.Must(uuid.NewV7()),
		Username:  username,
		Email:     username + "@example.com",
		Password:  "pw",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedPost(tb testing.TB, ctx context.Context, tx *gorm.DB, authorID uuid.UUID, title string, at time.Time) *types.Post {
	tb.Helper()
	p := &types.Post{
		ID:        uuid.Must(uuid.NewV7()),
		Title:     title,
		Body:      title + " body",
		AuthorID:  authorID,
		CreatedAt: at,
		UpdatedAt: at,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed post: %v", err)
	}
	return p
}

func SeedComment(tb testing.TB, ctx context.Context, tx *gorm.DB, postID, authorID uuid.UUID, body string, at time.Time) *types.Comment {
	tb.Helper()
	c := &types.Comment{
		ID:        uuid.Must(uuid.NewV7()),
		PostID:    postID,
		AuthorID:  authorID,
		Body:      body,
		CreatedAt: at,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed comment: %v", err)
	}
	return c
}

func SeedLike(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, postID uuid.UUID) *types.Like {
	tb.Helper()
	l := &types.Like{UserID: userID, PostID: postID, CreatedAt: time.Now().UTC()}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		tb.Fatalf("seed like: %v", err)
	}
	return l
}
