package blog

import (
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/blog-backend/internal/domain/user"
)

type PostSummary struct {
	ID            uuid.UUID      `json:"id"`
	Title         string         `json:"title"`
	Body          string         `json:"body"`
	Author        *user.Identity `json:"author"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	LikesCount    int64          `json:"likes_count"`
	CommentsCount int64          `json:"comments_count"`
}

type PostDetail struct {
	PostSummary
	LatestComments []*CommentView `json:"latest_comments"`
}

type CommentView struct {
	ID        uuid.UUID      `json:"id"`
	PostID    uuid.UUID      `json:"post_id"`
	Author    *user.Identity `json:"author"`
	Text      string         `json:"text"`
	CreatedAt time.Time      `json:"created_at"`
}

// Page is one 1-based slice of an ordered listing.
type Page[T any] struct {
	Items      []T   `json:"results"`
	TotalCount int64 `json:"count"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Next       bool  `json:"next"`
}

// HasNext reports whether another page follows this one.
func (p *Page[T]) HasNext() bool {
	if p == nil || p.PageSize <= 0 {
		return false
	}
	size := int64(p.PageSize)
	pages := (p.TotalCount + size - 1) / size
	return int64(p.Page) < pages
}

// NewPostSummary builds the read view of p. author may be nil when the
// author row is missing.
func NewPostSummary(p *Post, author *user.Identity, likes, comments int64) PostSummary {
	return PostSummary{
		ID:            p.ID,
		Title:         p.Title,
		Body:          p.Body,
		Author:        author,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		LikesCount:    likes,
		CommentsCount: comments,
	}
}

func NewCommentView(c *Comment, author *user.Identity) *CommentView {
	return &CommentView{
		ID:        c.ID,
		PostID:    c.PostID,
		Author:    author,
		Text:      c.Body,
		CreatedAt: c.CreatedAt,
	}
}
