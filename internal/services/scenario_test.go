package services

import (
	"context"
	"testing"

	domainagg "github.com/yungbote/blog-backend/internal/domain/aggregates"
	"github.com/yungbote/blog-backend/internal/realtime"
)

func TestLikeCommentDetailScenario(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	u1 := h.user(t, "user1")
	u2 := h.user(t, "user2")

	post, err := h.blog.CreatePost(ctx, u1, "A", "B")
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if post.AuthorID != u1.ID || post.Title != "A" || post.Body != "B" {
		t.Fatalf("CreatePost: unexpected post %+v", post)
	}

	first, err := h.engage.LikePost(ctx, u2, post.ID)
	if err != nil || !first.Created {
		t.Fatalf("first like: want created=true got=%+v err=%v", first, err)
	}
	second, err := h.engage.LikePost(ctx, u2, post.ID)
	if err != nil || second.Created {
		t.Fatalf("second like: want created=false got=%+v err=%v", second, err)
	}

	detail, err := h.feed.GetPostDetail(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetPostDetail: %v", err)
	}
	if detail.LikesCount != 1 {
		t.Fatalf("likes_count: want=1 got=%d", detail.LikesCount)
	}

	if _, err := h.blog.CreatePost(ctx, nil, "C", "D"); !domainagg.IsCode(err, domainagg.CodeUnauthenticated) {
		t.Fatalf("anonymous create: want unauthenticated got=%v", err)
	}

	comment, err := h.engage.AddComment(ctx, u1, post.ID, "nice")
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	detail, err = h.feed.GetPostDetail(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetPostDetail after comment: %v", err)
	}
	if len(detail.LatestComments) == 0 || detail.LatestComments[0].ID != comment.ID {
		t.Fatalf("latest_comments: want %s first got=%+v", comment.ID, detail.LatestComments)
	}
	if detail.LatestComments[0].Author == nil || detail.LatestComments[0].Author.ID != u1.ID {
		t.Fatalf("comment author: %+v", detail.LatestComments[0].Author)
	}
	if detail.CommentsCount != 1 {
		t.Fatalf("comments_count: want=1 got=%d", detail.CommentsCount)
	}

	got := h.events.kinds()
	want := []realtime.EventType{realtime.EventPostLiked, realtime.EventCommentAdded}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("events: want=%v got=%v", want, got)
	}
}
