package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	domainagg "github.com/yungbote/blog-backend/internal/domain/aggregates"
	"github.com/yungbote/blog-backend/internal/realtime"
)

func TestUnlikeIsStrict(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	author := h.user(t, "author")
	fan := h.user(t, "fan")
	post := h.post(t, author, "p")

	_, err := h.engage.UnlikePost(ctx, fan, post.ID)
	if !domainagg.IsCode(err, domainagg.CodeNotFound) || domainagg.SubjectOf(err) != domainagg.SubjectNotLiked {
		t.Fatalf("unlike before like: want not_found/not-liked got=%v", err)
	}
	if _, err := h.engage.LikePost(ctx, fan, post.ID); err != nil {
		t.Fatalf("LikePost: %v", err)
	}
	res, err := h.engage.UnlikePost(ctx, fan, post.ID)
	if err != nil || !res.Removed {
		t.Fatalf("unlike: res=%+v err=%v", res, err)
	}
	_, err = h.engage.UnlikePost(ctx, fan, post.ID)
	if domainagg.SubjectOf(err) != domainagg.SubjectNotLiked {
		t.Fatalf("second unlike: want not-liked got=%v", err)
	}

	got := h.events.kinds()
	if len(got) != 2 || got[0] != realtime.EventPostLiked || got[1] != realtime.EventPostUnliked {
		t.Fatalf("events: %v", got)
	}
}

func TestEngagementRequiresCaller(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	author := h.user(t, "author")
	post := h.post(t, author, "p")

	if _, err := h.engage.LikePost(ctx, nil, post.ID); !domainagg.IsCode(err, domainagg.CodeUnauthenticated) {
		t.Fatalf("anonymous like: got=%v", err)
	}
	if _, err := h.engage.UnlikePost(ctx, nil, post.ID); !domainagg.IsCode(err, domainagg.CodeUnauthenticated) {
		t.Fatalf("anonymous unlike: got=%v", err)
	}
	if _, err := h.engage.AddComment(ctx, nil, post.ID, "hi"); !domainagg.IsCode(err, domainagg.CodeUnauthenticated) {
		t.Fatalf("anonymous comment: got=%v", err)
	}
	if len(h.events.kinds()) != 0 {
		t.Fatalf("no events expected for rejected calls")
	}
}

func TestAddCommentErrors(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	author := h.user(t, "author")
	post := h.post(t, author, "p")

	if _, err := h.engage.AddComment(ctx, author, post.ID, "  "); !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("blank comment: want validation got=%v", err)
	}
	_, err := h.engage.AddComment(ctx, author, uuid.New(), "hi")
	if !domainagg.IsCode(err, domainagg.CodeNotFound) || domainagg.SubjectOf(err) != domainagg.SubjectPost {
		t.Fatalf("unknown post: want not_found/post got=%v", err)
	}
	if _, err := h.engage.LikePost(ctx, author, uuid.New()); !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("like unknown post: want not_found got=%v", err)
	}

	view, err := h.engage.AddComment(ctx, author, post.ID, " hello ")
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if view.Text != "hello" || view.Author == nil || view.Author.Username != "author" {
		t.Fatalf("comment view: %+v", view)
	}
}
