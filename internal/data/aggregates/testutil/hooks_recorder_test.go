package testutil

import (
	"testing"
	"time"
)

func TestHooksRecorder_CapturesSignals(t *testing.T) {
	h := &HooksRecorder{}
	h.ObserveOperation("Blog.Engagement.ToggleLike", "success", 10*time.Millisecond)
	h.ObserveOperation("Blog.Post.Update", "conflict", time.Millisecond)
	h.ObserveOperation("Blog.Engagement.ToggleLike", "not_found", time.Millisecond)
	h.IncConflict("Blog.Post.Update")
	h.IncRetry("Blog.Engagement.ToggleLike")

	if len(h.Operations) != 3 {
		t.Fatalf("expected 3 op events, got %d", len(h.Operations))
	}
	got := h.Statuses("Blog.Engagement.ToggleLike")
	if len(got) != 2 || got[0] != "success" || got[1] != "not_found" {
		t.Fatalf("unexpected statuses: %+v", got)
	}
	if len(h.Conflicts) != 1 || h.Conflicts[0] != "Blog.Post.Update" {
		t.Fatalf("unexpected conflicts: %+v", h.Conflicts)
	}
	if len(h.Retries) != 1 || h.Retries[0] != "Blog.Engagement.ToggleLike" {
		t.Fatalf("unexpected retries: %+v", h.Retries)
	}
}
