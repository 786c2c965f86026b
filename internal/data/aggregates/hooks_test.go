package aggregates

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/yungbote/blog-backend/internal/observability"
)

func TestNewObservabilityHooksWithoutSinksIsNoop(t *testing.T) {
	if _, ok := NewObservabilityHooks(nil, nil).(noopHooks); !ok {
		t.Fatalf("hooks without log or metrics: want=noopHooks")
	}
}

func TestWriteHooksNilSafe(t *testing.T) {
	var nilHooks *writeHooks
	for _, h := range []*writeHooks{nilHooks, {}} {
		h.ObserveOperation("Blog.Post.Create", "success", time.Millisecond)
		h.IncConflict("Blog.Post.Update")
		h.IncRetry("Blog.Engagement.ToggleLike")
	}
}

func TestWriteHooksReportToMetrics(t *testing.T) {
	m := observability.NewMetrics()
	h := NewObservabilityHooks(nil, m)
	h.ObserveOperation(" Blog.Post.Update ", "conflict", time.Millisecond)
	h.IncConflict(" Blog.Post.Update ")
	h.IncRetry("Blog.Engagement.ToggleLike")

	for name, want := range map[string]int{
		"blog_aggregate_operations_total": 1,
		"blog_aggregate_conflicts_total":  1,
		"blog_aggregate_retryable_total":  1,
	} {
		got, err := testutil.GatherAndCount(m.Gather(), name)
		if err != nil {
			t.Fatalf("gather %s: %v", name, err)
		}
		if got != want {
			t.Fatalf("%s series: want=%d got=%d", name, want, got)
		}
	}
}
