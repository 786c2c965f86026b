package aggregates

import (
	"strings"
	"time"

	"github.com/yungbote/blog-backend/internal/observability"
	"github.com/yungbote/blog-backend/internal/platform/logger"
)

// Hooks receives the outcome of every aggregate write, keyed by op name
// ("Blog.Post.Update", "Blog.Engagement.ToggleLike").
type Hooks interface {
	ObserveOperation(op, status string, dur time.Duration)
	IncConflict(op string)
	IncRetry(op string)
}

type noopHooks struct{}

func (noopHooks) ObserveOperation(string, string, time.Duration) {}
func (noopHooks) IncConflict(string)                             {}
func (noopHooks) IncRetry(string)                                {}

// writeHooks counts write outcomes and logs the ones an operator may want to
// follow up on. A conflict on Blog.Post.Update is a lost concurrent edit.
type writeHooks struct {
	log     *logger.Logger
	metrics *observability.Metrics
}

// NewObservabilityHooks returns no-op hooks when there is nothing to report to.
func NewObservabilityHooks(log *logger.Logger, metrics *observability.Metrics) Hooks {
	if log == nil && metrics == nil {
		return noopHooks{}
	}
	return &writeHooks{log: log, metrics: metrics}
}

func (h *writeHooks) ObserveOperation(op, status string, dur time.Duration) {
	if h == nil || h.metrics == nil {
		return
	}
	h.metrics.ObserveAggregateOperation(strings.TrimSpace(op), strings.TrimSpace(status), dur)
}

func (h *writeHooks) IncConflict(op string) {
	if h == nil {
		return
	}
	op = strings.TrimSpace(op)
	if h.log != nil {
		h.log.Debug("aggregate write conflicted", "op", op)
	}
	if h.metrics != nil {
		h.metrics.IncAggregateConflict(op)
	}
}

func (h *writeHooks) IncRetry(op string) {
	if h == nil {
		return
	}
	op = strings.TrimSpace(op)
	if h.log != nil {
		h.log.Warn("aggregate write failed with a retryable error", "op", op)
	}
	if h.metrics != nil {
		h.metrics.IncAggregateRetry(op)
	}
}
