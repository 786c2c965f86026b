package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	types "github.com/yungbote/blog-backend/internal/domain"
	"github.com/yungbote/blog-backend/internal/observability"
	"github.com/yungbote/blog-backend/internal/platform/logger"
	"github.com/yungbote/blog-backend/internal/realtime"
	"github.com/yungbote/blog-backend/internal/realtime/bus"
)

// EngagementNotifier announces committed engagement changes. Delivery is best
// effort: a failed publish is logged and never fails the write.
type EngagementNotifier interface {
	PostLiked(ctx context.Context, userID, postID uuid.UUID)
	PostUnliked(ctx context.Context, userID, postID uuid.UUID)
	CommentAdded(ctx context.Context, comment *types.Comment)
}

type engagementNotifier struct {
	log     *logger.Logger
	bus     bus.Bus
	metrics *observability.Metrics
	now     func() time.Time
}

func NewEngagementNotifier(log *logger.Logger, b bus.Bus, metrics *observability.Metrics) EngagementNotifier {
	if b == nil {
		return noopNotifier{}
	}
	return &engagementNotifier{
		log:     log.With("service", "EngagementNotifier"),
		bus:     b,
		metrics: metrics,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (n *engagementNotifier) PostLiked(ctx context.Context, userID, postID uuid.UUID) {
	n.emit(ctx, realtime.NewEvent(realtime.EventPostLiked, postID, userID, n.now()))
}

func (n *engagementNotifier) PostUnliked(ctx context.Context, userID, postID uuid.UUID) {
	n.emit(ctx, realtime.NewEvent(realtime.EventPostUnliked, postID, userID, n.now()))
}

func (n *engagementNotifier) CommentAdded(ctx context.Context, comment *types.Comment) {
	if comment == nil {
		return
	}
	ev := realtime.NewEvent(realtime.EventCommentAdded, comment.PostID, comment.AuthorID, comment.CreatedAt)
	id := comment.ID
	ev.CommentID = &id
	n.emit(ctx, ev)
}

func (n *engagementNotifier) emit(ctx context.Context, ev realtime.Event) {
	// The write already committed; a cancelled request must not drop the event.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if err := n.bus.Publish(ctx, ev); err != nil {
		n.log.Warn("publish engagement event failed", "type", ev.Type, "post_id", ev.PostID, "error", err)
		n.metrics.IncEventPublished(string(ev.Type), "error")
		return
	}
	n.metrics.IncEventPublished(string(ev.Type), "ok")
}

type noopNotifier struct{}

func (noopNotifier) PostLiked(context.Context, uuid.UUID, uuid.UUID)   {}
func (noopNotifier) PostUnliked(context.Context, uuid.UUID, uuid.UUID) {}
func (noopNotifier) CommentAdded(context.Context, *types.Comment)      {}
