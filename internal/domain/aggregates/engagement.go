package aggregates

import (
	"context"

	"github.com/google/uuid"

	"github.com/yungbote/blog-backend/internal/domain/blog"
)

var EngagementAggregateContract = Contract{
	Name:             "Blog.EngagementAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes: "Owns like uniqueness per (user, post) and comment attachment. " +
		"Counts are never stored; listings derive them from table repos.",
}

// DefaultLatestComments is the size of the latest-comments view when callers pass limit <= 0.
const DefaultLatestComments = 5

// EngagementAggregate owns like/unlike/comment writes against existing posts.
//
// Write method failures return *aggregates.Error with codes:
// CodeValidation, CodeNotFound, CodeRetryable, CodeInternal.
// A repeated like is not an error.
type EngagementAggregate interface {
	Aggregate

	// ToggleLike inserts the (user, post) like when absent. Created reports whether this call created it.
	ToggleLike(ctx context.Context, userID, postID uuid.UUID) (blog.LikeResult, error)

	// RemoveLike deletes the (user, post) like, failing with not_found/not-liked when absent.
	RemoveLike(ctx context.Context, userID, postID uuid.UUID) (blog.UnlikeResult, error)

	// AddComment attaches a non-empty trimmed body to an existing post.
	AddComment(ctx context.Context, userID, postID uuid.UUID, body string) (*blog.Comment, error)

	// LatestComments returns up to limit comments newest first, ties broken by id descending.
	LatestComments(ctx context.Context, postID uuid.UUID, limit int) ([]*blog.Comment, error)
}
