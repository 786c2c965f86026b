package aggregates

import (
	"context"

	"github.com/google/uuid"

	"github.com/yungbote/blog-backend/internal/domain/blog"
)

var PostAggregateContract = Contract{
	Name:             "Blog.PostAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Owns post lifecycle writes. Delete cascades to the post's comments and likes in one transaction.",
}

// PostAggregate persists post writes. Authorization happens before these calls;
// the ownership check runs inside the write transaction through Authorize.
//
// Write method failures return *aggregates.Error with codes:
// CodeNotFound, CodeForbidden, CodeValidation, CodeRetryable, CodeInternal.
type PostAggregate interface {
	Aggregate

	Create(ctx context.Context, in CreatePostInput) (*blog.Post, error)

	// Update loads the post, runs Authorize against it, then applies the update.
	Update(ctx context.Context, in UpdatePostInput) (*blog.Post, error)

	// Delete loads the post, runs Authorize against it, then removes the post with its comments and likes.
	Delete(ctx context.Context, in DeletePostInput) (blog.DeleteResult, error)
}

// OwnerCheck decides whether the loaded post may be mutated.
type OwnerCheck func(post *blog.Post) error

type CreatePostInput struct {
	AuthorID uuid.UUID
	Title    string
	Body     string
}

type UpdatePostInput struct {
	PostID    uuid.UUID
	Update    blog.PostUpdate
	Authorize OwnerCheck
	// Validate runs after Authorize so that non-owners see forbidden before payload errors.
	Validate func(blog.PostUpdate) (blog.PostUpdate, error)
}

type DeletePostInput struct {
	PostID    uuid.UUID
	Authorize OwnerCheck
}
