package aggregates

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/blog-backend/internal/data/repos"
	types "github.com/yungbote/blog-backend/internal/domain"
	domainagg "github.com/yungbote/blog-backend/internal/domain/aggregates"
	"github.com/yungbote/blog-backend/internal/platform/dbctx"
)

type EngagementAggregateDeps struct {
	Base BaseDeps

	Posts    repos.PostRepo
	Comments repos.CommentRepo
	Likes    repos.LikeRepo
}

type engagementAggregate struct {
	deps EngagementAggregateDeps
}

func NewEngagementAggregate(deps EngagementAggregateDeps) domainagg.EngagementAggregate {
	deps.Base = deps.Base.withDefaults()
	return &engagementAggregate{deps: deps}
}

func (a *engagementAggregate) Contract() domainagg.Contract {
	return domainagg.EngagementAggregateContract
}

func (a *engagementAggregate) configured(op string) error {
	if a.deps.Posts == nil || a.deps.Comments == nil || a.deps.Likes == nil {
		return domainagg.NewError(domainagg.CodeInternal, op, "engagement aggregate repos not configured", nil)
	}
	return nil
}

// requirePost holds a shared lock on the post for the rest of the write, so a
// concurrent delete either waits for it or is seen as not found.
func (a *engagementAggregate) requirePost(dbc dbctx.Context, op string, postID uuid.UUID) error {
	post, err := a.deps.Posts.GetForShare(dbc, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return domainagg.NotFound(op, domainagg.SubjectPost)
	}
	return nil
}

func (a *engagementAggregate) ToggleLike(ctx context.Context, userID, postID uuid.UUID) (types.LikeResult, error) {
	const op = "Blog.Engagement.ToggleLike"
	var out types.LikeResult
	if userID == uuid.Nil {
		return out, domainagg.Unauthenticated(op)
	}
	if err := a.configured(op); err != nil {
		return out, err
	}
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if err := a.requirePost(dbc, op, postID); err != nil {
			return err
		}
		created, err := a.deps.Likes.InsertIfAbsent(dbc, &types.Like{
			UserID:    userID,
			PostID:    postID,
			CreatedAt: a.deps.Base.Now(),
		})
		if err != nil {
			return err
		}
		out.Created = created
		return nil
	})
	return out, err
}

func (a *engagementAggregate) RemoveLike(ctx context.Context, userID, postID uuid.UUID) (types.UnlikeResult, error) {
	const op = "Blog.Engagement.RemoveLike"
	var out types.UnlikeResult
	if userID == uuid.Nil {
		return out, domainagg.Unauthenticated(op)
	}
	if err := a.configured(op); err != nil {
		return out, err
	}
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if err := a.requirePost(dbc, op, postID); err != nil {
			return err
		}
		removed, err := a.deps.Likes.Delete(dbc, userID, postID)
		if err != nil {
			return err
		}
		if !removed {
			return domainagg.NotFound(op, domainagg.SubjectNotLiked)
		}
		out.Removed = true
		return nil
	})
	return out, err
}

func (a *engagementAggregate) AddComment(ctx context.Context, userID, postID uuid.UUID, body string) (*types.Comment, error) {
	const op = "Blog.Engagement.AddComment"
	if userID == uuid.Nil {
		return nil, domainagg.Unauthenticated(op)
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, domainagg.Validation(op, domainagg.FieldBody, "comment text is required")
	}
	if err := a.configured(op); err != nil {
		return nil, err
	}
	var out *types.Comment
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if err := a.requirePost(dbc, op, postID); err != nil {
			return err
		}
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		created, err := a.deps.Comments.Create(dbc, []*types.Comment{{
			ID:        id,
			PostID:    postID,
			AuthorID:  userID,
			Body:      body,
			CreatedAt: a.deps.Base.Now(),
		}})
		if err != nil {
			return err
		}
		out = created[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (a *engagementAggregate) LatestComments(ctx context.Context, postID uuid.UUID, limit int) ([]*types.Comment, error) {
	const op = "Blog.Engagement.LatestComments"
	if limit <= 0 {
		limit = domainagg.DefaultLatestComments
	}
	if err := a.configured(op); err != nil {
		return nil, err
	}
	var out []*types.Comment
	err := executeRead(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		comments, err := a.deps.Comments.Latest(dbc, postID, limit)
		if err != nil {
			return err
		}
		out = comments
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
