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

type PostAggregateDeps struct {
	Base BaseDeps

	Posts    repos.PostRepo
	Comments repos.CommentRepo
	Likes    repos.LikeRepo
}

type postAggregate struct {
	deps PostAggregateDeps
}

func NewPostAggregate(deps PostAggregateDeps) domainagg.PostAggregate {
	deps.Base = deps.Base.withDefaults()
	return &postAggregate{deps: deps}
}

func (a *postAggregate) Contract() domainagg.Contract {
	return domainagg.PostAggregateContract
}

func (a *postAggregate) configured(op string) error {
	if a.deps.Posts == nil || a.deps.Comments == nil || a.deps.Likes == nil {
		return domainagg.NewError(domainagg.CodeInternal, op, "post aggregate repos not configured", nil)
	}
	return nil
}

func (a *postAggregate) Create(ctx context.Context, in domainagg.CreatePostInput) (*types.Post, error) {
	const op = "Blog.Post.Create"
	if in.AuthorID == uuid.Nil {
		return nil, domainagg.Unauthenticated(op)
	}
	title := strings.TrimSpace(in.Title)
	body := strings.TrimSpace(in.Body)
	if title == "" {
		return nil, domainagg.Validation(op, domainagg.FieldTitle, "title is required")
	}
	if body == "" {
		return nil, domainagg.Validation(op, domainagg.FieldBody, "body is required")
	}
	if err := a.configured(op); err != nil {
		return nil, err
	}

	var out *types.Post
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		now := a.deps.Base.Now()
		created, err := a.deps.Posts.Create(dbc, []*types.Post{{
			ID:        id,
			Title:     title,
			Body:      body,
			AuthorID:  in.AuthorID,
			CreatedAt: now,
			UpdatedAt: now,
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

type postGetter func(dbc dbctx.Context, id uuid.UUID) (*types.Post, error)

func (a *postAggregate) load(dbc dbctx.Context, op string, postID uuid.UUID, get postGetter, authorize domainagg.OwnerCheck) (*types.Post, error) {
	post, err := get(dbc, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, domainagg.NotFound(op, domainagg.SubjectPost)
	}
	if authorize == nil {
		return nil, domainagg.Forbidden(op, "ownership check missing")
	}
	if err := authorize(post); err != nil {
		return nil, err
	}
	return post, nil
}

func (a *postAggregate) Update(ctx context.Context, in domainagg.UpdatePostInput) (*types.Post, error) {
	const op = "Blog.Post.Update"
	if err := a.configured(op); err != nil {
		return nil, err
	}
	var out *types.Post
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		post, err := a.load(dbc, op, in.PostID, a.deps.Posts.GetByID, in.Authorize)
		if err != nil {
			return err
		}
		update := in.Update
		if in.Validate != nil {
			if update, err = in.Validate(update); err != nil {
				return err
			}
		}

		updates := map[string]any{}
		if update.Title != nil {
			updates["title"] = *update.Title
		}
		if update.Body != nil {
			updates["body"] = *update.Body
		}
		if len(updates) == 0 {
			out = post
			return nil
		}
		now := a.deps.Base.Now()
		updates["updated_at"] = now

		ok, err := a.deps.Base.CASGuard.UpdateIfUnmodified(dbc, types.Post{}.TableName(), post.ID, post.UpdatedAt, updates)
		if err != nil {
			return err
		}
		if err := RequireCASSuccess(ok, "post changed while updating"); err != nil {
			return err
		}
		if update.Title != nil {
			post.Title = *update.Title
		}
		if update.Body != nil {
			post.Body = *update.Body
		}
		post.UpdatedAt = now
		out = post
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (a *postAggregate) Delete(ctx context.Context, in domainagg.DeletePostInput) (types.DeleteResult, error) {
	const op = "Blog.Post.Delete"
	var out types.DeleteResult
	if err := a.configured(op); err != nil {
		return out, err
	}
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		post, err := a.load(dbc, op, in.PostID, a.deps.Posts.GetForUpdate, in.Authorize)
		if err != nil {
			return err
		}
		if _, err := a.deps.Likes.DeleteByPostID(dbc, post.ID); err != nil {
			return err
		}
		if _, err := a.deps.Comments.DeleteByPostID(dbc, post.ID); err != nil {
			return err
		}
		n, err := a.deps.Posts.Delete(dbc, post.ID)
		if err != nil {
			return err
		}
		if n == 0 {
			return domainagg.NotFound(op, domainagg.SubjectPost)
		}
		out.Deleted = true
		return nil
	})
	return out, err
}
