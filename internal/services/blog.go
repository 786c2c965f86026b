package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	types "github.com/yungbote/blog-backend/internal/domain"
	domainagg "github.com/yungbote/blog-backend/internal/domain/aggregates"
	"github.com/yungbote/blog-backend/internal/domain/permissions"
	"github.com/yungbote/blog-backend/internal/platform/logger"
)

// BlogService owns post writes: authorization first, then the post aggregate.
type BlogService interface {
	CreatePost(ctx context.Context, caller *types.Identity, title, body string) (*types.Post, error)
	// UpdatePost applies the present fields of update.
	UpdatePost(ctx context.Context, caller *types.Identity, postID uuid.UUID, update types.PostUpdate) (*types.Post, error)
	// ReplacePost requires both title and body.
	ReplacePost(ctx context.Context, caller *types.Identity, postID uuid.UUID, update types.PostUpdate) (*types.Post, error)
	DeletePost(ctx context.Context, caller *types.Identity, postID uuid.UUID) (types.DeleteResult, error)
}

type blogService struct {
	log   *logger.Logger
	posts domainagg.PostAggregate
}

func NewBlogService(log *logger.Logger, posts domainagg.PostAggregate) BlogService {
	return &blogService{
		log:   log.With("service", "BlogService"),
		posts: posts,
	}
}

func (s *blogService) CreatePost(ctx context.Context, caller *types.Identity, title, body string) (*types.Post, error) {
	const op = "Blog.CreatePost"
	if err := permissions.Authorize(permissions.ActionCreate, caller, nil).Err(op); err != nil {
		return nil, err
	}
	post, err := s.posts.Create(ctx, domainagg.CreatePostInput{
		AuthorID: caller.ID,
		Title:    title,
		Body:     body,
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug("post created", "post_id", post.ID, "author_id", post.AuthorID)
	return post, nil
}

func (s *blogService) UpdatePost(ctx context.Context, caller *types.Identity, postID uuid.UUID, update types.PostUpdate) (*types.Post, error) {
	return s.update(ctx, "Blog.UpdatePost", caller, postID, update, false)
}

func (s *blogService) ReplacePost(ctx context.Context, caller *types.Identity, postID uuid.UUID, update types.PostUpdate) (*types.Post, error) {
	return s.update(ctx, "Blog.ReplacePost", caller, postID, update, true)
}

func (s *blogService) update(ctx context.Context, op string, caller *types.Identity, postID uuid.UUID, update types.PostUpdate, full bool) (*types.Post, error) {
	if err := permissions.Authorize(permissions.ActionUpdate, caller, nil).Err(op); err != nil {
		return nil, err
	}
	return s.posts.Update(ctx, domainagg.UpdatePostInput{
		PostID:    postID,
		Update:    update,
		Authorize: ownerCheck(op, permissions.ActionUpdate, caller),
		Validate: func(u types.PostUpdate) (types.PostUpdate, error) {
			return validatePostUpdate(op, u, full)
		},
	})
}

func (s *blogService) DeletePost(ctx context.Context, caller *types.Identity, postID uuid.UUID) (types.DeleteResult, error) {
	const op = "Blog.DeletePost"
	if err := permissions.Authorize(permissions.ActionDelete, caller, nil).Err(op); err != nil {
		return types.DeleteResult{}, err
	}
	res, err := s.posts.Delete(ctx, domainagg.DeletePostInput{
		PostID:    postID,
		Authorize: ownerCheck(op, permissions.ActionDelete, caller),
	})
	if err != nil {
		return res, err
	}
	s.log.Debug("post deleted", "post_id", postID, "caller_id", caller.ID)
	return res, nil
}

func ownerCheck(op string, action permissions.Action, caller *types.Identity) domainagg.OwnerCheck {
	return func(post *types.Post) error {
		owner := post.AuthorID
		return permissions.Authorize(action, caller, &owner).Err(op)
	}
}

// validatePostUpdate rejects immutable fields and blank text, and returns the
// update with title/body trimmed.
func validatePostUpdate(op string, u types.PostUpdate, full bool) (types.PostUpdate, error) {
	if u.AuthorID != nil {
		return u, domainagg.Validation(op, domainagg.FieldAuthorID, "author_id is immutable")
	}
	if u.CreatedAt != nil {
		return u, domainagg.Validation(op, domainagg.FieldCreatedAt, "created_at is immutable")
	}
	var err error
	if u.Title, err = trimmedField(op, domainagg.FieldTitle, u.Title, full); err != nil {
		return u, err
	}
	if u.Body, err = trimmedField(op, domainagg.FieldBody, u.Body, full); err != nil {
		return u, err
	}
	return u, nil
}

func trimmedField(op, field string, v *string, required bool) (*string, error) {
	if v == nil {
		if required {
			return nil, domainagg.Validation(op, field, field+" is required")
		}
		return nil, nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil, domainagg.Validation(op, field, field+" must not be empty")
	}
	return &t, nil
}
