package services

import (
	"context"

	"github.com/google/uuid"

	types "github.com/yungbote/blog-backend/internal/domain"
	domainagg "github.com/yungbote/blog-backend/internal/domain/aggregates"
	"github.com/yungbote/blog-backend/internal/domain/blog"
	"github.com/yungbote/blog-backend/internal/domain/permissions"
	"github.com/yungbote/blog-backend/internal/platform/logger"
)

type EngagementService interface {
	// LikePost is idempotent: a repeat like reports Created=false.
	LikePost(ctx context.Context, caller *types.Identity, postID uuid.UUID) (types.LikeResult, error)
	// UnlikePost fails with not_found/not-liked when the caller has not liked the post.
	UnlikePost(ctx context.Context, caller *types.Identity, postID uuid.UUID) (types.UnlikeResult, error)
	AddComment(ctx context.Context, caller *types.Identity, postID uuid.UUID, body string) (*types.CommentView, error)
}

type engagementService struct {
	log      *logger.Logger
	store    domainagg.EngagementAggregate
	notifier EngagementNotifier
}

func NewEngagementService(log *logger.Logger, store domainagg.EngagementAggregate, notifier EngagementNotifier) EngagementService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &engagementService{
		log:      log.With("service", "EngagementService"),
		store:    store,
		notifier: notifier,
	}
}

func (s *engagementService) LikePost(ctx context.Context, caller *types.Identity, postID uuid.UUID) (types.LikeResult, error) {
	const op = "Engagement.LikePost"
	if err := permissions.Authorize(permissions.ActionLike, caller, nil).Err(op); err != nil {
		return types.LikeResult{}, err
	}
	res, err := s.store.ToggleLike(ctx, caller.ID, postID)
	if err != nil {
		return res, err
	}
	if res.Created {
		s.notifier.PostLiked(ctx, caller.ID, postID)
	}
	return res, nil
}

func (s *engagementService) UnlikePost(ctx context.Context, caller *types.Identity, postID uuid.UUID) (types.UnlikeResult, error) {
	const op = "Engagement.UnlikePost"
	if err := permissions.Authorize(permissions.ActionUnlike, caller, nil).Err(op); err != nil {
		return types.UnlikeResult{}, err
	}
	res, err := s.store.RemoveLike(ctx, caller.ID, postID)
	if err != nil {
		return res, err
	}
	s.notifier.PostUnliked(ctx, caller.ID, postID)
	return res, nil
}

func (s *engagementService) AddComment(ctx context.Context, caller *types.Identity, postID uuid.UUID, body string) (*types.CommentView, error) {
	const op = "Engagement.AddComment"
	if err := permissions.Authorize(permissions.ActionComment, caller, nil).Err(op); err != nil {
		return nil, err
	}
	c, err := s.store.AddComment(ctx, caller.ID, postID, body)
	if err != nil {
		return nil, err
	}
	s.notifier.CommentAdded(ctx, c)
	return blog.NewCommentView(c, caller), nil
}
