package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/yungbote/blog-backend/internal/data/aggregates"
	"github.com/yungbote/blog-backend/internal/data/repos"
	types "github.com/yungbote/blog-backend/internal/domain"
	domainagg "github.com/yungbote/blog-backend/internal/domain/aggregates"
	"github.com/yungbote/blog-backend/internal/domain/blog"
	"github.com/yungbote/blog-backend/internal/platform/dbctx"
	"github.com/yungbote/blog-backend/internal/platform/logger"
)

// FeedService assembles read views. Counts are derived per call; nothing is cached.
type FeedService interface {
	ListPosts(ctx context.Context, page, pageSize int) (*blog.Page[types.PostSummary], error)
	GetPostDetail(ctx context.Context, postID uuid.UUID) (*types.PostDetail, error)
	ListComments(ctx context.Context, postID *uuid.UUID, page, pageSize int) (*blog.Page[*types.CommentView], error)
	GetComment(ctx context.Context, commentID uuid.UUID) (*types.CommentView, error)
}

type FeedServiceDeps struct {
	Log      *logger.Logger
	Runner   aggregates.TxRunner
	Users    repos.UserRepo
	Posts    repos.PostRepo
	Comments repos.CommentRepo
	Likes    repos.LikeRepo

	Paging         PageConfig
	LatestComments int
}

type feedService struct {
	deps FeedServiceDeps
	log  *logger.Logger
}

func NewFeedService(deps FeedServiceDeps) FeedService {
	if deps.LatestComments <= 0 {
		deps.LatestComments = domainagg.DefaultLatestComments
	}
	deps.Paging = deps.Paging.withDefaults()
	return &feedService{deps: deps, log: deps.Log.With("service", "FeedService")}
}

func (s *feedService) read(ctx context.Context, op string, fn func(dbc dbctx.Context) error) error {
	return aggregates.MapError(op, s.deps.Runner.InTx(ctx, fn))
}

func (s *feedService) ListPosts(ctx context.Context, page, pageSize int) (*blog.Page[types.PostSummary], error) {
	const op = "Feed.ListPosts"
	w, err := s.deps.Paging.resolve(op, page, pageSize)
	if err != nil {
		return nil, err
	}
	out := &blog.Page[types.PostSummary]{Items: []types.PostSummary{}, Page: w.Page, PageSize: w.PageSize}
	err = s.read(ctx, op, func(dbc dbctx.Context) error {
		total, err := s.deps.Posts.Count(dbc)
		if err != nil {
			return err
		}
		out.TotalCount = total
		out.Next = out.HasNext()
		if w.Offset() >= total {
			return nil
		}
		posts, err := s.deps.Posts.List(dbc, int(w.Offset()), w.PageSize)
		if err != nil {
			return err
		}
		out.Items, err = s.summarize(dbc, posts)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *feedService) summarize(dbc dbctx.Context, posts []*types.Post) ([]types.PostSummary, error) {
	if len(posts) == 0 {
		return []types.PostSummary{}, nil
	}
	ids := lo.Map(posts, func(p *types.Post, _ int) uuid.UUID { return p.ID })
	likes, err := s.deps.Likes.CountByPostIDs(dbc, ids)
	if err != nil {
		return nil, err
	}
	comments, err := s.deps.Comments.CountByPostIDs(dbc, ids)
	if err != nil {
		return nil, err
	}
	authors, err := s.identities(dbc, lo.Map(posts, func(p *types.Post, _ int) uuid.UUID { return p.AuthorID }))
	if err != nil {
		return nil, err
	}
	return lo.Map(posts, func(p *types.Post, _ int) types.PostSummary {
		return blog.NewPostSummary(p, authors[p.AuthorID], likes[p.ID], comments[p.ID])
	}), nil
}

// identities resolves author ids to identities. Missing users are absent from the map.
func (s *feedService) identities(dbc dbctx.Context, ids []uuid.UUID) (map[uuid.UUID]*types.Identity, error) {
	users, err := s.deps.Users.GetByIDs(dbc, lo.Uniq(ids))
	if err != nil {
		return nil, err
	}
	byID := lo.KeyBy(users, func(u *types.User) uuid.UUID { return u.ID })
	return lo.MapValues(byID, func(u *types.User, _ uuid.UUID) *types.Identity { return u.Identity() }), nil
}

func (s *feedService) GetPostDetail(ctx context.Context, postID uuid.UUID) (*types.PostDetail, error) {
	const op = "Feed.GetPostDetail"
	var out *types.PostDetail
	err := s.read(ctx, op, func(dbc dbctx.Context) error {
		post, err := s.deps.Posts.GetByID(dbc, postID)
		if err != nil {
			return err
		}
		if post == nil {
			return domainagg.NotFound(op, domainagg.SubjectPost)
		}
		summaries, err := s.summarize(dbc, []*types.Post{post})
		if err != nil {
			return err
		}
		latest, err := s.deps.Comments.Latest(dbc, postID, s.deps.LatestComments)
		if err != nil {
			return err
		}
		views, err := s.commentViews(dbc, latest)
		if err != nil {
			return err
		}
		out = &types.PostDetail{PostSummary: summaries[0], LatestComments: views}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *feedService) commentViews(dbc dbctx.Context, comments []*types.Comment) ([]*types.CommentView, error) {
	if len(comments) == 0 {
		return []*types.CommentView{}, nil
	}
	authors, err := s.identities(dbc, lo.Map(comments, func(c *types.Comment, _ int) uuid.UUID { return c.AuthorID }))
	if err != nil {
		return nil, err
	}
	return lo.Map(comments, func(c *types.Comment, _ int) *types.CommentView {
		return blog.NewCommentView(c, authors[c.AuthorID])
	}), nil
}

func (s *feedService) ListComments(ctx context.Context, postID *uuid.UUID, page, pageSize int) (*blog.Page[*types.CommentView], error) {
	const op = "Feed.ListComments"
	w, err := s.deps.Paging.resolve(op, page, pageSize)
	if err != nil {
		return nil, err
	}
	out := &blog.Page[*types.CommentView]{Items: []*types.CommentView{}, Page: w.Page, PageSize: w.PageSize}
	err = s.read(ctx, op, func(dbc dbctx.Context) error {
		total, err := s.deps.Comments.Count(dbc, postID)
		if err != nil {
			return err
		}
		out.TotalCount = total
		out.Next = out.HasNext()
		if w.Offset() >= total {
			return nil
		}
		comments, err := s.deps.Comments.List(dbc, postID, int(w.Offset()), w.PageSize)
		if err != nil {
			return err
		}
		out.Items, err = s.commentViews(dbc, comments)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *feedService) GetComment(ctx context.Context, commentID uuid.UUID) (*types.CommentView, error) {
	const op = "Feed.GetComment"
	var out *types.CommentView
	err := s.read(ctx, op, func(dbc dbctx.Context) error {
		c, err := s.deps.Comments.GetByID(dbc, commentID)
		if err != nil {
			return err
		}
		if c == nil {
			return domainagg.NotFound(op, domainagg.SubjectComment)
		}
		views, err := s.commentViews(dbc, []*types.Comment{c})
		if err != nil {
			return err
		}
		out = views[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
