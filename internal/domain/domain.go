package domain

import (
	"github.com/yungbote/blog-backend/internal/domain/auth"
	"github.com/yungbote/blog-backend/internal/domain/blog"
	"github.com/yungbote/blog-backend/internal/domain/user"
)

type (
	User     = user.User
	Identity = user.Identity

	UserToken = auth.UserToken

	Post         = blog.Post
	PostUpdate   = blog.PostUpdate
	Comment      = blog.Comment
	Like         = blog.Like
	LikeResult   = blog.LikeResult
	UnlikeResult = blog.UnlikeResult
	DeleteResult = blog.DeleteResult

	PostSummary = blog.PostSummary
	PostDetail  = blog.PostDetail
	CommentView = blog.CommentView
)

// Page aliases are generic, so callers use blog.Page[T] directly.
