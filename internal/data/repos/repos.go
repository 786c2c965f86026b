package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/blog-backend/internal/data/repos/auth"
	"github.com/yungbote/blog-backend/internal/data/repos/blog"
	"github.com/yungbote/blog-backend/internal/data/repos/user"
	"github.com/yungbote/blog-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo
type UserTokenRepo = auth.UserTokenRepo

type PostRepo = blog.PostRepo
type CommentRepo = blog.CommentRepo
type LikeRepo = blog.LikeRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }

func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
	return auth.NewUserTokenRepo(db, baseLog)
}

func NewPostRepo(db *gorm.DB, baseLog *logger.Logger) PostRepo { return blog.NewPostRepo(db, baseLog) }
func NewCommentRepo(db *gorm.DB, baseLog *logger.Logger) CommentRepo {
	return blog.NewCommentRepo(db, baseLog)
}
func NewLikeRepo(db *gorm.DB, baseLog *logger.Logger) LikeRepo { return blog.NewLikeRepo(db, baseLog) }
