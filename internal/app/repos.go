package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/blog-backend/internal/data/repos"
	"github.com/yungbote/blog-backend/internal/platform/logger"
)

type Repos struct {
	User      repos.UserRepo
	UserToken repos.UserTokenRepo
	Post      repos.PostRepo
	Comment   repos.CommentRepo
	Like      repos.LikeRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:      repos.NewUserRepo(db, log),
		UserToken: repos.NewUserTokenRepo(db, log),
		Post:      repos.NewPostRepo(db, log),
		Comment:   repos.NewCommentRepo(db, log),
		Like:      repos.NewLikeRepo(db, log),
	}
}
