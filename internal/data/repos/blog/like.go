package blog

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/blog-backend/internal/domain"
	"github.com/yungbote/blog-backend/internal/platform/dbctx"
	"github.com/yungbote/blog-backend/internal/platform/logger"
)

type LikeRepo interface {
	// InsertIfAbsent inserts like unless the (user, post) pair exists. It reports
	// whether a row was written; concurrent callers race on the primary key.
	InsertIfAbsent(dbc dbctx.Context, like *types.Like) (bool, error)
	// Delete removes the (user, post) like and reports whether a row existed.
	Delete(dbc dbctx.Context, userID, postID uuid.UUID) (bool, error)
	CountByPostIDs(dbc dbctx.Context, postIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	DeleteByPostID(dbc dbctx.Context, postID uuid.UUID) (int64, error)
}

type likeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLikeRepo(db *gorm.DB, baseLog *logger.Logger) LikeRepo {
	repoLog := baseLog.With("repo", "LikeRepo")
	return &likeRepo{db: db, log: repoLog}
}

func (r *likeRepo) InsertIfAbsent(dbc dbctx.Context, like *types.Like) (bool, error) {
	res := dbc.DB(r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
			DoNothing: true,
		}).
		Create(like)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *likeRepo) Delete(dbc dbctx.Context, userID, postID uuid.UUID) (bool, error) {
	res := dbc.DB(r.db).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&types.Like{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *likeRepo) CountByPostIDs(dbc dbctx.Context, postIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	return countByPostIDs(dbc.DB(r.db).Model(&types.Like{}), postIDs)
}

func (r *likeRepo) DeleteByPostID(dbc dbctx.Context, postID uuid.UUID) (int64, error) {
	res := dbc.DB(r.db).Where("post_id = ?", postID).Delete(&types.Like{})
	return res.RowsAffected, res.Error
}
