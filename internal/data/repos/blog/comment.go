package blog

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/blog-backend/internal/domain"
	"github.com/yungbote/blog-backend/internal/platform/dbctx"
	"github.com/yungbote/blog-backend/internal/platform/logger"
)

type CommentRepo interface {
	Create(dbc dbctx.Context, comments []*types.Comment) ([]*types.Comment, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Comment, error)
	// List pages comments newest first; postID nil lists across all posts.
	List(dbc dbctx.Context, postID *uuid.UUID, offset, limit int) ([]*types.Comment, error)
	Count(dbc dbctx.Context, postID *uuid.UUID) (int64, error)
	Latest(dbc dbctx.Context, postID uuid.UUID, limit int) ([]*types.Comment, error)
	CountByPostIDs(dbc dbctx.Context, postIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	DeleteByPostID(dbc dbctx.Context, postID uuid.UUID) (int64, error)
}

type commentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCommentRepo(db *gorm.DB, baseLog *logger.Logger) CommentRepo {
	repoLog := baseLog.With("repo", "CommentRepo")
	return &commentRepo{db: db, log: repoLog}
}

func (r *commentRepo) Create(dbc dbctx.Context, comments []*types.Comment) ([]*types.Comment, error) {
	if len(comments) == 0 {
		return []*types.Comment{}, nil
	}
	if err := dbc.DB(r.db).Create(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// GetByID returns nil, nil when the comment does not exist.
func (r *commentRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Comment, error) {
	var c types.Comment
	err := dbc.DB(r.db).Where("id = ?", id).Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *commentRepo) scoped(dbc dbctx.Context, postID *uuid.UUID) *gorm.DB {
	q := dbc.DB(r.db).Model(&types.Comment{})
	if postID != nil {
		q = q.Where("post_id = ?", *postID)
	}
	return q
}

func (r *commentRepo) List(dbc dbctx.Context, postID *uuid.UUID, offset, limit int) ([]*types.Comment, error) {
	var results []*types.Comment
	if limit <= 0 {
		return results, nil
	}
	if err := r.scoped(dbc, postID).
		Order(feedOrder).
		Offset(offset).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *commentRepo) Count(dbc dbctx.Context, postID *uuid.UUID) (int64, error) {
	var count int64
	if err := r.scoped(dbc, postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *commentRepo) Latest(dbc dbctx.Context, postID uuid.UUID, limit int) ([]*types.Comment, error) {
	return r.List(dbc, &postID, 0, limit)
}

func (r *commentRepo) CountByPostIDs(dbc dbctx.Context, postIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	return countByPostIDs(dbc.DB(r.db).Model(&types.Comment{}), postIDs)
}

func (r *commentRepo) DeleteByPostID(dbc dbctx.Context, postID uuid.UUID) (int64, error) {
	res := dbc.DB(r.db).Where("post_id = ?", postID).Delete(&types.Comment{})
	return res.RowsAffected, res.Error
}
