package blog

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/blog-backend/internal/domain"
	"github.com/yungbote/blog-backend/internal/platform/dbctx"
	"github.com/yungbote/blog-backend/internal/platform/logger"
)

// feedOrder is the listing order for posts and comments: newest first, id breaks ties.
const feedOrder = "created_at DESC, id DESC"

type PostRepo interface {
	Create(dbc dbctx.Context, posts []*types.Post) ([]*types.Post, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Post, error)
	// GetForShare and GetForUpdate lock the post row until the transaction
	// ends. Engagement writes hold the shared lock and deletes the exclusive
	// one, so a like or comment never lands on a post being deleted.
	GetForShare(dbc dbctx.Context, id uuid.UUID) (*types.Post, error)
	GetForUpdate(dbc dbctx.Context, id uuid.UUID) (*types.Post, error)
	List(dbc dbctx.Context, offset, limit int) ([]*types.Post, error)
	Count(dbc dbctx.Context) (int64, error)
	Delete(dbc dbctx.Context, id uuid.UUID) (int64, error)
}

type postRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostRepo(db *gorm.DB, baseLog *logger.Logger) PostRepo {
	repoLog := baseLog.With("repo", "PostRepo")
	return &postRepo{db: db, log: repoLog}
}

func (r *postRepo) Create(dbc dbctx.Context, posts []*types.Post) ([]*types.Post, error) {
	if len(posts) == 0 {
		return []*types.Post{}, nil
	}
	if err := dbc.DB(r.db).Create(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// GetByID returns nil, nil when the post does not exist.
func (r *postRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Post, error) {
	return takePost(dbc.DB(r.db), id)
}

func (r *postRepo) GetForShare(dbc dbctx.Context, id uuid.UUID) (*types.Post, error) {
	return takePost(dbc.DB(r.db).Clauses(clause.Locking{Strength: clause.LockingStrengthShare}), id)
}

func (r *postRepo) GetForUpdate(dbc dbctx.Context, id uuid.UUID) (*types.Post, error) {
	return takePost(dbc.DB(r.db).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), id)
}

// takePost returns nil, nil when no row matches. SQLite drops the locking
// clause; its writers are already serialized.
func takePost(q *gorm.DB, id uuid.UUID) (*types.Post, error) {
	var p types.Post
	err := q.Where("id = ?", id).Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postRepo) List(dbc dbctx.Context, offset, limit int) ([]*types.Post, error) {
	var results []*types.Post
	if limit <= 0 {
		return results, nil
	}
	if err := dbc.DB(r.db).
		Order(feedOrder).
		Offset(offset).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *postRepo) Count(dbc dbctx.Context) (int64, error) {
	var count int64
	if err := dbc.DB(r.db).Model(&types.Post{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *postRepo) Delete(dbc dbctx.Context, id uuid.UUID) (int64, error) {
	res := dbc.DB(r.db).Where("id = ?", id).Delete(&types.Post{})
	return res.RowsAffected, res.Error
}
