package blog

import (
	"time"

	"github.com/google/uuid"
)

// Like is identified by the (user, post) pair; the composite key enforces
// at most one like per pair.
type Like struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey;column:user_id" json:"user_id"`
	PostID uuid.UUID `gorm:"type:uuid;primaryKey;index;column:post_id" json:"post_id"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Like) TableName() string { return "post_like" }

type LikeResult struct {
	Created bool `json:"created"`
}

type UnlikeResult struct {
	Removed bool `json:"removed"`
}

type DeleteResult struct {
	Deleted bool `json:"deleted"`
}
