package blog

import (
	"time"

	"github.com/google/uuid"
)

// Comment is immutable once written.
type Comment struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PostID   uuid.UUID `gorm:"type:uuid;not null;index:idx_comment_post_created,priority:1;column:post_id" json:"post_id"`
	AuthorID uuid.UUID `gorm:"type:uuid;not null;index;column:author_id" json:"author_id"`
	Body     string    `gorm:"type:text;not null;column:body" json:"body"`

	CreatedAt time.Time `gorm:"not null;index:idx_comment_post_created,priority:2" json:"created_at"`
}

func (Comment) TableName() string { return "comment" }
