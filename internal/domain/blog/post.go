package blog

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title    string    `gorm:"not null;column:title" json:"title"`
	Body     string    `gorm:"type:text;not null;column:body" json:"body"`
	AuthorID uuid.UUID `gorm:"type:uuid;not null;index;column:author_id" json:"author_id"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Post) TableName() string { return "post" }

// PostUpdate carries a partial update. AuthorID and CreatedAt are only
// present so that attempts to change them can be rejected.
type PostUpdate struct {
	Title     *string
	Body      *string
	AuthorID  *uuid.UUID
	CreatedAt *time.Time
}
