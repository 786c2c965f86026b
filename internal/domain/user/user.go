package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username string    `gorm:"uniqueIndex;not null;column:username" json:"username"`
	Email    string    `gorm:"not null;default:'';column:email" json:"email"`
	Password string    `gorm:"not null;column:password" json:"-"`
	IsStaff  bool      `gorm:"not null;default:false;column:is_staff" json:"-"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string { return "user" }

// Identity returns the public view of u used for attribution and caller context.
func (u *User) Identity() *Identity {
	if u == nil {
		return nil
	}
	return &Identity{ID: u.ID, Username: u.Username, Email: u.Email, Staff: u.IsStaff}
}
