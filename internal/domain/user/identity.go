package user

import "github.com/google/uuid"

// Identity is the resolved caller of an operation. A nil Identity, or one
// with a nil ID, is the anonymous caller.
type Identity struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Staff    bool      `json:"-"`
}

func (i *Identity) IsAnonymous() bool {
	return i == nil || i.ID == uuid.Nil
}

// UserID returns the caller id, uuid.Nil for anonymous callers.
func (i *Identity) UserID() uuid.UUID {
	if i == nil {
		return uuid.Nil
	}
	return i.ID
}
