// Package realtime carries engagement events out of the write path after commit.
package realtime

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventPostLiked    EventType = "post.liked"
	EventPostUnliked  EventType = "post.unliked"
	EventCommentAdded EventType = "comment.added"
)

type Event struct {
	ID        uuid.UUID  `json:"id"`
	Type      EventType  `json:"type"`
	PostID    uuid.UUID  `json:"post_id"`
	ActorID   uuid.UUID  `json:"actor_id"`
	CommentID *uuid.UUID `json:"comment_id,omitempty"`
	At        time.Time  `json:"at"`
}

// NewEvent stamps a fresh time-ordered id.
func NewEvent(t EventType, postID, actorID uuid.UUID, at time.Time) Event {
	return Event{
		ID:      uuid.Must(uuid.NewV7()),
		Type:    t,
		PostID:  postID,
		ActorID: actorID,
		At:      at.UTC(),
	}
}
