package model

import "time"

const (
	EventPostCreated = "post.created"
	EventPostUpdated = "post.updated"
	EventPostDeleted = "post.deleted"
)

// PostEvent is published after a post mutation has been committed.
type PostEvent struct {
	Type      string    `json:"type"`
	PostID    int64     `json:"post_id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewPostEvent(eventType string, postID int64) PostEvent {
	return PostEvent{
		Type:      eventType,
		PostID:    postID,
		Timestamp: time.Now().UTC(),
	}
}
