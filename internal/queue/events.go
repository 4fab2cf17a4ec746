package queue

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event types for the wall stream
const (
	EventPostCreated    = "post_created"
	EventPostUpdated    = "post_updated"
	EventPostDeleted    = "post_deleted"
	EventCommentCreated = "comment_created"
	EventCommentUpdated = "comment_updated"
	EventCommentDeleted = "comment_deleted"
	EventReplyCreated   = "reply_created"
)

// Stream names
const (
	StreamWall = "stream:wall"
)

// Consumer group name for wall workers
const (
	ConsumerGroupWall = "wall_workers"
)

// WallEvent describes a committed change to the wall.
type WallEvent struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"` // Unix timestamp when event occurred
	PostID    int64  `json:"post_id"`
	ActorID   int64  `json:"actor_id"`

	// Comment and reply events only
	CommentID *int64 `json:"comment_id,omitempty"`
}

// NewPostEvent creates an event for a post created, updated or deleted by actorID.
func NewPostEvent(eventType string, postID, actorID int64) WallEvent {
	return WallEvent{
		Type:      eventType,
		Timestamp: time.Now().Unix(),
		PostID:    postID,
		ActorID:   actorID,
	}
}

// NewCommentEvent creates an event for a comment or reply on postID.
func NewCommentEvent(eventType string, postID, commentID, actorID int64) WallEvent {
	return WallEvent{
		Type:      eventType,
		Timestamp: time.Now().Unix(),
		PostID:    postID,
		ActorID:   actorID,
		CommentID: &commentID,
	}
}

// ToMap converts the event to a map for Redis XADD.
// Redis Streams store field-value pairs, so we serialize to JSON in a "data" field.
func (e WallEvent) ToMap() (map[string]interface{}, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return map[string]interface{}{
		"type": e.Type,
		"data": string(data),
	}, nil
}

// ParseWallEvent parses a WallEvent from Redis stream message values.
func ParseWallEvent(values map[string]interface{}) (WallEvent, error) {
	data, ok := values["data"].(string)
	if !ok {
		return WallEvent{}, fmt.Errorf("missing or invalid 'data' field")
	}

	var event WallEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return WallEvent{}, fmt.Errorf("unmarshal event: %w", err)
	}
	return event, nil
}
