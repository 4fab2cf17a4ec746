package model

import (
	"time"
)

// Comment is either a top-level comment on a post (ParentCommentID nil)
// or a reply to a top-level comment.
type Comment struct {
	ID              int64     `db:"id" json:"id"`
	PostID          int64     `db:"post_id" json:"post_id"`
	UserID          int64     `db:"user_id" json:"user_id"`
	ParentCommentID *int64    `db:"parent_comment_id" json:"parent_comment_id"`
	Content         string    `db:"content" json:"content"`
	RepliesCount    int       `db:"replies_count" json:"replies_count"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`

	Author  *UserSummary `db:"-" json:"author,omitempty"`
	Replies []Comment    `db:"-" json:"replies,omitempty"`
}

// IsReply reports whether the comment hangs off another comment.
func (c *Comment) IsReply() bool {
	return c.ParentCommentID != nil
}
