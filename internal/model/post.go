package model

import (
	"time"
)

// Post is a message on the wall together with its discussion thread.
type Post struct {
	ID            int64     `db:"id" json:"id"`
	UserID        int64     `db:"user_id" json:"user_id"`
	Content       string    `db:"content" json:"content"`
	CommentsCount int       `db:"comments_count" json:"comments_count"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`

	// Joined fields (not in posts table)
	Author   *UserSummary `db:"-" json:"author,omitempty"`
	Comments []Comment    `db:"-" json:"comments"`
}

// ContentRequest is the body for creating or editing a post, comment or reply.
type ContentRequest struct {
	Content string `json:"content"`
}

// MaxContentLength is counted in runes after trimming.
const MaxContentLength = 5000
