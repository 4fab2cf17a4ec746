package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"thewall/internal/model"
)

// storeErr wraps unexpected failures as a StoreError and lets domain errors through.
func storeErr(op string, err error) error {
	if err == nil || model.IsNotFound(err) || model.IsValidation(err) ||
		model.IsForbidden(err) || model.IsConflict(err) || model.IsStoreError(err) {
		return err
	}
	return model.NewStoreError(op, err)
}

func checkContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return model.ErrContentRequired
	}
	return nil
}

// rowsAffected returns notFound when the statement touched nothing.
func rowsAffected(result sql.Result, notFound error) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

const postSelect = `
	SELECT p.id, p.user_id, p.content, p.comments_count, p.created_at, p.updated_at,
	       u.first_name AS author_first_name, u.last_name AS author_last_name
	FROM posts p
	JOIN users u ON u.id = p.user_id`

const commentSelect = `
	SELECT c.id, c.post_id, c.user_id, c.parent_comment_id, c.content, c.replies_count,
	       c.created_at, c.updated_at,
	       u.first_name AS author_first_name, u.last_name AS author_last_name
	FROM comments c
	JOIN users u ON u.id = c.user_id`

// postRow scans a post joined with its author.
type postRow struct {
	ID              int64     `db:"id"`
	UserID          int64     `db:"user_id"`
	Content         string    `db:"content"`
	CommentsCount   int       `db:"comments_count"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
	AuthorFirstName string    `db:"author_first_name"`
	AuthorLastName  *string   `db:"author_last_name"`
}

func (r postRow) toModel() model.Post {
	return model.Post{
		ID:            r.ID,
		UserID:        r.UserID,
		Content:       r.Content,
		CommentsCount: r.CommentsCount,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
		Author: &model.UserSummary{
			ID:        r.UserID,
			FirstName: r.AuthorFirstName,
			LastName:  r.AuthorLastName,
		},
		Comments: []model.Comment{},
	}
}

// commentRow scans a comment joined with its author.
type commentRow struct {
	ID              int64     `db:"id"`
	PostID          int64     `db:"post_id"`
	UserID          int64     `db:"user_id"`
	ParentCommentID *int64    `db:"parent_comment_id"`
	Content         string    `db:"content"`
	RepliesCount    int       `db:"replies_count"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
	AuthorFirstName string    `db:"author_first_name"`
	AuthorLastName  *string   `db:"author_last_name"`
}

func (r commentRow) toModel() model.Comment {
	return model.Comment{
		ID:              r.ID,
		PostID:          r.PostID,
		UserID:          r.UserID,
		ParentCommentID: r.ParentCommentID,
		Content:         r.Content,
		RepliesCount:    r.RepliesCount,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
		Author: &model.UserSummary{
			ID:        r.UserID,
			FirstName: r.AuthorFirstName,
			LastName:  r.AuthorLastName,
		},
	}
}

// queryer is satisfied by both *sqlx.DB and *sqlx.Tx.
type queryer interface {
	sqlx.QueryerContext
	Rebind(query string) string
}

// getPost reads one post through q, which may be the pool or an open transaction.
func getPost(ctx context.Context, q queryer, postID int64) (*model.Post, error) {
	var row postRow
	err := sqlx.GetContext(ctx, q, &row, q.Rebind(postSelect+` WHERE p.id = ?`), postID)
	if err == sql.ErrNoRows {
		return nil, model.ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	post := row.toModel()
	return &post, nil
}

func getComment(ctx context.Context, q queryer, commentID int64) (*model.Comment, error) {
	var row commentRow
	err := sqlx.GetContext(ctx, q, &row, q.Rebind(commentSelect+` WHERE c.id = ?`), commentID)
	if err == sql.ErrNoRows {
		return nil, model.ErrCommentNotFound
	}
	if err != nil {
		return nil, err
	}
	comment := row.toModel()
	return &comment, nil
}
