package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"thewall/internal/database"
	"thewall/internal/model"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts a post and re-reads it joined with its author.
func (r *postRepository) Create(ctx context.Context, userID int64, content string) (*model.Post, error) {
	if err := checkContent(content); err != nil {
		return nil, err
	}

	var id int64
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(`
		INSERT INTO posts (user_id, content)
		VALUES (?, ?)
		RETURNING id
	`), userID, content).Scan(&id)
	if err != nil {
		return nil, storeErr("insert post", err)
	}

	post, err := getPost(ctx, r.db, id)
	if err != nil {
		return nil, storeErr("get post", err)
	}
	return post, nil
}

// GetByID retrieves a single post without its thread.
func (r *postRepository) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	post, err := getPost(ctx, r.db, postID)
	if err != nil {
		return nil, storeErr("get post", err)
	}
	return post, nil
}

// Update replaces the post's content. Counters are left alone.
func (r *postRepository) Update(ctx context.Context, postID int64, content string) (*model.Post, error) {
	if err := checkContent(content); err != nil {
		return nil, err
	}

	result, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE posts
		SET content = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`), content, postID)
	if err != nil {
		return nil, storeErr("update post", err)
	}
	if err := rowsAffected(result, model.ErrPostNotFound); err != nil {
		return nil, storeErr("update post", err)
	}

	post, err := getPost(ctx, r.db, postID)
	if err != nil {
		return nil, storeErr("get post", err)
	}
	return post, nil
}

// Delete removes the post's comments and replies, then the post, in one transaction.
func (r *postRepository) Delete(ctx context.Context, postID int64) error {
	err := database.Transact(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM comments WHERE post_id = ?`), postID); err != nil {
			return model.NewStoreError("delete post comments", err)
		}

		result, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM posts WHERE id = ?`), postID)
		if err != nil {
			return model.NewStoreError("delete post", err)
		}
		return rowsAffected(result, model.ErrPostNotFound)
	})
	return storeErr("delete post", err)
}
