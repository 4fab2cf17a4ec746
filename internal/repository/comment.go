package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"thewall/internal/database"
	"thewall/internal/model"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create inserts a comment and increments the owning counter in one transaction.
// A reply's parent must be a top-level comment on the same post.
func (r *commentRepository) Create(ctx context.Context, userID, postID int64, content string, parentID *int64) (*model.Comment, error) {
	if err := checkContent(content); err != nil {
		return nil, err
	}

	var comment *model.Comment
	err := database.Transact(ctx, r.db, func(tx *sqlx.Tx) error {
		var id int64
		err := tx.QueryRowxContext(ctx, tx.Rebind(`
			INSERT INTO comments (post_id, user_id, content, parent_comment_id)
			VALUES (?, ?, ?, ?)
			RETURNING id
		`), postID, userID, content, parentID).Scan(&id)
		if err != nil {
			if database.IsForeignKeyViolation(err) {
				if parentID != nil {
					return model.ErrParentCommentNotFound
				}
				return model.ErrPostNotFound
			}
			return model.NewStoreError("insert comment", err)
		}

		if parentID != nil {
			err = r.incrementReplies(ctx, tx, *parentID, postID)
		} else {
			err = r.incrementComments(ctx, tx, postID)
		}
		if err != nil {
			return err
		}

		comment, err = getComment(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, storeErr("create comment", err)
	}
	return comment, nil
}

func (r *commentRepository) incrementComments(ctx context.Context, tx *sqlx.Tx, postID int64) error {
	result, err := tx.ExecContext(ctx, tx.Rebind(`
		UPDATE posts SET comments_count = comments_count + 1 WHERE id = ?
	`), postID)
	if err != nil {
		return model.NewStoreError("increment comments count", err)
	}
	return rowsAffected(result, model.ErrPostNotFound)
}

// incrementReplies only matches a top-level parent on the same post, which
// keeps replies one level deep and on their parent's post.
func (r *commentRepository) incrementReplies(ctx context.Context, tx *sqlx.Tx, parentID, postID int64) error {
	result, err := tx.ExecContext(ctx, tx.Rebind(`
		UPDATE comments SET replies_count = replies_count + 1
		WHERE id = ? AND post_id = ? AND parent_comment_id IS NULL
	`), parentID, postID)
	if err != nil {
		return model.NewStoreError("increment replies count", err)
	}
	return rowsAffected(result, model.ErrParentCommentNotFound)
}

// GetByID retrieves a single comment or reply without nested replies.
func (r *commentRepository) GetByID(ctx context.Context, commentID int64) (*model.Comment, error) {
	comment, err := getComment(ctx, r.db, commentID)
	if err != nil {
		return nil, storeErr("get comment", err)
	}
	return comment, nil
}

// Update replaces the comment's content.
func (r *commentRepository) Update(ctx context.Context, commentID int64, content string) (*model.Comment, error) {
	if err := checkContent(content); err != nil {
		return nil, err
	}

	result, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE comments
		SET content = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`), content, commentID)
	if err != nil {
		return nil, storeErr("update comment", err)
	}
	if err := rowsAffected(result, model.ErrCommentNotFound); err != nil {
		return nil, storeErr("update comment", err)
	}

	comment, err := getComment(ctx, r.db, commentID)
	if err != nil {
		return nil, storeErr("get comment", err)
	}
	return comment, nil
}

// Delete removes a comment in one transaction. A top-level comment takes its
// replies with it and decrements the post's comments_count; a reply
// decrements its parent's replies_count.
func (r *commentRepository) Delete(ctx context.Context, commentID int64) (int, error) {
	var deleted int
	err := database.Transact(ctx, r.db, func(tx *sqlx.Tx) error {
		var target struct {
			PostID          int64  `db:"post_id"`
			ParentCommentID *int64 `db:"parent_comment_id"`
		}
		err := tx.GetContext(ctx, &target, tx.Rebind(`
			SELECT post_id, parent_comment_id FROM comments WHERE id = ?
		`), commentID)
		if err == sql.ErrNoRows {
			return model.ErrCommentNotFound
		}
		if err != nil {
			return model.NewStoreError("get comment", err)
		}

		if target.ParentCommentID == nil {
			result, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM comments WHERE parent_comment_id = ?`), commentID)
			if err != nil {
				return model.NewStoreError("delete replies", err)
			}
			n, err := result.RowsAffected()
			if err != nil {
				return model.NewStoreError("delete replies", err)
			}
			deleted += int(n)

			_, err = tx.ExecContext(ctx, tx.Rebind(`
				UPDATE posts SET comments_count = comments_count - 1
				WHERE id = ? AND comments_count > 0
			`), target.PostID)
			if err != nil {
				return model.NewStoreError("decrement comments count", err)
			}
		} else {
			_, err = tx.ExecContext(ctx, tx.Rebind(`
				UPDATE comments SET replies_count = replies_count - 1
				WHERE id = ? AND replies_count > 0
			`), *target.ParentCommentID)
			if err != nil {
				return model.NewStoreError("decrement replies count", err)
			}
		}

		result, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM comments WHERE id = ?`), commentID)
		if err != nil {
			return model.NewStoreError("delete comment", err)
		}
		if err := rowsAffected(result, model.ErrCommentNotFound); err != nil {
			return err
		}
		deleted++
		return nil
	})
	if err != nil {
		return 0, storeErr("delete comment", err)
	}
	return deleted, nil
}
