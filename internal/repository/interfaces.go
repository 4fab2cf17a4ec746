package repository

import (
	"context"

	"thewall/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type PostRepository interface {
	Create(ctx context.Context, userID int64, content string) (*model.Post, error)
	GetByID(ctx context.Context, postID int64) (*model.Post, error)
	Update(ctx context.Context, postID int64, content string) (*model.Post, error)
	// Delete removes the post together with all of its comments and replies.
	Delete(ctx context.Context, postID int64) error
	// ListWithThreads returns every post newest-first, each carrying its
	// comments newest-first and each comment its replies oldest-first.
	ListWithThreads(ctx context.Context) ([]model.Post, error)
}

type CommentRepository interface {
	// Create inserts a comment (parentID nil) or a reply and bumps the owning counter.
	Create(ctx context.Context, userID, postID int64, content string, parentID *int64) (*model.Comment, error)
	GetByID(ctx context.Context, commentID int64) (*model.Comment, error)
	Update(ctx context.Context, commentID int64, content string) (*model.Comment, error)
	// Delete removes a comment and its replies, returning how many rows went.
	Delete(ctx context.Context, commentID int64) (deleted int, err error)
}
