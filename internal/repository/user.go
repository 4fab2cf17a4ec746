package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"thewall/internal/database"
	"thewall/internal/model"
)

// userRepository implements UserRepository using sqlx
type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user and fills in its generated fields.
func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(`
		INSERT INTO users (email, first_name, last_name, password_hash)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`), u.Email, u.FirstName, u.LastName, u.PasswordHash).Scan(&u.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return model.ErrEmailExists
		}
		return model.NewStoreError("insert user", err)
	}

	created, err := r.GetByID(ctx, u.ID)
	if err != nil {
		return err
	}
	*u = *created
	return nil
}

// GetByID retrieves a user by their ID
func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := r.db.Rebind(`
		SELECT id, email, first_name, last_name, password_hash, created_at
		FROM users
		WHERE id = ?
	`)

	var u model.User
	err := r.db.GetContext(ctx, &u, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, model.NewStoreError("get user by id", err)
	}

	return &u, nil
}

// GetByEmail retrieves a user by their email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := r.db.Rebind(`
		SELECT id, email, first_name, last_name, password_hash, created_at
		FROM users
		WHERE email = ?
	`)

	var u model.User
	err := r.db.GetContext(ctx, &u, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, model.NewStoreError("get user by email", err)
	}

	return &u, nil
}

// ExistsByEmail checks if an email is already registered
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := r.db.Rebind(`SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`)

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, email)
	if err != nil {
		return false, model.NewStoreError("check email existence", err)
	}

	return exists, nil
}
