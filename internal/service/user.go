package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"thewall/internal/model"
	"thewall/internal/repository"
)

// UserService handles business logic for user operations
type UserService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Register validates the request and creates a new account.
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	firstName := strings.TrimSpace(req.FirstName)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if firstName == "" || email == "" || req.Password == "" {
		return nil, model.ErrRequiredFields
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, model.ErrInvalidEmail
	}
	if len(req.Password) < model.MinPasswordLength {
		return nil, model.ErrPasswordTooShort
	}
	if req.Password != req.ConfirmPassword {
		return nil, model.ErrPasswordMismatch
	}

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, model.ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		FirstName:    firstName,
		PasswordHash: string(hashedPassword),
	}
	if lastName := strings.TrimSpace(req.LastName); lastName != "" {
		user.LastName = &lastName
	}

	// The unique index still guards against a concurrent registration.
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user with email and password.
func (s *UserService) Login(ctx context.Context, req *model.LoginRequest) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, model.ErrRequiredFields
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if model.IsNotFound(err) {
			// Don't reveal whether the email exists
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	return user, nil
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.repo.GetByID(ctx, id)
}
