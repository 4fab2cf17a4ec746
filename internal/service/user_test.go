package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"thewall/internal/model"
)

func validRegisterRequest() *model.RegisterRequest {
	return &model.RegisterRequest{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Email:           "  Ada@Example.com ",
		Password:        "securepassword123",
		ConfirmPassword: "securepassword123",
	}
}

func TestUserService_Register_Success(t *testing.T) {
	mockRepo := &mockUserRepository{
		createFn: func(ctx context.Context, user *model.User) error {
			// Simulate database setting ID and timestamps
			user.ID = 1
			user.CreatedAt = time.Now()
			return nil
		},
	}
	svc := NewUserService(mockRepo)
	req := validRegisterRequest()

	user, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, "Ada", user.FirstName)
	require.NotNil(t, user.LastName)
	assert.Equal(t, "Lovelace", *user.LastName)

	// Password must be hashed, never stored in plain text
	assert.NotEqual(t, req.Password, user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)))
	assert.Len(t, mockRepo.createCalls, 1)
}

func TestUserService_Register_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *model.RegisterRequest)
		wantErr error
	}{
		{name: "missing first name", mutate: func(r *model.RegisterRequest) { r.FirstName = " " }, wantErr: model.ErrRequiredFields},
		{name: "missing email", mutate: func(r *model.RegisterRequest) { r.Email = "" }, wantErr: model.ErrRequiredFields},
		{name: "missing password", mutate: func(r *model.RegisterRequest) { r.Password = "" }, wantErr: model.ErrRequiredFields},
		{name: "bad email", mutate: func(r *model.RegisterRequest) { r.Email = "not-an-email" }, wantErr: model.ErrInvalidEmail},
		{name: "short password", mutate: func(r *model.RegisterRequest) { r.Password, r.ConfirmPassword = "short", "short" }, wantErr: model.ErrPasswordTooShort},
		{name: "mismatch", mutate: func(r *model.RegisterRequest) { r.ConfirmPassword = "different123" }, wantErr: model.ErrPasswordMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mockUserRepository{}
			svc := NewUserService(mockRepo)
			req := validRegisterRequest()
			tt.mutate(req)

			_, err := svc.Register(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, model.IsValidation(err))
			assert.Empty(t, mockRepo.createCalls)
		})
	}
}

func TestUserService_Register_EmailExists(t *testing.T) {
	mockRepo := &mockUserRepository{
		existsByEmailFn: func(ctx context.Context, email string) (bool, error) {
			return email == "ada@example.com", nil
		},
	}
	svc := NewUserService(mockRepo)

	_, err := svc.Register(context.Background(), validRegisterRequest())
	assert.ErrorIs(t, err, model.ErrEmailExists)
	assert.Empty(t, mockRepo.createCalls)
}

func TestUserService_Register_RepositoryError(t *testing.T) {
	dbErr := model.NewStoreError("insert user", errors.New("connection refused"))
	svc := NewUserService(&mockUserRepository{
		createFn: func(ctx context.Context, user *model.User) error { return dbErr },
	})

	_, err := svc.Register(context.Background(), validRegisterRequest())
	assert.True(t, model.IsStoreError(err))
}

func TestUserService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &model.User{ID: 5, Email: "ada@example.com", FirstName: "Ada", PasswordHash: string(hash)}

	svc := NewUserService(&mockUserRepository{
		getByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			if email == stored.Email {
				return stored, nil
			}
			return nil, model.ErrUserNotFound
		},
	})
	ctx := context.Background()

	user, err := svc.Login(ctx, &model.LoginRequest{Email: "ADA@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), user.ID)

	_, err = svc.Login(ctx, &model.LoginRequest{Email: "ada@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)

	// Unknown email looks exactly like a wrong password.
	_, err = svc.Login(ctx, &model.LoginRequest{Email: "bob@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	assert.False(t, model.IsNotFound(err))

	_, err = svc.Login(ctx, &model.LoginRequest{Email: "", Password: ""})
	assert.ErrorIs(t, err, model.ErrRequiredFields)
}

func TestUserService_GetByID(t *testing.T) {
	svc := NewUserService(&mockUserRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, FirstName: "Ada"}, nil
		},
	})

	user, err := svc.GetByID(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, int64(9), user.ID)

	_, err = NewUserService(&mockUserRepository{}).GetByID(context.Background(), 9)
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}
