package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thewall/internal/database/dbtest"
	"thewall/internal/model"
)

func TestUserRepository(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	last := "Lovelace"
	u := &model.User{Email: "ada@example.com", FirstName: "Ada", LastName: &last, PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, u))
	assert.NotZero(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	byEmail, err := repo.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)
	assert.Equal(t, "hash", byEmail.PasswordHash)
	require.NotNil(t, byEmail.LastName)
	assert.Equal(t, "Lovelace", *byEmail.LastName)

	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", byID.FirstName)

	exists, err := repo.ExistsByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = repo.ExistsByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	err = repo.Create(ctx, &model.User{Email: "ada@example.com", FirstName: "Other", PasswordHash: "h"})
	assert.ErrorIs(t, err, model.ErrEmailExists)

	_, err = repo.GetByID(ctx, u.ID+1)
	assert.ErrorIs(t, err, model.ErrUserNotFound)
	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}
