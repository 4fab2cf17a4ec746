package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thewall/internal/config"
	"thewall/internal/model"
)

func newTestAuthService() *AuthService {
	return NewAuthService(config.AuthConfig{JWTSecret: "test-secret", AccessTokenMaxAge: 3600})
}

func TestAuthService_IssueAndVerify(t *testing.T) {
	svc := newTestAuthService()

	token, err := svc.IssueAccessToken(&model.User{ID: 42, FirstName: "Ada"})
	require.NoError(t, err)

	claims, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "Ada", claims.Name)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, 3600, svc.MaxAge())
}

func TestAuthService_UniqueTokenIDs(t *testing.T) {
	svc := newTestAuthService()
	user := &model.User{ID: 1, FirstName: "Ada"}

	a, err := svc.IssueAccessToken(user)
	require.NoError(t, err)
	b, err := svc.IssueAccessToken(user)
	require.NoError(t, err)

	ca, err := svc.VerifyAccessToken(a)
	require.NoError(t, err)
	cb, err := svc.VerifyAccessToken(b)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestAuthService_Expired(t *testing.T) {
	svc := newTestAuthService()
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := svc.IssueAccessToken(&model.User{ID: 1})
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.VerifyAccessToken(token)
	assert.ErrorIs(t, err, model.ErrTokenExpired)
}

func TestAuthService_Invalid(t *testing.T) {
	svc := newTestAuthService()

	_, err := svc.VerifyAccessToken("not.a.token")
	assert.ErrorIs(t, err, model.ErrTokenInvalid)

	other := NewAuthService(config.AuthConfig{JWTSecret: "other-secret", AccessTokenMaxAge: 3600})
	token, err := other.IssueAccessToken(&model.User{ID: 1})
	require.NoError(t, err)
	_, err = svc.VerifyAccessToken(token)
	assert.ErrorIs(t, err, model.ErrTokenInvalid)

	// Tokens without an expiry are rejected.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": 1})
	noExp, err := unsigned.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = svc.VerifyAccessToken(noExp)
	assert.ErrorIs(t, err, model.ErrTokenInvalid)
}
