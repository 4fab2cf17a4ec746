package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"thewall/internal/config"
	"thewall/internal/model"
)

// AuthService issues and verifies HS256 access tokens.
type AuthService struct {
	secret []byte
	maxAge int // seconds
	now    func() time.Time
}

func NewAuthService(cfg config.AuthConfig) *AuthService {
	return &AuthService{
		secret: []byte(cfg.JWTSecret),
		maxAge: cfg.AccessTokenMaxAge,
		now:    time.Now,
	}
}

type accessTokenClaims struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// MaxAge is the access token lifetime in seconds.
func (s *AuthService) MaxAge() int {
	return s.maxAge
}

// IssueAccessToken signs a token for the user with a fresh jti.
func (s *AuthService) IssueAccessToken(user *model.User) (string, error) {
	now := s.now()
	claims := accessTokenClaims{
		UserID: user.ID,
		Name:   user.FirstName,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.maxAge) * time.Second)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

// VerifyAccessToken checks the signature and expiry and returns the claims.
func (s *AuthService) VerifyAccessToken(tokenString string) (*model.AccessClaims, error) {
	var claims accessTokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, model.ErrTokenExpired
		}
		return nil, model.ErrTokenInvalid
	}
	if !token.Valid || claims.UserID <= 0 {
		return nil, model.ErrTokenInvalid
	}

	return &model.AccessClaims{UserID: claims.UserID, Name: claims.Name, ID: claims.ID}, nil
}
