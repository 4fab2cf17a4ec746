package model

import "errors"

// Error codes for rejected access tokens
const (
	CodeTokenExpired = "TOKEN_EXPIRED"
	CodeTokenInvalid = "TOKEN_INVALID"
)

var (
	ErrTokenExpired = errors.New("access token has expired")
	ErrTokenInvalid = errors.New("invalid access token")
)

// AccessClaims is the identity carried by an access token.
type AccessClaims struct {
	UserID int64
	Name   string
	ID     string // jti
}
