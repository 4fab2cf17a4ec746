package model

import (
	"errors"
	"fmt"
)

// Error kinds. Every domain error wraps exactly one of these.
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
)

// Content errors
var (
	ErrPostNotFound          = fmt.Errorf("post %w", ErrNotFound)
	ErrCommentNotFound       = fmt.Errorf("comment %w", ErrNotFound)
	ErrParentCommentNotFound = fmt.Errorf("parent comment %w", ErrNotFound)
	ErrNotPostOwner          = fmt.Errorf("%w: not the owner of this post", ErrForbidden)
	ErrNotCommentOwner       = fmt.Errorf("%w: not the owner of this comment", ErrForbidden)
	ErrContentRequired       = fmt.Errorf("%w: content is required", ErrValidation)
	ErrContentTooLong        = fmt.Errorf("%w: content too long", ErrValidation)
)

// StoreError wraps a database failure. Its detail is for logs only.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError returns nil when err is nil.
func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
