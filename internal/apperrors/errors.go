// Package apperrors is the error taxonomy shared by validation, repositories and handlers.
package apperrors

import (
	"errors"
	"fmt"
)

// ErrUnauthorized means the request carries no valid identity.
var ErrUnauthorized = errors.New("unauthorized")

// ValidationError is bad input; Message is safe to show to the user.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidation(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError is used both for missing rows and for rows owned by someone else,
// so callers never learn whether another user's row exists.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

func NewNotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

func IsValidation(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

// ValidationMessage returns the user facing message of a wrapped ValidationError.
func ValidationMessage(err error) (string, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message, true
	}
	return "", false
}

func IsNotFound(err error) bool {
	var nfErr *NotFoundError
	return errors.As(err, &nfErr)
}
