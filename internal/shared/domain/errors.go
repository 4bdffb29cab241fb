package domain

import "errors"

// Error is a domain error kind. Every sentinel in the domain taxonomy is an
// *Error, so callers can tell domain failures apart from infrastructure ones.
type Error struct {
	msg string
}

// NewError creates a domain error kind.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

func (e *Error) Error() string { return e.msg }

// Kinds shared by every bounded context. Context-specific errors wrap one of
// these with %w.
var (
	ErrNotFound     = NewError("not found")
	ErrInvalidInput = NewError("invalid input")
	ErrConflict     = NewError("concurrent modification")
)

// IsDomainError reports whether err belongs to the domain taxonomy.
// Domain errors are not retryable without new input; anything else is an
// infrastructure failure.
func IsDomainError(err error) bool {
	var kind *Error
	return errors.As(err, &kind)
}
