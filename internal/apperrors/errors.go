package apperrors

import (
	"errors"
)

var (
	ErrUsernameTaken = errors.New("username already exists")
	ErrUserNotFound  = errors.New("user not found")

	// Returned on any authentication failure. Unknown username and wrong
	// password must be indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError names the field that failed validation and the reason.
// Reason is safe to show to the caller as is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}
