package validate

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/mkravchenko/accountd/internal/apperrors"
)

const (
	// Generic limit for any string field in a request payload
	maxFieldLen = 255

	minUsernameLen = 3
	maxUsernameLen = 50

	minPasswordLen = 8
	maxPasswordLen = 128
)

// Field applies the generic payload rules shared by all string fields:
// surrounding whitespace is trimmed, the trimmed value must not be empty
// and the raw value must not exceed 255 characters.
// Returns the trimmed value; field specific checks run on that.
func Field(name string, value string) (string, error) {
	trimmed := strings.TrimSpace(value)

	if trimmed == "" {
		return "", &apperrors.ValidationError{Field: name, Reason: fmt.Sprintf("Empty value for %s", name)}
	}

	if len(value) > maxFieldLen {
		return "", &apperrors.ValidationError{Field: name, Reason: fmt.Sprintf("Value too long for %s", name)}
	}

	return trimmed, nil
}

// Username enforces the account name policy.
// Checks run in fixed order so error messages stay deterministic:
// too short, too long, charset.
func Username(s string) error {
	if len(s) < minUsernameLen {
		return usernameError("Username must be at least 3 characters long")
	}

	if len(s) > maxUsernameLen {
		return usernameError("Username must be less than 50 characters")
	}

	for _, r := range s {
		if !allowedUsernameRune(r) {
			return usernameError("Username contains invalid characters")
		}
	}

	return nil
}

// Password enforces the password policy: length bounds first, then the
// complexity requirement. Missing uppercase, lowercase or digit are all
// reported with the same combined message.
func Password(s string) error {
	if len(s) < minPasswordLen {
		return passwordError("Password must be at least 8 characters long")
	}

	if len(s) > maxPasswordLen {
		return passwordError("Password too long")
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasUpper || !hasLower || !hasDigit {
		return passwordError("Password must contain uppercase, lowercase, and numeric characters")
	}

	return nil
}

func allowedUsernameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '_', r == '-', r == '.':
		return true
	}
	return false
}

func usernameError(reason string) error {
	return &apperrors.ValidationError{Field: "username", Reason: reason}
}

func passwordError(reason string) error {
	return &apperrors.ValidationError{Field: "password", Reason: reason}
}
