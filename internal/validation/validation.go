// Package validation holds the field-level checks applied to incoming
// book and registration payloads before anything touches the database.
// All checks are pure and independent of each other; uniqueness of
// emails and titles is a repository concern, not a field check.
package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MinTitleLength       = 3
	MaxDescriptionLength = 500
	MinUsernameLength    = 3
	MaxUsernameLength    = 20
	MinPasswordLength    = 6
)

// FieldError is a validation failure scoped to a single input field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidateTitle requires at least 3 characters. The upper bound is the
// storage column width and is not enforced here.
func ValidateTitle(title string) error {
	if utf8.RuneCountInString(title) < MinTitleLength {
		return &FieldError{Field: "title", Message: "Title must be at least 3 characters long."}
	}
	return nil
}

// ValidateDescription allows empty values but caps the length at 500.
func ValidateDescription(description string) error {
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return &FieldError{Field: "description", Message: "Description cannot exceed 500 characters."}
	}
	return nil
}

// ValidateUsername requires a purely alphanumeric string of 3-20
// characters. Letters and digits from any script pass; underscores,
// hyphens, spaces and punctuation all fail.
func ValidateUsername(username string) error {
	if !isAlphanumeric(username) {
		return &FieldError{Field: "username", Message: "Username must contain only alphanumeric characters."}
	}
	if n := utf8.RuneCountInString(username); n < MinUsernameLength || n > MaxUsernameLength {
		return &FieldError{Field: "username", Message: "Username must be between 3 and 20 characters."}
	}
	return nil
}

// ValidateEmail requires an "@" and a "." somewhere after the last "@".
// This is a deliberately weak syntactic check, not RFC validation.
func ValidateEmail(email string) error {
	at := strings.LastIndex(email, "@")
	if at < 0 || !strings.Contains(email[at+1:], ".") {
		return &FieldError{Field: "email", Message: "Enter a valid email address."}
	}
	return nil
}

// ValidatePassword requires at least 6 characters.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return &FieldError{Field: "password", Message: "Password must be at least 6 characters long."}
	}
	return nil
}

func isAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}
