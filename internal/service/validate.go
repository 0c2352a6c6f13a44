package service

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/warblerhq/warbler/backend/internal/models"
)

// Field validators are pure functions returning nil on pass or a
// *ValidationError naming the offending field. Request-level validation
// composes them so no write can happen against malformed input.

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const minPasswordLength = 6

func validateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}
	return nil
}

func validateEmail(field, value string) error {
	if !emailPattern.MatchString(value) {
		return &ValidationError{Field: field, Message: "must be a valid email address"}
	}
	return nil
}

func validateMinLength(field, value string, min int) error {
	if utf8.RuneCountInString(value) < min {
		return &ValidationError{Field: field, Message: "is too short"}
	}
	return nil
}

func validateMaxLength(field, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return &ValidationError{Field: field, Message: "is too long"}
	}
	return nil
}

// ValidateSignup checks a signup request before any row is written.
func ValidateSignup(username, email, password string) error {
	if err := validateRequired("username", username); err != nil {
		return err
	}
	if err := validateRequired("email", email); err != nil {
		return err
	}
	if err := validateEmail("email", email); err != nil {
		return err
	}
	if err := validateMinLength("password", password, minPasswordLength); err != nil {
		return err
	}
	return nil
}

// ValidateProfileEdit checks the fields of a profile edit. The current
// password re-entry is verified separately against the stored credential.
func ValidateProfileEdit(username, email string) error {
	if err := validateRequired("username", username); err != nil {
		return err
	}
	if err := validateRequired("email", email); err != nil {
		return err
	}
	return validateEmail("email", email)
}

// ValidateMessageText checks message content against the length bound.
func ValidateMessageText(text string) error {
	if err := validateRequired("text", text); err != nil {
		return err
	}
	return validateMaxLength("text", text, models.MaxMessageLength)
}
