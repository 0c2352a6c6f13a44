package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrDuplicateKey indicates a uniqueness violation (username, email, or
	// an already-existing follow edge).
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrNotFound indicates the referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized indicates the actor may not perform the mutation.
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError reports malformed input for a single field. Operations
// return it before any write happens.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidationError reports whether err is a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// translateDBError maps GORM errors onto the service error kinds. Relies on
// gorm.Config{TranslateError: true} so both the postgres and sqlite dialects
// surface uniqueness violations as gorm.ErrDuplicatedKey.
func translateDBError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	default:
		return err
	}
}
