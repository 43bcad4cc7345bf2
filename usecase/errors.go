package usecase

import (
	"errors"

	"main/repository"
)

// Re-exported storage sentinels so handlers depend on one error surface.
var (
	ErrNotFound = repository.ErrNotFound
	ErrConflict = repository.ErrDuplicate
)

// ValidationError is a pre-commit constraint violation with a
// human-readable reason. The first failed check wins; there is no partial
// acceptance.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationErr(reason string) error {
	return &ValidationError{Reason: reason}
}

// IsValidation reports whether err is a field validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
