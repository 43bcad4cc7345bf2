package repository

import "errors"

var (
	// ErrNotFound covers both a genuinely absent row and a row owned by a
	// different user; callers must not be able to tell the two apart.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when a unique field (tag name, user email)
	// is already taken.
	ErrDuplicate = errors.New("duplicate")
)
