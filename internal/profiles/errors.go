package profiles

import "errors"

var (
	// ErrNotFound is returned when no profile matches the given identity.
	ErrNotFound = errors.New("profile not found")
	// ErrInvalidInput is returned when neither email nor phone is supplied.
	ErrInvalidInput = errors.New("invalid profile lookup input")
)
