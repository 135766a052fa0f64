package core

import "errors"

var (
	// ErrNotFound is returned by mutations that reference a missing record.
	// Read views fall back to neutral defaults instead.
	ErrNotFound = errors.New("not found")

	// ErrValidation marks input rejected before it reaches the store.
	ErrValidation = errors.New("validation failed")

	// ErrActualAlreadyRecorded is returned when a forecast entry already has an actual quantity.
	ErrActualAlreadyRecorded = errors.New("actual quantity already recorded")

	// ErrInvalidTransition is returned when a procurement order status change is not forward-only.
	ErrInvalidTransition = errors.New("invalid status transition")
)
