package storage

import "errors"

// Common storage errors.
var (
	// ErrNotFound is returned when an archived export is not found.
	ErrNotFound = errors.New("export not found")

	// ErrInvalidName is returned for object names not produced by Archive.
	ErrInvalidName = errors.New("invalid archive name")
)
