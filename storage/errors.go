package storage

import "errors"

// Common storage errors.
var (
	// ErrNotFound is returned when a schema is not found.
	ErrNotFound = errors.New("schema not found")

	// ErrInvalidName is returned when a schema name yields no usable key.
	ErrInvalidName = errors.New("invalid schema name")
)
