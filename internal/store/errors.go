package store

import "errors"

var (
	// ErrNotFound is returned when no row matches the requested (id, owner) pair.
	ErrNotFound = errors.New("record not found")
)
