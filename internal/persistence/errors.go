package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrDuplicate is returned when a write violates a uniqueness constraint,
	// such as a reused email address or an already occupied booking slot.
	ErrDuplicate = errors.New("persistence: duplicate record")
)
