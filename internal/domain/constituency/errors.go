package constituency

import "errors"

var (
	// ErrNotFound indicates the constituency doesn't exist.
	ErrNotFound = errors.New("constituency not found")
	// ErrInvalidInput indicates invalid constituency input.
	ErrInvalidInput = errors.New("invalid constituency input")
	// ErrDuplicate indicates a constituency with the same name exists.
	ErrDuplicate = errors.New("constituency already exists")
)
