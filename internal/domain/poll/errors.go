package poll

import "errors"

var (
	// ErrNotFound indicates the poll doesn't exist.
	ErrNotFound = errors.New("poll not found")
	// ErrInvalidInput indicates invalid poll input.
	ErrInvalidInput = errors.New("invalid poll input")
	// ErrInvalidOption indicates a vote for an option that doesn't exist.
	ErrInvalidOption = errors.New("poll option out of range")
	// ErrClosed indicates the poll is not accepting votes.
	ErrClosed = errors.New("poll is not open for voting")
	// ErrConstituencyNotFound indicates the referenced constituency doesn't exist.
	ErrConstituencyNotFound = errors.New("constituency not found")
)
