package grievance

import "errors"

var (
	// ErrNotFound indicates the grievance doesn't exist.
	ErrNotFound = errors.New("grievance not found")
	// ErrConstituencyNotFound indicates the referenced constituency doesn't exist.
	ErrConstituencyNotFound = errors.New("constituency not found")
	// ErrInvalidTransition indicates a status change the workflow doesn't allow.
	ErrInvalidTransition = errors.New("invalid grievance status transition")
	// ErrMissingResolution indicates a resolution note is required.
	ErrMissingResolution = errors.New("resolution required for status transition")
	// ErrConflict indicates the grievance changed while being updated.
	ErrConflict = errors.New("grievance modified concurrently")
	// ErrInvalidInput indicates invalid grievance input.
	ErrInvalidInput = errors.New("invalid grievance input")
)
