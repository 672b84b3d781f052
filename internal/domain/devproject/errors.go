package devproject

import "errors"

var (
	// ErrNotFound indicates the project doesn't exist.
	ErrNotFound = errors.New("project not found")
	// ErrConstituencyNotFound indicates the referenced constituency doesn't exist.
	ErrConstituencyNotFound = errors.New("constituency not found")
	// ErrInvalidInput indicates invalid project input.
	ErrInvalidInput = errors.New("invalid project input")
	// ErrBudgetExceeded indicates an expense would overrun the budget.
	ErrBudgetExceeded = errors.New("expense exceeds remaining budget")
	// ErrInvalidTransition indicates a status change that isn't allowed.
	ErrInvalidTransition = errors.New("invalid project status transition")
	// ErrProjectClosed indicates the project no longer accepts expenses.
	ErrProjectClosed = errors.New("project is completed")
	// ErrConflict indicates the project status changed while being updated.
	ErrConflict = errors.New("project modified concurrently")
)
