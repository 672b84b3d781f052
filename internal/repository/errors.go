// Package repository holds the storage errors shared by every store. Domain
// services translate them into their own errors before they reach a tool.
package repository

import "errors"

var (
	// ErrNotFound means no row exists for the ID within the caller's tenant.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a guarded update matched no row: the status moved on
	// or, for expenses, the budget would be overrun.
	ErrConflict = errors.New("guarded update did not apply")

	// ErrForeignKeyViolation means a referenced constituency, project or
	// poll does not exist.
	ErrForeignKeyViolation = errors.New("referenced entity does not exist")

	// ErrDuplicate means a unique key is taken: a constituency name, a user
	// phone or an API key.
	ErrDuplicate = errors.New("duplicate entity")
)
