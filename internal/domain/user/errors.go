package user

import "errors"

var (
	// ErrNotFound indicates the user doesn't exist.
	ErrNotFound = errors.New("user not found")
	// ErrInvalidInput indicates invalid registration input.
	ErrInvalidInput = errors.New("invalid user input")
	// ErrDuplicate indicates the phone number is already registered.
	ErrDuplicate = errors.New("phone number already registered")
	// ErrInvalidCredentials indicates a failed login.
	ErrInvalidCredentials = errors.New("invalid phone or password")
	// ErrConstituencyNotFound indicates the referenced constituency doesn't exist.
	ErrConstituencyNotFound = errors.New("constituency not found")
)
