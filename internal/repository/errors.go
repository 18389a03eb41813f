package repository

import "errors"

var (
	// ErrInvalidCredentials is returned by Login when no account matches.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAlreadyExists is returned by Signup when the contact is taken.
	ErrAlreadyExists = errors.New("user already exists")
	// ErrNotFound is returned when an update targets a missing record.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when the caller may not perform an operation,
	// including any attempt to delete the administrator.
	ErrForbidden = errors.New("forbidden")
)
