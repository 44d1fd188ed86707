// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrMissingFields is returned when a required input is empty.
	ErrMissingFields = errors.New("missing required fields")

	// ErrUserNotFound is returned when a user cannot be found by email.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned for both an unknown email and a wrong password,
	// so callers cannot tell which one happened.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInsertNotAcknowledged is returned when the store did not confirm a write.
	ErrInsertNotAcknowledged = errors.New("insert not acknowledged")
)
