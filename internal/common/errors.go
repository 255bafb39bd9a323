// Package common defines sentinel errors and small helpers shared by the
// TaskFlow services, repositories and the CLI. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Session errors.
	ErrInvalidCredentials = errors.New("invalid password")
	ErrEmailNotVerified   = errors.New("please verify your email before logging in")
	ErrEmailTaken         = errors.New("email already registered")
	ErrAlreadyVerified    = errors.New("email is already verified")

	// ErrInvalidToken is returned for reset/verification tokens that are
	// missing or too short.
	ErrInvalidToken = errors.New("invalid or expired token")

	// Validation errors for task input.
	ErrValidation = errors.New("validation error")
)
