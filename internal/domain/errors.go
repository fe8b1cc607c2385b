package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Character errors
	ErrMsgCharacterNotFound = "character not found"

	// Task errors
	ErrMsgTaskNotFound         = "task not found"
	ErrMsgTaskAlreadyCompleted = "task already completed"

	// Identity errors
	ErrMsgIdentityUnavailable = "identity unavailable"

	// Input errors
	ErrMsgInvalidInput = "invalid input"

	// Database/System errors (used for partial matches)
	ErrMsgDatabaseError = "database error"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Character errors
	ErrCharacterNotFound = errors.New(ErrMsgCharacterNotFound)

	// Task errors
	ErrTaskNotFound         = errors.New(ErrMsgTaskNotFound)
	ErrTaskAlreadyCompleted = errors.New(ErrMsgTaskAlreadyCompleted)

	// Identity errors
	// Raised when a request carries no resolvable user context. Per-user
	// operations never proceed without it; persisted state is untouched.
	ErrIdentityUnavailable = errors.New(ErrMsgIdentityUnavailable)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
