package domain

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrCohortNotFound  = errors.New("cohort not found")
	ErrProjectNotFound = errors.New("project not found")

	// ErrValidation marks a request that is missing a required field.
	ErrValidation = errors.New("validation failed")
	// ErrConflict is returned when a per-user lock could not be acquired in time.
	ErrConflict = errors.New("resource is busy")
	// ErrUpstream wraps transport failures talking to the OAuth provider.
	ErrUpstream = errors.New("upstream request failed")
)
