// Package apperr defines the error taxonomy shared by the progression
// engine, services and handlers. Errors are matched with errors.Is.
package apperr

import "errors"

var (
	// ErrInvalidArgument marks malformed or out-of-range submission fields.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound marks a missing quiz or user profile.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a profile that changed between load and persist.
	ErrConflict = errors.New("concurrent update conflict")

	// ErrStoreUnavailable marks a failed load or persist. The submission
	// is aborted whole; the caller decides whether to retry.
	ErrStoreUnavailable = errors.New("store unavailable")
)
