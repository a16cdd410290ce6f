// Package apperrors defines the failure kinds surfaced by the service layer.
// Handlers map them onto HTTP statuses at the boundary; nothing below the
// boundary knows about status codes.
package apperrors

import "errors"

var (
	// ErrValidation covers missing or malformed request fields.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound covers lookups of unknown users or resources.
	ErrNotFound = errors.New("not found")

	// ErrNoMessagesAvailable means the matchmaker has no unclaimed peer
	// message to offer the requester.
	ErrNoMessagesAvailable = errors.New("no buddy messages available")

	// ErrGenerationFailed wraps any failure of the generative-text API.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrPersistenceFailed wraps store failures.
	ErrPersistenceFailed = errors.New("persistence failed")
)
