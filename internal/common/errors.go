// Package common defines shared constants and sentinel errors used across
// authgate components. Callers should match these values with errors.Is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Auth errors. The messages are user-facing: the CLI prints them
	// verbatim when a login or registration attempt fails.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateEmail     = errors.New("email already registered")

	// ErrSessionRestore marks a failed attempt to restore a persisted
	// session. It is logged and never surfaced to callers; a restore
	// failure simply yields an anonymous session.
	ErrSessionRestore = errors.New("session restore failed")
)
