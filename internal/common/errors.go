// Package common defines shared constants and sentinel errors used across
// the vault core and its transport layers. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Auth service errors surfaced to callers.
	ErrorInvalidCredential = errors.New("invalid credential")
	ErrorAlreadyExists     = errors.New("already exists")
	ErrorNoActiveSession   = errors.New("no active session")

	// ErrorRecordCorruption means an active session references a vault id
	// that no longer exists. Must never happen under correct operation;
	// logged distinctly from user-facing auth errors.
	ErrorRecordCorruption = errors.New("record corruption")

	// ErrorOperationInFlight rejects a second authenticate/register call
	// while a previous one is still pending.
	ErrorOperationInFlight = errors.New("operation already in flight")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)
