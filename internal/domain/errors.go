package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the requested resource does not exist.
	// Keeping this sentinel in domain allows adapters to map it consistently to 404/NOT_FOUND.
	ErrNotFound = errors.New("resource not found")
	// ErrAuthenticationFailed hides whether the identifier or the secret failed.
	// The reason is to prevent account-enumeration side channels.
	ErrAuthenticationFailed = errors.New("authentication failed")
	// ErrSessionExpired signals that a stored session exists but its TTL elapsed.
	// Callers redirect to re-authentication rather than treating it as fatal.
	ErrSessionExpired = errors.New("session expired")
	// ErrStorageUnavailable signals that the backing store could not be read or
	// written. Security checks treat this as deny; report submission surfaces it
	// as a retryable failure.
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidInput       = errors.New("invalid input")
	ErrConflict           = errors.New("conflict")
	// ErrTwoFactorRequired is returned when credentials verify but the account
	// has a second factor enabled and no valid code accompanied the attempt.
	ErrTwoFactorRequired = errors.New("two-factor code required")
	ErrRateLimited       = errors.New("rate limited")
)

// LockedOutError is returned when login is attempted during an active lockout
// window. It carries remaining time so callers can show precise feedback
// without querying the tracker again.
type LockedOutError struct {
	RemainingMinutes int
}

func (e *LockedOutError) Error() string {
	return fmt.Sprintf("account locked, retry in %d minutes", e.RemainingMinutes)
}

// ValidationError reports a single rejected input field. Report submission
// fails atomically on the first field that produces one.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %s rejected: %s", e.Field, e.Reason)
}
