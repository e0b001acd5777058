package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable covers transport failures and non-auth non-2xx replies.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized is the guest signal: the remote sees no valid
	// credential. An expected state, not a fault.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound marks a remote resource that no longer exists.
	ErrNotFound = errors.New("not found")
)

// AuthError is returned when the remote rejects submitted credentials.
// Reason is safe to show to the user.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed: %s", e.Reason)
}
