package adapter

import (
	"fmt"

	"github.com/pkg/errors"
)

// AuthError is returned when the login performed before an operation fails.
// The operation itself is never attempted in that case.
type AuthError struct {
	ListID string
	Err    error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("failed to perform sharepoint login for list %s: %v", e.ListID, e.Err)
}

// Cause returns the login failure, for errors.Cause.
func (e *AuthError) Cause() error { return e.Err }

func (e *AuthError) Unwrap() error { return e.Err }

// IsAuthError reports whether err, or anything it wraps, is an *AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// preDeleteReadError marks a delete that failed before anything was removed.
type preDeleteReadError struct {
	error
}

func (e preDeleteReadError) Cause() error { return e.error }

func (e preDeleteReadError) Unwrap() error { return e.error }

// IsPreDeleteReadError reports whether a delete failed during its mandatory
// read of the item, as opposed to during the removal itself.
func IsPreDeleteReadError(err error) bool {
	var target preDeleteReadError
	return errors.As(err, &target)
}
