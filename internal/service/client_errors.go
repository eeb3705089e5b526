package service

import "errors"

var (
	// ErrNoPendingRedirect is returned when CompleteRedirect is called
	// outside StatePendingExternalRedirect.
	ErrNoPendingRedirect = errors.New("no external redirect is pending")

	// ErrSignInFailed wraps sign-in failures that left the session state
	// unchanged.
	ErrSignInFailed = errors.New("sign-in failed")
)
