// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/studynexus/studynexus/models"
)

// SessionState enumerates the client session lifecycle. The manager is
// always in exactly one of these states; every transition goes through
// [ClientSessionService] so the persisted snapshot and the in-memory state
// never diverge.
type SessionState int

const (
	// StateUnauthenticated means no identity is known. The only actions
	// available are the sign-in flows.
	StateUnauthenticated SessionState = iota

	// StatePendingExternalRedirect means a federated sign-in was handed off
	// to an out-of-band browser flow and the client is waiting for the user
	// to come back with the authorization code.
	StatePendingExternalRedirect

	// StateAuthenticated means a server-minted session token is held and
	// the user record behind it has been confirmed by the server.
	StateAuthenticated

	// StateDegraded means the user's identity is known from a cached
	// profile but the server could not be reached, so no valid session
	// token is held. Degraded is display-only: nothing in this state may
	// be used as a credential.
	StateDegraded
)

func (s SessionState) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StatePendingExternalRedirect:
		return "pending_external_redirect"
	case StateAuthenticated:
		return "authenticated"
	case StateDegraded:
		return "degraded"
	default:
		return "unknown"
	}
}

// SessionSnapshot is an immutable view of the session manager's state,
// returned from every operation so callers (the TUI) can render without
// reaching into the manager.
type SessionSnapshot struct {
	State SessionState

	// User is set only in StateAuthenticated.
	User *models.User

	// Token is the signed session token, set only in StateAuthenticated.
	Token string

	// Profile is the cached display-only identity, set only in
	// StateDegraded.
	Profile *models.LocalProfile

	// RedirectURL is the consent URL to open out-of-band, set only in
	// StatePendingExternalRedirect.
	RedirectURL string

	// Notice carries a human-readable explanation of the last transition
	// (e.g. why the flow fell back or degraded). May be empty.
	Notice string
}

// ClientSessionService owns the client-side session lifecycle. All
// operations return the resulting snapshot; an error is returned only when
// the operation failed AND the state did not advance (a degraded outcome is
// a successful transition, not an error).
type ClientSessionService interface {
	// Snapshot returns the current state without side effects.
	Snapshot() SessionSnapshot

	// Restore rebuilds the session from the durable state store on startup:
	// a persisted token is revalidated against the server, falling back to
	// the degraded profile when the server is unreachable, then to a
	// pending redirect marker, then to unauthenticated.
	Restore(ctx context.Context) SessionSnapshot

	// SubmitRegistration registers a new password account and, on success,
	// enters StateAuthenticated.
	SubmitRegistration(ctx context.Context, fullName, email, password string) (SessionSnapshot, error)

	// SubmitLocalLogin signs in with an email/password pair. If the server
	// is unreachable and a cached profile for the same email exists, the
	// session enters StateDegraded instead of failing.
	SubmitLocalLogin(ctx context.Context, email, password string) (SessionSnapshot, error)

	// LaunchFederatedLogin runs the interactive federated sign-in. notify
	// receives the consent URL to present to the user. If the interactive
	// flow cannot start, the manager falls back to the out-of-band redirect
	// flow and enters StatePendingExternalRedirect.
	LaunchFederatedLogin(ctx context.Context, notify func(authURL string)) (SessionSnapshot, error)

	// CompleteRedirect finishes the out-of-band flow with the pasted
	// authorization code. Valid only in StatePendingExternalRedirect. If
	// the provider accepted the sign-in but the server is unreachable, the
	// session enters StateDegraded, never back to StateUnauthenticated.
	CompleteRedirect(ctx context.Context, code string) (SessionSnapshot, error)

	// CancelRedirect abandons a pending out-of-band flow and returns to
	// StateUnauthenticated.
	CancelRedirect() SessionSnapshot

	// Logout discards the token and all persisted session state.
	Logout(ctx context.Context) SessionSnapshot
}
