package service

import "errors"

var (
	// ErrInvalidDataProvided is returned when a request is missing required
	// fields before any policy or credential check can run.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrPolicyViolation is returned when registration input is present but
	// breaks the account policy (wraps the validator detail).
	ErrPolicyViolation = errors.New("registration policy violation")

	// ErrWrongPassword is returned when the password comparison against the
	// stored hash fails.
	ErrWrongPassword = errors.New("wrong password")

	// ErrFederatedOnlyAccount is returned when a password login targets an
	// account that has no local password (identity source "federated").
	// There is nothing to compare against; this is not a hash mismatch.
	ErrFederatedOnlyAccount = errors.New("account has no local password")

	// ErrTokenIsExpired is returned when a session token's expiry has
	// elapsed. The signature may still be valid; expiry alone is terminal.
	ErrTokenIsExpired = errors.New("token is expired")

	// ErrTokenIsInvalid is returned for any other token validation failure
	// (bad signature, wrong issuer, malformed claims).
	ErrTokenIsInvalid = errors.New("token is expired or invalid")

	// ErrTokenCreationFailed is returned when signing a new session token
	// fails.
	ErrTokenCreationFailed = errors.New("token creation failed")
)
