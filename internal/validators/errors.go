package validators

import "errors"

var (
	// ErrPolicyViolation is returned when a registration field is present
	// but does not satisfy the account policy (name length, email syntax,
	// password alphabet/length).
	ErrPolicyViolation = errors.New("credential policy violation")

	// ErrMissingFields is returned when a required registration or login
	// field is absent entirely.
	ErrMissingFields = errors.New("required fields are missing")
)
