package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an attempt to register a new
	// user fails because a user with the same email already exists. The
	// condition is detected from the database unique-violation error, never
	// from an application-level lookup, so concurrent duplicate
	// registrations are resolved correctly.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least
	// one user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a statement against the
	// database fails for a reason with no domain mapping.
	ErrExecutingQuery = errors.New("error executing sql query")
)

// Client-side persistence errors.
var (
	// ErrStateKeyNotFound is returned by the session state store when the
	// requested key has no stored value.
	ErrStateKeyNotFound = errors.New("session state key not found")
)
