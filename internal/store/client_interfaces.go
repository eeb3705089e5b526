package store

// Well-known session state keys. They mirror the browser localStorage keys
// the web client uses, so the semantics carry over: an opaque token string, a
// cached user snapshot, an optional degraded profile, and a marker for an
// in-flight external redirect. Token and degraded profile may both be
// present on disk; readers give the token precedence.
const (
	StateKeyToken           = "token"
	StateKeyUser            = "user"
	StateKeyDegradedProfile = "degraded_profile"
	StateKeyPendingRedirect = "pending_redirect"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/session_state_store_mock.go -package=mock

// SessionStateStore is the durable client-side key/value store backing the
// session manager. Values are opaque strings (tokens, JSON blobs).
type SessionStateStore interface {
	// Get returns the value stored under key, or ErrStateKeyNotFound.
	Get(key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error

	// Close releases the underlying storage handle.
	Close() error
}
