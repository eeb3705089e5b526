package models

import "time"

// Identity source tags stored in the users.source column. They record how an
// account proves its identity: a locally held password hash, or an external
// identity provider that vouches for the email.
const (
	SourceLocal     = "local"
	SourceFederated = "federated"
)

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	// Server-assigned at registration time.
	UserID int64 `json:"id"`

	// Email is the unique, lowercased account identifier.
	// The database enforces uniqueness; application code only normalises case.
	Email string `json:"email"`

	// FullName is the display name of the user.
	// It is non-sensitive and may be shown in UI.
	FullName string `json:"fullName"`

	// PasswordHash stores the bcrypt hash of the account password.
	// Empty for accounts whose Source is SourceFederated — such accounts
	// have no local password at all. Never exposed via JSON.
	PasswordHash string `json:"-"`

	// Source tags how the account was created: SourceLocal for
	// password registration, SourceFederated for provider-created accounts.
	// A local account that later links a provider keeps SourceLocal; the
	// link is recorded in ProviderSubject instead.
	Source string `json:"source"`

	// ProviderSubject is the stable subject identifier assigned by the
	// external identity provider ("sub"/uid). Empty when no provider has
	// ever vouched for this account.
	ProviderSubject string `json:"providerSubject,omitempty"`

	// PhotoURL is an optional profile picture URI supplied by the identity
	// provider or by the user.
	PhotoURL string `json:"photoURL,omitempty"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// HasPassword reports whether the account carries a local password hash and
// can therefore be authenticated with email+password.
func (u User) HasPassword() bool {
	return u.PasswordHash != ""
}

// Public returns a copy of the user stripped of credential material,
// safe to embed in API responses and client-side persisted state.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}
