package models

// IdentityAssertion is a provider-vouched identity claim produced by the
// identity bridge after the provider's ID token has been verified. It is the
// only input the federated authentication path accepts: free-form provider
// error strings or unverified profile fields never cross this boundary.
type IdentityAssertion struct {
	// Provider names the identity provider that vouched for the user,
	// e.g. "google.com".
	Provider string `json:"providerId"`

	// Subject is the provider-assigned stable identifier ("sub"/uid).
	Subject string `json:"uid"`

	// Email is the address the provider vouches for.
	Email string `json:"email"`

	// DisplayName is the profile name reported by the provider.
	DisplayName string `json:"displayName"`

	// PhotoURL is the profile picture reported by the provider. Optional.
	PhotoURL string `json:"photoURL,omitempty"`
}

// LocalProfile is the client-only identity used in degraded mode: the
// provider confirmed who the user is, but the backend could not be reached
// to mint a session token. It is never presented to the server as a
// credential of any kind.
type LocalProfile struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL,omitempty"`
	Provider    string `json:"providerId"`
}
