package models

// Response is the generic JSON envelope returned by the API for failures and
// token-less successes: {"success": false, "message": "..."}.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// AuthResponse is the envelope returned by authentication endpoints.
// Token is present on register/login/google responses and omitted on /me.
type AuthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	User    *User  `json:"user,omitempty"`
	Token   string `json:"token,omitempty"`
}

// AuthResult is the discriminated outcome the client session manager hands
// back to the UI after a transition attempt. Callers must branch on
// IsDegraded: degraded sessions cannot authorize backend calls.
type AuthResult struct {
	Success    bool
	Message    string
	IsDegraded bool
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GoogleAuthRequest is the body of POST /api/auth/google. IDToken carries the
// provider-issued ID token; the profile fields mirror what the provider
// reported and are used directly only when the server has no verifier
// configured (development mode).
type GoogleAuthRequest struct {
	IDToken     string `json:"idToken,omitempty"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL,omitempty"`
	UID         string `json:"uid"`
}
