package service

import (
	"context"

	"github.com/studynexus/studynexus/models"
)

// AuthService is the credential verifier: the sole authority deciding whether
// a claimed identity is genuine and the sole minter of session tokens.
// All failures are sentinel errors matched with [errors.Is]; HTTP status
// mapping is the transport layer's concern.
type AuthService interface {
	// RegisterLocal creates a password account after policy validation.
	RegisterLocal(ctx context.Context, fullName, email, password string) (models.User, error)

	// AuthenticateLocal verifies an email/password pair against the stored
	// bcrypt hash.
	AuthenticateLocal(ctx context.Context, email, password string) (models.User, error)

	// AuthenticateFederated accepts a provider-vouched assertion, creating
	// or linking an account as needed. It never fails for lack of a
	// password.
	AuthenticateFederated(ctx context.Context, assertion models.IdentityAssertion) (models.User, error)

	// UserByID resolves a token subject to the current user record.
	UserByID(ctx context.Context, userID int64) (models.User, error)

	// CreateToken mints a signed session token bound to the user id.
	CreateToken(ctx context.Context, user models.User) (models.Token, error)

	// ParseToken validates a raw token string (signature, issuer, expiry)
	// and returns the decoded token.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}
