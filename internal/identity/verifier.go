// Package identity bridges the application to the external identity
// provider. The server side verifies posted ID tokens and turns them into
// [models.IdentityAssertion] values; the client side drives the interactive
// sign-in flows. Nothing outside this package ever inspects provider error
// strings or raw token claims.
package identity

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/studynexus/studynexus/internal/logger"
	"github.com/studynexus/studynexus/models"
)

const googleIssuer = "https://accounts.google.com"

// ProviderGoogle is the provider tag recorded on assertions produced here.
const ProviderGoogle = "google.com"

// AssertionVerifier validates a posted federated sign-in request and
// produces a provider-vouched identity assertion.
type AssertionVerifier interface {
	Verify(ctx context.Context, req models.GoogleAuthRequest) (models.IdentityAssertion, error)
}

// googleClaims is the subset of ID-token claims the application consumes.
type googleClaims struct {
	Subject string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// googleVerifier checks Google ID tokens against the provider's published
// keys and the configured OAuth client id.
type googleVerifier struct {
	verifier *oidc.IDTokenVerifier
	logger   *logger.Logger
}

// NewGoogleVerifier constructs an [AssertionVerifier] for the given OAuth
// client id. It contacts the provider's discovery endpoint once at startup.
func NewGoogleVerifier(ctx context.Context, clientID string, log *logger.Logger) (AssertionVerifier, error) {
	provider, err := oidc.NewProvider(ctx, googleIssuer)
	if err != nil {
		return nil, fmt.Errorf("oidc provider: %w", err)
	}

	return &googleVerifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
		logger:   log,
	}, nil
}

// Verify checks the posted ID token and builds the assertion from its
// verified claims. The profile fields posted alongside the token are ignored:
// only what the provider signed is trusted.
func (g *googleVerifier) Verify(ctx context.Context, req models.GoogleAuthRequest) (models.IdentityAssertion, error) {
	if req.IDToken == "" {
		return models.IdentityAssertion{}, fmt.Errorf("%w: missing id token", ErrAssertionInvalid)
	}

	idToken, err := g.verifier.Verify(ctx, req.IDToken)
	if err != nil {
		return models.IdentityAssertion{}, fmt.Errorf("%w: %v", ErrAssertionInvalid, err)
	}

	var claims googleClaims
	if err = idToken.Claims(&claims); err != nil {
		return models.IdentityAssertion{}, fmt.Errorf("%w: parse claims: %v", ErrAssertionInvalid, err)
	}

	return models.IdentityAssertion{
		Provider:    ProviderGoogle,
		Subject:     claims.Subject,
		Email:       claims.Email,
		DisplayName: claims.Name,
		PhotoURL:    claims.Picture,
	}, nil
}

// trustingVerifier accepts the posted profile fields without token
// verification. Used only when no Google client id is configured, mirroring
// the development setup of the original deployment. Logs a warning per use.
type trustingVerifier struct {
	logger *logger.Logger
}

// NewTrustingVerifier returns an [AssertionVerifier] for development use.
func NewTrustingVerifier(log *logger.Logger) AssertionVerifier {
	log.Warn().Msg("federated sign-in running without ID token verification")
	return &trustingVerifier{logger: log}
}

func (t *trustingVerifier) Verify(ctx context.Context, req models.GoogleAuthRequest) (models.IdentityAssertion, error) {
	if req.Email == "" || req.UID == "" {
		return models.IdentityAssertion{}, fmt.Errorf("%w: missing email or uid", ErrAssertionInvalid)
	}

	logger.FromContext(ctx).Warn().Str("email", req.Email).Msg("accepting unverified identity assertion")

	return models.IdentityAssertion{
		Provider:    ProviderGoogle,
		Subject:     req.UID,
		Email:       req.Email,
		DisplayName: req.DisplayName,
		PhotoURL:    req.PhotoURL,
	}, nil
}
