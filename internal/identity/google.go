package identity

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/studynexus/studynexus/internal/logger"
	"github.com/studynexus/studynexus/models"
	"golang.org/x/oauth2"
)

// Credential is the outcome of a completed interactive sign-in: the verified
// assertion plus the raw ID token to forward to the application server.
type Credential struct {
	Assertion models.IdentityAssertion
	IDToken   string
}

//go:generate mockgen -source=google.go -destination=../mock/identity_bridge_mock.go -package=mock

// Bridge drives the interactive federated sign-in flows on the client.
//
// Two flows are offered, mirroring the popup/redirect pair of the web app:
//   - SignInInteractive runs a loopback-callback flow ("popup"): a local
//     HTTP listener receives the provider redirect, so the user only has to
//     approve consent in the browser.
//   - RedirectURL + ExchangeCode form the out-of-band fallback ("redirect"):
//     the user opens the URL and pastes the authorization code back.
type Bridge interface {
	// SignInInteractive starts the loopback flow. notify receives the
	// consent URL to present to the user. Blocks until the provider
	// redirects back, ctx is done (ErrFlowCanceled), or the listener
	// cannot start (ErrPopupBlocked).
	SignInInteractive(ctx context.Context, notify func(authURL string)) (Credential, error)

	// RedirectURL returns the consent URL for the out-of-band flow.
	RedirectURL() string

	// ExchangeCode completes the out-of-band flow with the pasted
	// authorization code.
	ExchangeCode(ctx context.Context, code string) (Credential, error)
}

// GoogleBridgeConfig carries the OAuth client settings of the installed app.
type GoogleBridgeConfig struct {
	ClientID     string
	ClientSecret string
	RedirectPort int
}

type googleBridge struct {
	config   *oauth2.Config
	verifier *oidc.IDTokenVerifier
	port     int
	logger   *logger.Logger
}

// NewGoogleBridge constructs a [Bridge] for Google sign-in. It contacts the
// provider's discovery endpoint once; a failure here means the provider is
// unreachable and is reported as ErrProviderNetwork.
func NewGoogleBridge(ctx context.Context, cfg GoogleBridgeConfig, log *logger.Logger) (Bridge, error) {
	provider, err := oidc.NewProvider(ctx, googleIssuer)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderNetwork, err)
	}

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  fmt.Sprintf("http://127.0.0.1:%d/callback", cfg.RedirectPort),
		Endpoint:     provider.Endpoint(),
		Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
	}

	return &googleBridge{
		config:   oauthCfg,
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
		port:     cfg.RedirectPort,
		logger:   log,
	}, nil
}

func (g *googleBridge) SignInInteractive(ctx context.Context, notify func(authURL string)) (Credential, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", g.port))
	if err != nil {
		g.logger.Warn().Err(err).Int("port", g.port).Msg("loopback listener unavailable, caller should fall back to redirect flow")
		return Credential{}, fmt.Errorf("%w: %v", ErrPopupBlocked, err)
	}

	state, err := generateState()
	if err != nil {
		_ = listener.Close()
		return Credential{}, fmt.Errorf("generate state: %w", err)
	}

	type callbackResult struct {
		code string
		err  error
	}
	results := make(chan callbackResult, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			results <- callbackResult{err: fmt.Errorf("%w: state mismatch", ErrAssertionInvalid)}
			return
		}
		if providerErr := query.Get("error"); providerErr != "" {
			// access_denied and friends all mean the user walked away
			http.Error(w, "sign-in canceled", http.StatusBadRequest)
			results <- callbackResult{err: ErrFlowCanceled}
			return
		}

		_, _ = fmt.Fprintln(w, "Signed in. You can close this tab and return to StudyNexus.")
		results <- callbackResult{code: query.Get("code")}
	})

	server := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() { _ = server.Serve(listener) }()
	defer func() { _ = server.Close() }()

	notify(g.config.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "select_account")))

	select {
	case <-ctx.Done():
		return Credential{}, ErrFlowCanceled
	case result := <-results:
		if result.err != nil {
			return Credential{}, result.err
		}
		return g.exchange(ctx, result.code)
	}
}

func (g *googleBridge) RedirectURL() string {
	state, err := generateState()
	if err != nil {
		state = "studynexus"
	}
	return g.config.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "select_account"))
}

func (g *googleBridge) ExchangeCode(ctx context.Context, code string) (Credential, error) {
	if code == "" {
		return Credential{}, ErrFlowCanceled
	}
	return g.exchange(ctx, code)
}

// exchange swaps the authorization code for tokens and verifies the ID token
// before producing a credential.
func (g *googleBridge) exchange(ctx context.Context, code string) (Credential, error) {
	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return Credential{}, fmt.Errorf("%w: token exchange: %v", ErrProviderNetwork, err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return Credential{}, fmt.Errorf("%w: no id_token in response", ErrAssertionInvalid)
	}

	idToken, err := g.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return Credential{}, fmt.Errorf("%w: %v", ErrAssertionInvalid, err)
	}

	var claims googleClaims
	if err = idToken.Claims(&claims); err != nil {
		return Credential{}, fmt.Errorf("%w: parse claims: %v", ErrAssertionInvalid, err)
	}

	return Credential{
		Assertion: models.IdentityAssertion{
			Provider:    ProviderGoogle,
			Subject:     claims.Subject,
			Email:       claims.Email,
			DisplayName: claims.Name,
			PhotoURL:    claims.Picture,
		},
		IDToken: rawIDToken,
	}, nil
}

// generateState produces a cryptographically random state parameter.
func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// IsCanceled reports whether err means the user abandoned the flow rather
// than an infrastructure failure.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrFlowCanceled)
}
