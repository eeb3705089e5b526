package client

import (
	"context"
	"fmt"

	"github.com/studynexus/studynexus/internal/adapter"
	"github.com/studynexus/studynexus/internal/config"
	"github.com/studynexus/studynexus/internal/identity"
	"github.com/studynexus/studynexus/internal/logger"
	"github.com/studynexus/studynexus/internal/service"
	"github.com/studynexus/studynexus/internal/store"
	"github.com/studynexus/studynexus/internal/tui"
)

type App struct {
	session service.ClientSessionService
	states  store.SessionStateStore
	tui     *tui.TUI
	logger  *logger.Logger
}

func NewApp(ctx context.Context, cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	serverAdapter := adapter.NewHTTPServerAdapter(adapter.HTTPClientConfig{
		BaseURL: cfg.Adapter.ServerURL,
		Timeout: cfg.Adapter.RequestTimeout,
	})

	states, err := store.NewSessionStateStore(cfg.Storage.StatePath)
	if err != nil {
		return nil, fmt.Errorf("create session state store: %w", err)
	}

	bridge, err := identity.NewGoogleBridge(ctx, identity.GoogleBridgeConfig{
		ClientID:     cfg.Identity.GoogleClientID,
		ClientSecret: cfg.Identity.GoogleClientSecret,
		RedirectPort: cfg.Identity.RedirectPort,
	}, log)
	if err != nil {
		// no network or no provider reachability; password sign-in and the
		// degraded profile still have to work
		log.Warn().Err(err).Msg("Google sign-in unavailable")
		bridge = unavailableBridge{err: err}
	}

	session := service.NewClientSessionManager(serverAdapter, bridge, states, log)

	return &App{
		session: session,
		states:  states,
		tui:     tui.New(session, log),
		logger:  log,
	}, nil
}

func (a *App) Run() error {
	defer func() {
		if err := a.states.Close(); err != nil {
			a.logger.Error().Err(err).Msg("closing session state store")
		}
	}()

	return a.tui.Run(context.Background())
}

// unavailableBridge stands in when the provider could not be contacted at
// startup. Every flow fails with the original discovery error.
type unavailableBridge struct {
	err error
}

func (b unavailableBridge) SignInInteractive(context.Context, func(string)) (identity.Credential, error) {
	return identity.Credential{}, b.err
}

func (b unavailableBridge) RedirectURL() string {
	return ""
}

func (b unavailableBridge) ExchangeCode(context.Context, string) (identity.Credential, error) {
	return identity.Credential{}, b.err
}
