package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// ServerURL is the base URL of the studynexus API server.
	ServerURL string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// StatePath is the SQLite file holding persisted session state.
	StatePath string
}

// ClientIdentity holds settings for the interactive Google sign-in flow.
type ClientIdentity struct {
	// GoogleClientID is the OAuth client id for the installed-app flow.
	GoogleClientID string
	// GoogleClientSecret is the matching client secret.
	GoogleClientSecret string
	// RedirectPort is the loopback port used for the provider callback.
	RedirectPort int
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Adapter contains client transport addresses and timeouts.
	Adapter ClientAdapter
	// Storage contains client storage settings.
	Storage ClientStorage
	// Identity contains federated sign-in settings.
	Identity ClientIdentity
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			ServerURL:      cfg.Client.ServerURL,
			RequestTimeout: cfg.Client.RequestTimeout,
		},
		Storage: ClientStorage{
			StatePath: cfg.Client.StatePath,
		},
		Identity: ClientIdentity{
			GoogleClientID:     cfg.App.GoogleClientID,
			GoogleClientSecret: cfg.App.GoogleClientSecret,
			RedirectPort:       cfg.Client.RedirectPort,
		},
	}

	return clientCfg, clientCfg.validate()
}

func (c *ClientConfig) validate() error {
	if c.Adapter.ServerURL == "" {
		return fmt.Errorf("%w: server URL is required", ErrInvalidClientConfigs)
	}
	if c.Storage.StatePath == "" {
		return fmt.Errorf("%w: state path is required", ErrInvalidClientConfigs)
	}

	return nil
}
