package adapter

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/studynexus/studynexus/models"

	"github.com/go-resty/resty/v2"
)

type HTTPClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

type httpServerAdapter struct {
	client *resty.Client

	mu    sync.RWMutex
	token string
}

func NewHTTPServerAdapter(cfg HTTPClientConfig) ServerAdapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &httpServerAdapter{client: cli}
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) ClearToken() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = ""
}

func (h *httpServerAdapter) Register(ctx context.Context, req models.RegisterRequest) (models.User, string, error) {
	return h.authenticate(ctx, "/api/auth/register", req)
}

func (h *httpServerAdapter) Login(ctx context.Context, req models.LoginRequest) (models.User, string, error) {
	return h.authenticate(ctx, "/api/auth/login", req)
}

func (h *httpServerAdapter) GoogleAuth(ctx context.Context, req models.GoogleAuthRequest) (models.User, string, error) {
	return h.authenticate(ctx, "/api/auth/google", req)
}

// authenticate posts a credential payload to path and decodes the auth
// envelope. On success the received bearer token replaces the stored one.
func (h *httpServerAdapter) authenticate(ctx context.Context, path string, body any) (models.User, string, error) {
	var result models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&result).
		Post(path)
	if err != nil {
		return models.User{}, "", fmt.Errorf("%w: %v", ErrServerUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, "", err
	}

	if result.Token == "" {
		return models.User{}, "", ErrEmptyTokenReceived
	}
	if result.User == nil {
		return models.User{}, "", fmt.Errorf("auth response missing user: %s", path)
	}

	h.SetToken(result.Token)
	return *result.User, result.Token, nil
}

func (h *httpServerAdapter) Me(ctx context.Context) (models.User, error) {
	token := h.Token()
	if token == "" {
		return models.User{}, fmt.Errorf("%w: no token set", ErrUnauthorized)
	}

	var result models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+token).
		SetResult(&result).
		Get("/api/auth/me")
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrServerUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	if result.User == nil {
		return models.User{}, fmt.Errorf("me response missing user")
	}

	return *result.User, nil
}
