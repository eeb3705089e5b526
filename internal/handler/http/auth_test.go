// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/studynexus/studynexus/internal/logger"
	"github.com/studynexus/studynexus/internal/service"
	"github.com/studynexus/studynexus/internal/store"
	"github.com/studynexus/studynexus/internal/utils"
	"github.com/studynexus/studynexus/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock AuthService
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerLocalFn         func(ctx context.Context, fullName, email, password string) (models.User, error)
	authenticateLocalFn     func(ctx context.Context, email, password string) (models.User, error)
	authenticateFederatedFn func(ctx context.Context, assertion models.IdentityAssertion) (models.User, error)
	userByIDFn              func(ctx context.Context, userID int64) (models.User, error)
	createTokenFn           func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn            func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) RegisterLocal(ctx context.Context, fullName, email, password string) (models.User, error) {
	return m.registerLocalFn(ctx, fullName, email, password)
}

func (m *mockAuthService) AuthenticateLocal(ctx context.Context, email, password string) (models.User, error) {
	return m.authenticateLocalFn(ctx, email, password)
}

func (m *mockAuthService) AuthenticateFederated(ctx context.Context, assertion models.IdentityAssertion) (models.User, error) {
	return m.authenticateFederatedFn(ctx, assertion)
}

func (m *mockAuthService) UserByID(ctx context.Context, userID int64) (models.User, error) {
	return m.userByIDFn(ctx, userID)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

// mockVerifier implements identity.AssertionVerifier.
type mockVerifier struct {
	verifyFn func(ctx context.Context, req models.GoogleAuthRequest) (models.IdentityAssertion, error)
}

func (m *mockVerifier) Verify(ctx context.Context, req models.GoogleAuthRequest) (models.IdentityAssertion, error) {
	return m.verifyFn(ctx, req)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func newHandlerWithAuth(t *testing.T, auth service.AuthService, verifier *mockVerifier) *Handler {
	t.Helper()
	if verifier == nil {
		verifier = &mockVerifier{
			verifyFn: func(_ context.Context, req models.GoogleAuthRequest) (models.IdentityAssertion, error) {
				return models.IdentityAssertion{
					Provider:    "google.com",
					Subject:     req.UID,
					Email:       req.Email,
					DisplayName: req.DisplayName,
				}, nil
			},
		}
	}
	return NewHandler(&service.Services{AuthService: auth}, verifier, logger.Nop())
}

func jsonBody(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func stubToken(signed string) models.Token {
	return models.Token{SignedString: signed}
}

func decodeAuthResponse(t *testing.T, rec *httptest.ResponseRecorder) models.AuthResponse {
	t.Helper()
	var resp models.AuthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func decodeErrorResponse(t *testing.T, rec *httptest.ResponseRecorder) models.Response {
	t.Helper()
	var resp models.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

var validRegister = models.RegisterRequest{
	FullName: "Jane Doe",
	Email:    "jane@example.com",
	Password: "secret123",
}

// ─────────────────────────────────────────────
// register
// ─────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	const signedToken = "signed.jwt.token"

	auth := &mockAuthService{
		registerLocalFn: func(_ context.Context, fullName, email, _ string) (models.User, error) {
			return models.User{UserID: 1, FullName: fullName, Email: email, Source: models.SourceLocal}, nil
		},
		createTokenFn: func(context.Context, models.User) (models.Token, error) {
			return stubToken(signedToken), nil
		},
	}

	h := newHandlerWithAuth(t, auth, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(jsonBody(t, validRegister)))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer "+signedToken, rec.Header().Get("Authorization"))

	resp := decodeAuthResponse(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, signedToken, resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, "jane@example.com", resp.User.Email)
}

func TestRegister_InvalidJSON(t *testing.T) {
	h := newHandlerWithAuth(t, &mockAuthService{}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_PolicyViolation(t *testing.T) {
	auth := &mockAuthService{
		registerLocalFn: func(context.Context, string, string, string) (models.User, error) {
			return models.User{}, service.ErrPolicyViolation
		},
	}

	h := newHandlerWithAuth(t, auth, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(jsonBody(t, validRegister)))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeErrorResponse(t, rec)
	assert.False(t, resp.Success)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	auth := &mockAuthService{
		registerLocalFn: func(context.Context, string, string, string) (models.User, error) {
			return models.User{}, store.ErrEmailAlreadyExists
		},
	}

	h := newHandlerWithAuth(t, auth, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(jsonBody(t, validRegister)))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeErrorResponse(t, rec)
	assert.Contains(t, resp.Message, "already exists")
}

// ─────────────────────────────────────────────
// login
// ─────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	const signedToken = "signed.jwt.token"

	auth := &mockAuthService{
		authenticateLocalFn: func(_ context.Context, email, _ string) (models.User, error) {
			return models.User{UserID: 3, Email: email}, nil
		},
		createTokenFn: func(context.Context, models.User) (models.Token, error) {
			return stubToken(signedToken), nil
		},
	}

	h := newHandlerWithAuth(t, auth, nil)
	body := jsonBody(t, models.LoginRequest{Email: "jane@example.com", Password: "secret123"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeAuthResponse(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, signedToken, resp.Token)
}

// unknown email, wrong password and federated-only accounts must all produce
// the same 401 body, so that login cannot be used to probe which emails have
// accounts or how they authenticate
func TestLogin_UniformRejection(t *testing.T) {
	failures := []struct {
		name string
		err  error
	}{
		{"unknown email", store.ErrNoUserWasFound},
		{"wrong password", service.ErrWrongPassword},
		{"federated-only account", service.ErrFederatedOnlyAccount},
	}

	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			auth := &mockAuthService{
				authenticateLocalFn: func(context.Context, string, string) (models.User, error) {
					return models.User{}, tt.err
				},
			}

			h := newHandlerWithAuth(t, auth, nil)
			body := jsonBody(t, models.LoginRequest{Email: "jane@example.com", Password: "secret123"})
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
			rec := httptest.NewRecorder()

			h.login(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			resp := decodeErrorResponse(t, rec)
			assert.Equal(t, msgInvalidCredentials, resp.Message)
		})
	}
}

func TestLogin_MissingFields(t *testing.T) {
	auth := &mockAuthService{
		authenticateLocalFn: func(context.Context, string, string) (models.User, error) {
			return models.User{}, service.ErrInvalidDataProvided
		},
	}

	h := newHandlerWithAuth(t, auth, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"jane@example.com"}`))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_InternalError(t *testing.T) {
	auth := &mockAuthService{
		authenticateLocalFn: func(context.Context, string, string) (models.User, error) {
			return models.User{}, errors.New("db timeout")
		},
	}

	h := newHandlerWithAuth(t, auth, nil)
	body := jsonBody(t, models.LoginRequest{Email: "jane@example.com", Password: "secret123"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeErrorResponse(t, rec)
	assert.NotContains(t, resp.Message, "db timeout", "internal details must not leak")
}

// ─────────────────────────────────────────────
// googleAuth
// ─────────────────────────────────────────────

func TestGoogleAuth_Success(t *testing.T) {
	const signedToken = "signed.jwt.token"

	var receivedAssertion models.IdentityAssertion
	auth := &mockAuthService{
		authenticateFederatedFn: func(_ context.Context, assertion models.IdentityAssertion) (models.User, error) {
			receivedAssertion = assertion
			return models.User{UserID: 10, Email: assertion.Email, Source: models.SourceFederated}, nil
		},
		createTokenFn: func(context.Context, models.User) (models.Token, error) {
			return stubToken(signedToken), nil
		},
	}

	h := newHandlerWithAuth(t, auth, nil)
	body := jsonBody(t, models.GoogleAuthRequest{
		IDToken: "raw-id-token",
		Email:   "jane@example.com",
		UID:     "google-sub-1",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/google", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.googleAuth(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "google-sub-1", receivedAssertion.Subject)

	resp := decodeAuthResponse(t, rec)
	assert.Equal(t, signedToken, resp.Token)
}

func TestGoogleAuth_RejectedAssertion(t *testing.T) {
	verifier := &mockVerifier{
		verifyFn: func(context.Context, models.GoogleAuthRequest) (models.IdentityAssertion, error) {
			return models.IdentityAssertion{}, errors.New("token signature mismatch")
		},
	}

	h := newHandlerWithAuth(t, &mockAuthService{}, verifier)
	body := jsonBody(t, models.GoogleAuthRequest{IDToken: "forged"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/google", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.googleAuth(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ─────────────────────────────────────────────
// me
// ─────────────────────────────────────────────

func TestMe_ReturnsUserFromContext(t *testing.T) {
	h := newHandlerWithAuth(t, &mockAuthService{}, nil)

	user := models.User{UserID: 3, Email: "jane@example.com", FullName: "Jane Doe", PasswordHash: "hash"}
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req = req.WithContext(context.WithValue(req.Context(), utils.UserCtxKey, user))
	rec := httptest.NewRecorder()

	h.me(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeAuthResponse(t, rec)
	require.NotNil(t, resp.User)
	assert.Equal(t, "jane@example.com", resp.User.Email)
	assert.NotContains(t, rec.Body.String(), "hash", "password hash must never be serialised")
}

func TestMe_NoUserInContext(t *testing.T) {
	h := newHandlerWithAuth(t, &mockAuthService{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()

	h.me(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
