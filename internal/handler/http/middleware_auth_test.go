package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/studynexus/studynexus/internal/service"
	"github.com/studynexus/studynexus/internal/store"
	"github.com/studynexus/studynexus/internal/utils"
	"github.com/studynexus/studynexus/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// probeHandler records whether the guarded handler ran and what identity the
// middleware put into the request context.
type probeHandler struct {
	called bool
	userID int64
	user   models.User
	hasID  bool
	hasUsr bool
}

func (p *probeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.called = true
	p.userID, p.hasID = utils.GetUserIDFromContext(r.Context())
	p.user, p.hasUsr = utils.GetUserFromContext(r.Context())
	w.WriteHeader(http.StatusOK)
}

func guardedRequest(t *testing.T, h *Handler, authHeader string) (*httptest.ResponseRecorder, *probeHandler) {
	t.Helper()

	probe := &probeHandler{}
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()

	h.auth(probe).ServeHTTP(rec, req)
	return rec, probe
}

func TestAuthMiddleware_Success(t *testing.T) {
	wantUser := models.User{UserID: 7, Email: "jane@example.com"}

	auth := &mockAuthService{
		parseTokenFn: func(_ context.Context, tokenString string) (models.Token, error) {
			require.Equal(t, "valid.jwt", tokenString)
			return models.Token{UserID: 7}, nil
		},
		userByIDFn: func(_ context.Context, userID int64) (models.User, error) {
			require.Equal(t, int64(7), userID)
			return wantUser, nil
		},
	}

	h := newHandlerWithAuth(t, auth, nil)
	rec, probe := guardedRequest(t, h, "Bearer valid.jwt")

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, probe.called)
	assert.True(t, probe.hasID)
	assert.Equal(t, int64(7), probe.userID)
	assert.True(t, probe.hasUsr)
	assert.Equal(t, wantUser, probe.user)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	h := newHandlerWithAuth(t, &mockAuthService{}, nil)
	rec, probe := guardedRequest(t, h, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, probe.called)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	h := newHandlerWithAuth(t, &mockAuthService{}, nil)
	rec, probe := guardedRequest(t, h, "Bearer")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, probe.called)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	auth := &mockAuthService{
		parseTokenFn: func(context.Context, string) (models.Token, error) {
			return models.Token{}, service.ErrTokenIsExpired
		},
	}

	h := newHandlerWithAuth(t, auth, nil)
	rec, probe := guardedRequest(t, h, "Bearer expired.jwt")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, probe.called)

	resp := decodeErrorResponse(t, rec)
	assert.Equal(t, msgTokenExpired, resp.Message)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	auth := &mockAuthService{
		parseTokenFn: func(context.Context, string) (models.Token, error) {
			return models.Token{}, errors.New("signature is invalid")
		},
	}

	h := newHandlerWithAuth(t, auth, nil)
	rec, probe := guardedRequest(t, h, "Bearer forged.jwt")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, probe.called)
}

func TestAuthMiddleware_UserGone(t *testing.T) {
	auth := &mockAuthService{
		parseTokenFn: func(context.Context, string) (models.Token, error) {
			return models.Token{UserID: 42}, nil
		},
		userByIDFn: func(context.Context, int64) (models.User, error) {
			return models.User{}, store.ErrNoUserWasFound
		},
	}

	h := newHandlerWithAuth(t, auth, nil)
	rec, probe := guardedRequest(t, h, "Bearer orphan.jwt")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, probe.called)

	resp := decodeErrorResponse(t, rec)
	assert.Equal(t, msgUserGone, resp.Message)
}

func TestAuthMiddleware_WrongScheme(t *testing.T) {
	h := newHandlerWithAuth(t, &mockAuthService{}, nil)
	rec, probe := guardedRequest(t, h, "Basic dXNlcjpwYXNz")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, probe.called)
}
