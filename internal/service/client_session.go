// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/studynexus/studynexus/internal/adapter"
	"github.com/studynexus/studynexus/internal/identity"
	"github.com/studynexus/studynexus/internal/logger"
	"github.com/studynexus/studynexus/internal/store"
	"github.com/studynexus/studynexus/models"
)

// clientSessionManager is the single owner of the client session state.
// All mutation happens under mu; the persisted snapshot in the state store
// is written before the in-memory transition completes, so a crash never
// leaves the store ahead of or behind the observable state.
type clientSessionManager struct {
	adapter adapter.ServerAdapter
	bridge  identity.Bridge
	states  store.SessionStateStore
	logger  *logger.Logger

	mu          sync.Mutex
	state       SessionState
	user        models.User
	token       string
	profile     models.LocalProfile
	redirectURL string
	notice      string
}

func NewClientSessionManager(serverAdapter adapter.ServerAdapter, bridge identity.Bridge, states store.SessionStateStore, logger *logger.Logger) ClientSessionService {
	return &clientSessionManager{
		adapter: serverAdapter,
		bridge:  bridge,
		states:  states,
		logger:  logger,
		state:   StateUnauthenticated,
	}
}

func (m *clientSessionManager) Snapshot() SessionSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *clientSessionManager) snapshotLocked() SessionSnapshot {
	snap := SessionSnapshot{State: m.state, Notice: m.notice}
	switch m.state {
	case StateAuthenticated:
		u := m.user
		snap.User = &u
		snap.Token = m.token
	case StateDegraded:
		p := m.profile
		snap.Profile = &p
	case StatePendingExternalRedirect:
		snap.RedirectURL = m.redirectURL
	}
	return snap
}

func (m *clientSessionManager) Restore(ctx context.Context) SessionSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	// a stored token outranks every other marker
	degradedNotice := "no active session, showing cached profile"
	token, err := m.states.Get(store.StateKeyToken)
	if err == nil && token != "" {
		m.adapter.SetToken(token)

		user, meErr := m.adapter.Me(ctx)
		switch {
		case meErr == nil:
			m.becomeAuthenticatedLocked(user, token, "")
			return m.snapshotLocked()
		case errors.Is(meErr, adapter.ErrServerUnavailable):
			// the token stays on disk so the next launch can retry
			// revalidation once the server is back
			m.logger.Warn().Err(meErr).Msg("server unreachable during token revalidation")
			degradedNotice = "server unreachable, showing cached profile"
		default:
			// the token is dead; forget it along with the cached user snapshot
			m.logger.Info().Err(meErr).Msg("stored session token rejected")
			m.clearStoredSessionLocked()
		}
	}

	// no live session, but a surviving degraded profile still names the user
	if profile, ok := m.cachedProfileLocked(); ok {
		m.becomeDegradedLocked(profile, degradedNotice)
		return m.snapshotLocked()
	}

	if _, err = m.states.Get(store.StateKeyPendingRedirect); err == nil {
		m.state = StatePendingExternalRedirect
		m.redirectURL = m.bridge.RedirectURL()
		m.notice = "finish signing in with Google in your browser"
		return m.snapshotLocked()
	}

	m.state = StateUnauthenticated
	m.notice = ""
	return m.snapshotLocked()
}

func (m *clientSessionManager) SubmitRegistration(ctx context.Context, fullName, email, password string) (SessionSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, token, err := m.adapter.Register(ctx, models.RegisterRequest{
		FullName: fullName,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return m.snapshotLocked(), fmt.Errorf("%w: %v", ErrSignInFailed, err)
	}

	m.becomeAuthenticatedLocked(user, token, "")
	return m.snapshotLocked(), nil
}

func (m *clientSessionManager) SubmitLocalLogin(ctx context.Context, email, password string) (SessionSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, token, err := m.adapter.Login(ctx, models.LoginRequest{Email: email, Password: password})
	if err == nil {
		m.becomeAuthenticatedLocked(user, token, "")
		return m.snapshotLocked(), nil
	}

	if errors.Is(err, adapter.ErrServerUnavailable) {
		if profile, ok := m.cachedProfileLocked(); ok && strings.EqualFold(profile.Email, email) {
			m.becomeDegradedLocked(profile, "server unreachable, continuing offline with cached profile")
			return m.snapshotLocked(), nil
		}
	}

	return m.snapshotLocked(), fmt.Errorf("%w: %v", ErrSignInFailed, err)
}

func (m *clientSessionManager) LaunchFederatedLogin(ctx context.Context, notify func(authURL string)) (SessionSnapshot, error) {
	cred, err := m.bridge.SignInInteractive(ctx, notify)

	m.mu.Lock()
	defer m.mu.Unlock()

	switch {
	case err == nil:
		return m.finishFederatedLocked(ctx, cred)
	case errors.Is(err, identity.ErrPopupBlocked):
		// interactive flow could not start; hand off to the out-of-band
		// redirect flow instead of failing the sign-in
		m.logger.Warn().Err(err).Msg("interactive sign-in unavailable, falling back to redirect flow")
		if setErr := m.states.Set(store.StateKeyPendingRedirect, "1"); setErr != nil {
			m.logger.Error().Err(setErr).Msg("persisting pending redirect marker")
		}
		m.state = StatePendingExternalRedirect
		m.redirectURL = m.bridge.RedirectURL()
		m.notice = "browser pop-up unavailable, open the link and paste the code back here"
		return m.snapshotLocked(), nil
	default:
		// the cause stays in the chain so the UI can tell a user-canceled
		// flow apart from a real failure
		return m.snapshotLocked(), fmt.Errorf("%w: %w", ErrSignInFailed, err)
	}
}

func (m *clientSessionManager) CompleteRedirect(ctx context.Context, code string) (SessionSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StatePendingExternalRedirect {
		return m.snapshotLocked(), ErrNoPendingRedirect
	}

	cred, err := m.bridge.ExchangeCode(ctx, code)
	if err != nil {
		// the pending flow survives a bad code so the user can retry
		return m.snapshotLocked(), fmt.Errorf("%w: %w", ErrSignInFailed, err)
	}

	return m.finishFederatedLocked(ctx, cred)
}

func (m *clientSessionManager) CancelRedirect() SessionSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.states.Delete(store.StateKeyPendingRedirect); err != nil {
		m.logger.Error().Err(err).Msg("deleting pending redirect marker")
	}
	m.state = StateUnauthenticated
	m.redirectURL = ""
	m.notice = ""
	return m.snapshotLocked()
}

func (m *clientSessionManager) Logout(ctx context.Context) SessionSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.adapter.ClearToken()
	m.clearStoredSessionLocked()
	if err := m.states.Delete(store.StateKeyDegradedProfile); err != nil {
		m.logger.Error().Err(err).Msg("deleting degraded profile")
	}
	if err := m.states.Delete(store.StateKeyPendingRedirect); err != nil {
		m.logger.Error().Err(err).Msg("deleting pending redirect marker")
	}

	m.state = StateUnauthenticated
	m.user = models.User{}
	m.token = ""
	m.profile = models.LocalProfile{}
	m.redirectURL = ""
	m.notice = "signed out"
	return m.snapshotLocked()
}

// finishFederatedLocked forwards a provider-verified credential to the
// server. An unreachable server degrades the session instead of discarding
// the confirmed identity.
func (m *clientSessionManager) finishFederatedLocked(ctx context.Context, cred identity.Credential) (SessionSnapshot, error) {
	user, token, err := m.adapter.GoogleAuth(ctx, models.GoogleAuthRequest{
		IDToken:     cred.IDToken,
		Email:       cred.Assertion.Email,
		DisplayName: cred.Assertion.DisplayName,
		PhotoURL:    cred.Assertion.PhotoURL,
		UID:         cred.Assertion.Subject,
	})

	switch {
	case err == nil:
		if delErr := m.states.Delete(store.StateKeyPendingRedirect); delErr != nil {
			m.logger.Error().Err(delErr).Msg("deleting pending redirect marker")
		}
		m.becomeAuthenticatedLocked(user, token, "")
		return m.snapshotLocked(), nil
	case errors.Is(err, adapter.ErrServerUnavailable):
		// the provider vouched for the identity; keep it on screen even
		// though no session token could be minted
		if delErr := m.states.Delete(store.StateKeyPendingRedirect); delErr != nil {
			m.logger.Error().Err(delErr).Msg("deleting pending redirect marker")
		}
		m.becomeDegradedLocked(models.LocalProfile{
			Email:       cred.Assertion.Email,
			DisplayName: cred.Assertion.DisplayName,
			PhotoURL:    cred.Assertion.PhotoURL,
			Provider:    cred.Assertion.Provider,
		}, "signed in with Google, but the server is unreachable")
		return m.snapshotLocked(), nil
	default:
		return m.snapshotLocked(), fmt.Errorf("%w: %v", ErrSignInFailed, err)
	}
}

func (m *clientSessionManager) becomeAuthenticatedLocked(user models.User, token string, notice string) {
	m.state = StateAuthenticated
	m.user = user
	m.token = token
	m.redirectURL = ""
	m.notice = notice
	m.adapter.SetToken(token)

	if err := m.states.Set(store.StateKeyToken, token); err != nil {
		m.logger.Error().Err(err).Msg("persisting session token")
	}
	if raw, err := json.Marshal(user); err == nil {
		if setErr := m.states.Set(store.StateKeyUser, string(raw)); setErr != nil {
			m.logger.Error().Err(setErr).Msg("persisting user snapshot")
		}
	}
	// refresh the degraded fallback alongside the live session
	profile := profileFromUser(user)
	if raw, err := json.Marshal(profile); err == nil {
		if setErr := m.states.Set(store.StateKeyDegradedProfile, string(raw)); setErr != nil {
			m.logger.Error().Err(setErr).Msg("persisting degraded profile")
		}
	}
}

func (m *clientSessionManager) becomeDegradedLocked(profile models.LocalProfile, notice string) {
	m.state = StateDegraded
	m.profile = profile
	m.user = models.User{}
	// degraded mode never holds a token: nothing here may act as a credential
	m.token = ""
	m.adapter.ClearToken()
	m.redirectURL = ""
	m.notice = notice

	if raw, err := json.Marshal(profile); err == nil {
		if setErr := m.states.Set(store.StateKeyDegradedProfile, string(raw)); setErr != nil {
			m.logger.Error().Err(setErr).Msg("persisting degraded profile")
		}
	}
}

// cachedProfileLocked loads the degraded fallback profile, deriving one from
// the cached user snapshot when only that is present.
func (m *clientSessionManager) cachedProfileLocked() (models.LocalProfile, bool) {
	if raw, err := m.states.Get(store.StateKeyDegradedProfile); err == nil {
		var profile models.LocalProfile
		if jsonErr := json.Unmarshal([]byte(raw), &profile); jsonErr == nil && profile.Email != "" {
			return profile, true
		}
	}

	if raw, err := m.states.Get(store.StateKeyUser); err == nil {
		var user models.User
		if jsonErr := json.Unmarshal([]byte(raw), &user); jsonErr == nil && user.Email != "" {
			return profileFromUser(user), true
		}
	}

	return models.LocalProfile{}, false
}

func (m *clientSessionManager) clearStoredSessionLocked() {
	if err := m.states.Delete(store.StateKeyToken); err != nil {
		m.logger.Error().Err(err).Msg("deleting stored token")
	}
	if err := m.states.Delete(store.StateKeyUser); err != nil {
		m.logger.Error().Err(err).Msg("deleting stored user snapshot")
	}
}

func profileFromUser(user models.User) models.LocalProfile {
	provider := "password"
	if user.ProviderSubject != "" {
		provider = identity.ProviderGoogle
	}
	return models.LocalProfile{
		Email:       user.Email,
		DisplayName: user.FullName,
		PhotoURL:    user.PhotoURL,
		Provider:    provider,
	}
}
