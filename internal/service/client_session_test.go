// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/studynexus/studynexus/internal/adapter"
	"github.com/studynexus/studynexus/internal/identity"
	"github.com/studynexus/studynexus/internal/logger"
	"github.com/studynexus/studynexus/internal/mock"
	"github.com/studynexus/studynexus/internal/store"
	"github.com/studynexus/studynexus/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestSessionManager builds a clientSessionManager over gomock doubles.
func newTestSessionManager(
	t *testing.T,
	ctrl *gomock.Controller,
) (
	*clientSessionManager,
	*mock.MockServerAdapter,
	*mock.MockBridge,
	*mock.MockSessionStateStore,
) {
	t.Helper()
	mockAdapter := mock.NewMockServerAdapter(ctrl)
	mockBridge := mock.NewMockBridge(ctrl)
	mockStates := mock.NewMockSessionStateStore(ctrl)

	mgr := NewClientSessionManager(mockAdapter, mockBridge, mockStates, logger.Nop()).(*clientSessionManager)
	return mgr, mockAdapter, mockBridge, mockStates
}

func expectAuthenticatedPersist(states *mock.MockSessionStateStore, token string) {
	states.EXPECT().Set(store.StateKeyToken, token).Return(nil)
	states.EXPECT().Set(store.StateKeyUser, gomock.Any()).Return(nil)
	states.EXPECT().Set(store.StateKeyDegradedProfile, gomock.Any()).Return(nil)
}

// ─────────────────────────────────────────────
// Restore
// ─────────────────────────────────────────────

func TestClientSession_Restore_ValidToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr, mockAdapter, _, mockStates := newTestSessionManager(t, ctrl)
	ctx := context.Background()

	user := models.User{UserID: 1, Email: "jane@example.com", FullName: "Jane Doe"}

	mockStates.EXPECT().Get(store.StateKeyToken).Return("stored-token", nil)
	mockAdapter.EXPECT().SetToken("stored-token")
	mockAdapter.EXPECT().Me(ctx).Return(user, nil)
	mockAdapter.EXPECT().SetToken("stored-token")
	expectAuthenticatedPersist(mockStates, "stored-token")

	snap := mgr.Restore(ctx)

	assert.Equal(t, StateAuthenticated, snap.State)
	require.NotNil(t, snap.User)
	assert.Equal(t, "jane@example.com", snap.User.Email)
	assert.Equal(t, "stored-token", snap.Token)
}

func TestClientSession_Restore_RejectedTokenIsDropped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr, mockAdapter, _, mockStates := newTestSessionManager(t, ctrl)
	ctx := context.Background()

	mockStates.EXPECT().Get(store.StateKeyToken).Return("dead-token", nil)
	mockAdapter.EXPECT().SetToken("dead-token")
	mockAdapter.EXPECT().Me(ctx).Return(models.User{}, adapter.ErrUnauthorized)
	mockStates.EXPECT().Delete(store.StateKeyToken).Return(nil)
	mockStates.EXPECT().Delete(store.StateKeyUser).Return(nil)
	mockStates.EXPECT().Get(store.StateKeyDegradedProfile).Return("", store.ErrStateKeyNotFound)
	mockStates.EXPECT().Get(store.StateKeyUser).Return("", store.ErrStateKeyNotFound)
	mockStates.EXPECT().Get(store.StateKeyPendingRedirect).Return("", store.ErrStateKeyNotFound)

	snap := mgr.Restore(ctx)

	assert.Equal(t, StateUnauthenticated, snap.State)
	assert.Nil(t, snap.User)
	assert.Empty(t, snap.Token)
}

// a rejected token drops the session, but a stored degraded profile still
// restores the cached identity instead of signing the user out
func TestClientSession_Restore_RejectedToken_KeepsDegradedProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr, mockAdapter, _, mockStates := newTestSessionManager(t, ctrl)
	ctx := context.Background()

	profile := models.LocalProfile{Email: "jane@example.com", DisplayName: "Jane Doe", Provider: "google.com"}
	raw, err := json.Marshal(profile)
	require.NoError(t, err)

	mockStates.EXPECT().Get(store.StateKeyToken).Return("dead-token", nil)
	mockAdapter.EXPECT().SetToken("dead-token")
	mockAdapter.EXPECT().Me(ctx).Return(models.User{}, adapter.ErrUnauthorized)
	mockStates.EXPECT().Delete(store.StateKeyToken).Return(nil)
	mockStates.EXPECT().Delete(store.StateKeyUser).Return(nil)
	mockStates.EXPECT().Get(store.StateKeyDegradedProfile).Return(string(raw), nil)
	mockAdapter.EXPECT().ClearToken()
	mockStates.EXPECT().Set(store.StateKeyDegradedProfile, gomock.Any()).Return(nil)

	snap := mgr.Restore(ctx)

	assert.Equal(t, StateDegraded, snap.State)
	require.NotNil(t, snap.Profile)
	assert.Equal(t, "jane@example.com", snap.Profile.Email)
}

// a degraded profile left behind by a provider-vouched sign-in with the
// server down must survive a process restart even though no token exists
func TestClientSession_Restore_DegradedProfileWithoutToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr, mockAdapter, _, mockStates := newTestSessionManager(t, ctrl)

	profile := models.LocalProfile{Email: "jane@example.com", DisplayName: "Jane Doe", Provider: "google.com"}
	raw, err := json.Marshal(profile)
	require.NoError(t, err)

	mockStates.EXPECT().Get(store.StateKeyToken).Return("", store.ErrStateKeyNotFound)
	mockStates.EXPECT().Get(store.StateKeyDegradedProfile).Return(string(raw), nil)
	mockAdapter.EXPECT().ClearToken()
	mockStates.EXPECT().Set(store.StateKeyDegradedProfile, gomock.Any()).Return(nil)

	snap := mgr.Restore(context.Background())

	assert.Equal(t, StateDegraded, snap.State)
	require.NotNil(t, snap.Profile)
	assert.Equal(t, "jane@example.com", snap.Profile.Email)
	assert.Empty(t, snap.Token, "degraded mode never exposes a token")
}

// a stored token plus an unreachable server means degraded, not signed out
func TestClientSession_Restore_ServerDown_Degrades(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr, mockAdapter, _, mockStates := newTestSessionManager(t, ctrl)
	ctx := context.Background()

	profile := models.LocalProfile{Email: "jane@example.com", DisplayName: "Jane Doe", Provider: "google.com"}
	raw, err := json.Marshal(profile)
	require.NoError(t, err)

	mockStates.EXPECT().Get(store.StateKeyToken).Return("stored-token", nil)
	mockAdapter.EXPECT().SetToken("stored-token")
	mockAdapter.EXPECT().Me(ctx).Return(models.User{}, adapter.ErrServerUnavailable)
	mockStates.EXPECT().Get(store.StateKeyDegradedProfile).Return(string(raw), nil)
	mockAdapter.EXPECT().ClearToken()
	mockStates.EXPECT().Set(store.StateKeyDegradedProfile, gomock.Any()).Return(nil)

	snap := mgr.Restore(ctx)

	assert.Equal(t, StateDegraded, snap.State)
	require.NotNil(t, snap.Profile)
	assert.Equal(t, "jane@example.com", snap.Profile.Email)
	assert.Empty(t, snap.Token, "degraded mode never exposes a token")
}

func TestClientSession_Restore_PendingRedirectMarker(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr, _, mockBridge, mockStates := newTestSessionManager(t, ctrl)

	mockStates.EXPECT().Get(store.StateKeyToken).Return("", store.ErrStateKeyNotFound)
	mockStates.EXPECT().Get(store.StateKeyDegradedProfile).Return("", store.ErrStateKeyNotFound)
	mockStates.EXPECT().Get(store.StateKeyUser).Return("", store.ErrStateKeyNotFound)
	mockStates.EXPECT().Get(store.StateKeyPendingRedirect).Return("1", nil)
	mockBridge.EXPECT().RedirectURL().Return("http://127.0.0.1:43117/callback")

	snap := mgr.Restore(context.Background())

	assert.Equal(t, StatePendingExternalRedirect, snap.State)
	assert.Equal(t, "http://127.0.0.1:43117/callback", snap.RedirectURL)
}

// ─────────────────────────────────────────────
// Local sign-in
// ─────────────────────────────────────────────

func TestClientSession_SubmitLocalLogin_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr, mockAdapter, _, mockStates := newTestSessionManager(t, ctrl)
	ctx := context.Background()

	user := models.User{UserID: 1, Email: "jane@example.com"}

	mockAdapter.EXPECT().Login(ctx, models.LoginRequest{Email: "jane@example.com", Password: "secret123"}).
		Return(user, "fresh-token", nil)
	mockAdapter.EXPECT().SetToken("fresh-token")
	expectAuthenticatedPersist(mockStates, "fresh-token")

	snap, err := mgr.SubmitLocalLogin(ctx, "jane@example.com", "secret123")
	require.NoError(t, err)

	assert.Equal(t, StateAuthenticated, snap.State)
	assert.Equal(t, "fresh-token", snap.Token)
}

func TestClientSession_SubmitLocalLogin_BadCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr, mockAdapter, _, _ := newTestSessionManager(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().Login(ctx, gomock.Any()).
		Return(models.User{}, "", adapter.ErrUnauthorized)

	snap, err := mgr.SubmitLocalLogin(ctx, "jane@example.com", "wrongpass1")

	assert.ErrorIs(t, err, ErrSignInFailed)
	assert.Equal(t, StateUnauthenticated, snap.State)
}

// offline sign-in with a cached profile for the same email degrades instead
// of failing
func TestClientSession_SubmitLocalLogin_ServerDown_Degrades(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr, mockAdapter, _, mockStates := newTestSessionManager(t, ctrl)
	ctx := context.Background()

	profile := models.LocalProfile{Email: "jane@example.com", DisplayName: "Jane Doe", Provider: "password"}
	raw, err := json.Marshal(profile)
	require.NoError(t, err)

	mockAdapter.EXPECT().Login(ctx, gomock.Any()).
		Return(models.User{}, "", adapter.ErrServerUnavailable)
	mockStates.EXPECT().Get(store.StateKeyDegradedProfile).Return(string(raw), nil)
	mockAdapter.EXPECT().ClearToken()
	mockStates.EXPECT().Set(store.StateKeyDegradedProfile, gomock.Any()).Return(nil)

	snap, err := mgr.SubmitLocalLogin(ctx, "Jane@Example.com", "secret123")
	require.NoError(t, err)

	assert.Equal(t, StateDegraded, snap.State)
	require.NotNil(t, snap.Profile)
	assert.Equal(t, "jane@example.com", snap.Profile.Email)
}

func TestClientSession_SubmitLocalLogin_ServerDown_NoCache_Fails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr, mockAdapter, _, mockStates := newTestSessionManager(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().Login(ctx, gomock.Any()).
		Return(models.User{}, "", adapter.ErrServerUnavailable)
	mockStates.EXPECT().Get(store.StateKeyDegradedProfile).Return("", store.ErrStateKeyNotFound)
	mockStates.EXPECT().Get(store.StateKeyUser).Return("", store.ErrStateKeyNotFound)

	snap, err := mgr.SubmitLocalLogin(ctx, "jane@example.com", "secret123")

	assert.ErrorIs(t, err, ErrSignInFailed)
	assert.Equal(t, StateUnauthenticated, snap.State)
}

// ─────────────────────────────────────────────
// Federated sign-in
// ─────────────────────────────────────────────

var testCredential = identity.Credential{
	Assertion: models.IdentityAssertion{
		Provider:    "google.com",
		Subject:     "google-sub-1",
		Email:       "jane@example.com",
		DisplayName: "Jane Doe",
	},
	IDToken: "raw-id-token",
}

func TestClientSession_LaunchFederatedLogin_InteractiveSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr, mockAdapter, mockBridge, mockStates := newTestSessionManager(t, ctrl)
	ctx := context.Background()

	user := models.User{UserID: 10, Email: "jane@example.com", Source: models.SourceFederated}

	mockBridge.EXPECT().SignInInteractive(ctx, gomock.Any()).Return(testCredential, nil)
	mockAdapter.EXPECT().GoogleAuth(ctx, models.GoogleAuthRequest{
		IDToken:     "raw-id-token",
		Email:       "jane@example.com",
		DisplayName: "Jane Doe",
		UID:         "google-sub-1",
	}).Return(user, "google-token", nil)
	mockStates.EXPECT().Delete(store.StateKeyPendingRedirect).Return(nil)
	mockAdapter.EXPECT().SetToken("google-token")
	expectAuthenticatedPersist(mockStates, "google-token")

	snap, err := mgr.LaunchFederatedLogin(ctx, func(string) {})
	require.NoError(t, err)

	assert.Equal(t, StateAuthenticated, snap.State)
	assert.Equal(t, "google-token", snap.Token)
}

// the popup-blocked condition hands off to the redirect flow instead of
// failing the sign-in
func TestClientSession_LaunchFederatedLogin_PopupBlocked_FallsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr, _, mockBridge, mockStates := newTestSessionManager(t, ctrl)
	ctx := context.Background()

	mockBridge.EXPECT().SignInInteractive(ctx, gomock.Any()).
		Return(identity.Credential{}, identity.ErrPopupBlocked)
	mockStates.EXPECT().Set(store.StateKeyPendingRedirect, "1").Return(nil)
	mockBridge.EXPECT().RedirectURL().Return("http://127.0.0.1:43117/callback")

	snap, err := mgr.LaunchFederatedLogin(ctx, func(string) {})
	require.NoError(t, err)

	assert.Equal(t, StatePendingExternalRedirect, snap.State)
	assert.Equal(t, "http://127.0.0.1:43117/callback", snap.RedirectURL)
	assert.NotEmpty(t, snap.Notice)
}

func TestClientSession_LaunchFederatedLogin_Canceled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr, _, mockBridge, _ := newTestSessionManager(t, ctrl)
	ctx := context.Background()

	mockBridge.EXPECT().SignInInteractive(ctx, gomock.Any()).
		Return(identity.Credential{}, identity.ErrFlowCanceled)

	snap, err := mgr.LaunchFederatedLogin(ctx, func(string) {})

	assert.ErrorIs(t, err, ErrSignInFailed)
	assert.True(t, identity.IsCanceled(err), "cancellation must survive wrapping")
	assert.Equal(t, StateUnauthenticated, snap.State)
}

func TestClientSession_CompleteRedirect_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr, mockAdapter, mockBridge, mockStates := newTestSessionManager(t, ctrl)
	ctx := context.Background()

	mgr.state = StatePendingExternalRedirect

	user := models.User{UserID: 10, Email: "jane@example.com"}

	mockBridge.EXPECT().ExchangeCode(ctx, "auth-code-1").Return(testCredential, nil)
	mockAdapter.EXPECT().GoogleAuth(ctx, gomock.Any()).Return(user, "google-token", nil)
	mockStates.EXPECT().Delete(store.StateKeyPendingRedirect).Return(nil)
	mockAdapter.EXPECT().SetToken("google-token")
	expectAuthenticatedPersist(mockStates, "google-token")

	snap, err := mgr.CompleteRedirect(ctx, "auth-code-1")
	require.NoError(t, err)
	assert.Equal(t, StateAuthenticated, snap.State)
}

func TestClientSession_CompleteRedirect_BadCode_StaysPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr, _, mockBridge, _ := newTestSessionManager(t, ctrl)
	ctx := context.Background()

	mgr.state = StatePendingExternalRedirect

	mockBridge.EXPECT().ExchangeCode(ctx, "bogus").
		Return(identity.Credential{}, identity.ErrAssertionInvalid)

	snap, err := mgr.CompleteRedirect(ctx, "bogus")

	assert.ErrorIs(t, err, ErrSignInFailed)
	assert.Equal(t, StatePendingExternalRedirect, snap.State, "a bad code must not abandon the flow")
}

func TestClientSession_CompleteRedirect_NotPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr, _, _, _ := newTestSessionManager(t, ctrl)

	_, err := mgr.CompleteRedirect(context.Background(), "auth-code-1")
	assert.ErrorIs(t, err, ErrNoPendingRedirect)
}

// the provider confirmed the identity but the server is down: degrade, do
// not fall back to unauthenticated
func TestClientSession_CompleteRedirect_ServerDown_Degrades(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr, mockAdapter, mockBridge, mockStates := newTestSessionManager(t, ctrl)
	ctx := context.Background()

	mgr.state = StatePendingExternalRedirect

	mockBridge.EXPECT().ExchangeCode(ctx, "auth-code-1").Return(testCredential, nil)
	mockAdapter.EXPECT().GoogleAuth(ctx, gomock.Any()).
		Return(models.User{}, "", adapter.ErrServerUnavailable)
	mockStates.EXPECT().Delete(store.StateKeyPendingRedirect).Return(nil)
	mockAdapter.EXPECT().ClearToken()
	mockStates.EXPECT().Set(store.StateKeyDegradedProfile, gomock.Any()).Return(nil)

	snap, err := mgr.CompleteRedirect(ctx, "auth-code-1")
	require.NoError(t, err)

	assert.Equal(t, StateDegraded, snap.State)
	require.NotNil(t, snap.Profile)
	assert.Equal(t, "jane@example.com", snap.Profile.Email)
	assert.Equal(t, "google.com", snap.Profile.Provider)
	assert.Empty(t, snap.Token)
}

// ─────────────────────────────────────────────
// Logout
// ─────────────────────────────────────────────

func TestClientSession_Logout_ClearsEverything(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr, mockAdapter, _, mockStates := newTestSessionManager(t, ctrl)

	mgr.state = StateAuthenticated
	mgr.user = models.User{UserID: 1, Email: "jane@example.com"}
	mgr.token = "live-token"

	mockAdapter.EXPECT().ClearToken()
	mockStates.EXPECT().Delete(store.StateKeyToken).Return(nil)
	mockStates.EXPECT().Delete(store.StateKeyUser).Return(nil)
	mockStates.EXPECT().Delete(store.StateKeyDegradedProfile).Return(nil)
	mockStates.EXPECT().Delete(store.StateKeyPendingRedirect).Return(nil)

	snap := mgr.Logout(context.Background())

	assert.Equal(t, StateUnauthenticated, snap.State)
	assert.Nil(t, snap.User)
	assert.Empty(t, snap.Token)
}
