// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the StudyNexus server.
//
// The primary abstraction is [ServerAdapter], which decouples the client-side
// session manager from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrUnauthorized] for 401, [ErrServerUnavailable] when the
// server cannot be reached at all).
package adapter

import (
	"context"

	"github.com/studynexus/studynexus/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the StudyNexus
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel values
// defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// authenticated requests. It should be called immediately after a
	// successful Register, Login, or GoogleAuth.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// ClearToken removes the stored bearer token. Subsequent authenticated
	// requests will fail with [ErrUnauthorized] until a new token is set.
	ClearToken()

	// Register sends a registration request to the server. On success it
	// stores the returned bearer token via SetToken and returns the created
	// user together with the signed token.
	Register(ctx context.Context, req models.RegisterRequest) (models.User, string, error)

	// Login authenticates with an email and password. On success it stores
	// the returned bearer token via SetToken and returns the user record
	// together with the signed token.
	Login(ctx context.Context, req models.LoginRequest) (models.User, string, error)

	// GoogleAuth submits a verified Google identity assertion to the server.
	// On success it stores the returned bearer token via SetToken and returns
	// the server-side user record together with the signed token.
	GoogleAuth(ctx context.Context, req models.GoogleAuthRequest) (models.User, string, error)

	// Me fetches the profile of the user identified by the stored bearer
	// token. Returns [ErrUnauthorized] (wrapped) if the token is missing,
	// expired, or no longer maps to an existing account.
	Me(ctx context.Context) (models.User, error)
}
