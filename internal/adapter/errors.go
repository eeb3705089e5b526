package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")

	// ErrServerUnavailable marks failures where the server could not be
	// reached at all or answered with a gateway-level error. Callers use it
	// to decide whether a cached profile may still be shown offline.
	ErrServerUnavailable = errors.New("server unavailable")

	ErrEmptyTokenReceived = errors.New("empty token received from server")
)
