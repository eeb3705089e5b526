// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
// incoming request does not include an "Authorization" header at all.
// Malformed non-empty headers are rejected by [utils.ParseBearerToken].
var ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

// User-facing messages for authentication failures. Unknown-email and
// wrong-password deliberately share one message so that login responses do
// not reveal which emails have accounts.
const (
	msgInvalidCredentials = "invalid email or password"
	msgUserGone           = "the user belonging to this token no longer exists"
	msgTokenExpired       = "your token has expired"
)
