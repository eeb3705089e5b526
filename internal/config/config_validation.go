// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks invariants that hold for every role (server and client).
// Role-specific requirements live in [StructuredConfig.ValidateServer] and
// [GetClientConfig] so that a client run does not demand server secrets.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenDuration < 0 {
		return fmt.Errorf("%w: token duration must not be negative", ErrInvalidAppConfigs)
	}
	if cfg.Server.RequestTimeout < 0 {
		return fmt.Errorf("%w: request timeout must not be negative", ErrInvalidServerConfigs)
	}

	return nil
}

// ValidateServer checks the fields the server role cannot run without.
// Called from the server entrypoint after the merged config is built.
func (cfg *StructuredConfig) ValidateServer() error {
	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	}
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}

	return nil
}
