// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It wires the terminal UI, the session manager, the server adapter and the
// durable session state store into a single process lifecycle.
package client
