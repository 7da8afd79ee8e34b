// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat is the conversation lifecycle manager.
//
// It owns the state machine of a chat session: creation against the
// backend (with an offline fallback so the user can always converse),
// the optimistic send/receive exchange, and restoring selection context
// when switching between past sessions. All state lives in the store;
// the backend is an injected Gateway so tests can substitute a fake
// without touching process-wide state.
package chat
