// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store owns the mutable client state: the current selection,
// the list of chat sessions, the active session pointer and the
// loading flag.
//
// All mutation goes through Store methods behind a single mutex; the
// chat lifecycle manager is the only writer and the render layer is
// read-only. State changes are pushed to a Listener so the UI always
// reflects the store, never the other way around. Listener callbacks
// fire outside the lock.
package store
