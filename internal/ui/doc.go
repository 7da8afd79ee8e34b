// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui is the terminal render adapter for the Ready To Go
// client.
//
// It consumes state-change notifications from the store (forwarded as
// Bubble Tea messages) and paints the visible UI. The core never
// touches visual elements; the UI never mutates state except through
// the lifecycle manager.
package ui
