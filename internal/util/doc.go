// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers: UTF-8 safe string
// truncation for the UI and atomic file writes for config and history
// files.
package util
