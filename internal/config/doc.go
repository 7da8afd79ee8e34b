// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for the Ready To Go
// client.
//
// Configuration sources, in order of precedence:
//   - READYTOGO_* environment variables
//   - ~/.readytogo/config.toml
//   - Built-in defaults
package config
