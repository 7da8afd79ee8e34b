// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gateway provides the HTTP client for the Ready To Go backend.
//
// The contract is split by failure policy. Read operations (countries,
// topics, models, examples, sources) fail soft: on any transport error
// or non-2xx status they log a warning and return fixed defaults, so
// UI construction never blocks on backend availability. Write
// operations (create conversation, send message) fail hard and leave
// fallback policy to the caller.
//
// Every request carries a context and a bounded timeout; a timeout
// fails exactly like any other network error.
package gateway
