// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package eligibility gates restricted models to an allow-list of
// (topic, country) combinations.
//
// The backend serves one restricted model variant (the Phi family).
// It may only be offered where its answers have been validated, which
// is a fixed topic -> countries table. Everything here is pure: the
// result depends only on the inputs and the table.
package eligibility
