// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package catalog holds the country and topic vocabularies.
//
// Each vocabulary has a canonical key set (what the backend speaks) and
// a display-label set (what the UI shows), with a bidirectional mapping
// between them. Components accept either form and resolve through
// Label/CountryKey/TopicKey; unknown values pass through unchanged so a
// backend that grows new countries keeps working.
package catalog
