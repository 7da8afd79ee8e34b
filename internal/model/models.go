// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "strings"

// =============================================================================
// MODEL INFO TYPE
// =============================================================================

// Info describes a language model the backend can serve.
// Identity is ID; Name is the human-readable display name.
// Immutable once fetched.
type Info struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// =============================================================================
// DEFAULT MODEL REGISTRY
// =============================================================================

// DefaultModels is the fallback model list used when the backend is
// unreachable. It mirrors the models the backend ships with.
var DefaultModels = []Info{
	{ID: "gpt-4", Name: "GPT-4"},
	{ID: "gpt-3.5-turbo", Name: "GPT-3.5 Turbo"},
	{ID: "phi-2", Name: "Phi-2"},
}

// =============================================================================
// LOOKUP FUNCTIONS
// =============================================================================

// FindModel looks up a model by ID in the given list.
// Returns the Info and true if found.
func FindModel(models []Info, id string) (Info, bool) {
	for _, m := range models {
		if m.ID == id {
			return m, true
		}
	}
	return Info{}, false
}

// ModelName returns the display name for a model ID, falling back to
// the ID itself when the model is not in the list.
func ModelName(models []Info, id string) string {
	if m, ok := FindModel(models, id); ok {
		return m.Name
	}
	return id
}

// IsRestricted reports whether a model is gated to an allow-list of
// (topic, country) combinations. Restricted variants are identified by
// a name-pattern match on the model ID or display name.
func (m Info) IsRestricted() bool {
	return strings.Contains(strings.ToLower(m.ID), "phi") ||
		strings.Contains(strings.ToLower(m.Name), "phi")
}
