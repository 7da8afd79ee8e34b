// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package eligibility

import (
	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/catalog"
	"github.com/SKN-4rdPJT-6Team/Ready-To-Go/internal/model"
)

// =============================================================================
// ALLOW-LIST TABLE
// =============================================================================

// allowedCombinations maps a canonical topic key to the country keys
// where restricted models may be offered.
var allowedCombinations = map[string][]string{
	"visa":        {"Australia", "UK", "Canada", "America", "Japan"},
	"insurance":   {"Italy", "Australia", "America"},
	"immigration": {"Australia", "Austria", "Canada", "Singapore", "UK"},
	"safety":      {"China", "UK", "Philippines", "Japan", "Australia"},
}

// =============================================================================
// ELIGIBILITY CHECKS
// =============================================================================

// IsRestrictedModelAllowed reports whether restricted models may be
// offered for the given country and topic. Inputs are accepted in
// either the canonical or the display vocabulary.
func IsRestrictedModelAllowed(country, topic string) bool {
	countryKey := catalog.CountryKey(country)
	topicKey := catalog.TopicKey(topic)

	for _, allowed := range allowedCombinations[topicKey] {
		if allowed == countryKey {
			return true
		}
	}
	return false
}

// FilterModels returns the models eligible for the given country and
// topic. When either is unset no filtering occurs and the input is
// returned unchanged. The input slice is never mutated.
func FilterModels(models []model.Info, country, topic string) []model.Info {
	if country == "" || topic == "" {
		return models
	}

	if IsRestrictedModelAllowed(country, topic) {
		return models
	}

	filtered := make([]model.Info, 0, len(models))
	for _, m := range models {
		if m.IsRestricted() {
			continue
		}
		filtered = append(filtered, m)
	}
	return filtered
}
