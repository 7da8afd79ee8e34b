// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

// =============================================================================
// COUNTRY VOCABULARY
// =============================================================================

// countryLabels maps canonical country keys to display labels.
var countryLabels = map[string]string{
	"America":     "America",
	"Australia":   "Australia",
	"Austria":     "Austria",
	"Canada":      "Canada",
	"China":       "China",
	"France":      "France",
	"Germany":     "Germany",
	"Italy":       "Italy",
	"Japan":       "Japan",
	"New Zealand": "New Zealand",
	"Philippines": "Philippines",
	"Singapore":   "Singapore",
	"UK":          "United Kingdom",
}

// =============================================================================
// TOPIC VOCABULARY
// =============================================================================

// topicLabels maps canonical topic keys to display labels.
var topicLabels = map[string]string{
	"visa":        "visa",
	"insurance":   "insurance",
	"safety":      "safety information",
	"immigration": "immigration",
}

// Reverse maps, built once at init.
var (
	countryKeys = reverse(countryLabels)
	topicKeys   = reverse(topicLabels)
)

func reverse(m map[string]string) map[string]string {
	r := make(map[string]string, len(m))
	for k, v := range m {
		r[v] = k
	}
	return r
}

// =============================================================================
// RESOLUTION
// =============================================================================

// CountryLabel returns the display label for a country key.
// Unknown values pass through unchanged.
func CountryLabel(key string) string {
	if label, ok := countryLabels[key]; ok {
		return label
	}
	return key
}

// TopicLabel returns the display label for a topic key.
// Unknown values pass through unchanged.
func TopicLabel(key string) string {
	if label, ok := topicLabels[key]; ok {
		return label
	}
	return key
}

// CountryKey resolves a country given in either vocabulary to its
// canonical key. Unknown values pass through unchanged.
func CountryKey(v string) string {
	if _, ok := countryLabels[v]; ok {
		return v
	}
	if key, ok := countryKeys[v]; ok {
		return key
	}
	return v
}

// TopicKey resolves a topic given in either vocabulary to its
// canonical key. Unknown values pass through unchanged.
func TopicKey(v string) string {
	if _, ok := topicLabels[v]; ok {
		return v
	}
	if key, ok := topicKeys[v]; ok {
		return key
	}
	return v
}

// =============================================================================
// DEFAULTS
// =============================================================================

// DefaultCountries is the fallback country list used when the backend
// is unreachable.
var DefaultCountries = []string{
	"America", "Australia", "Canada", "Japan", "France",
	"Germany", "Italy", "UK", "China", "Singapore",
}

// DefaultTopics is the fallback topic list used when the backend is
// unreachable.
var DefaultTopics = []string{"visa", "insurance", "safety", "immigration"}
