package model

import (
	"strings"
)

// NormalizeCategory maps an owner-typed category to its canonical form.
// The global and owner-scoped indexes must share this exact algorithm.
func NormalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

// NormalizeCategories trims, lowercases, drops entries that become empty and
// deduplicates. Set semantics: callers needing stable display order sort.
func NormalizeCategories(categories []string) []string {
	seen := make(map[string]struct{}, len(categories))
	result := make([]string, 0, len(categories))
	for _, c := range categories {
		normalized := NormalizeCategory(c)
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		result = append(result, normalized)
	}
	return result
}
