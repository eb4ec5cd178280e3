package kg

import "strings"

const maxSuggestions = 5

// FilterSuggestions deduplicates candidate labels, drops entries equal to
// the full query (case-insensitive), and caps the list at five. Candidate
// order is preserved.
func FilterSuggestions(candidates []string, query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))

	suggestions := make([]string, 0, maxSuggestions)
	seen := make(map[string]bool)
	for _, c := range candidates {
		key := strings.ToLower(c)
		if c == "" || seen[key] || key == q {
			continue
		}
		seen[key] = true
		suggestions = append(suggestions, c)
		if len(suggestions) == maxSuggestions {
			break
		}
	}
	return suggestions
}
