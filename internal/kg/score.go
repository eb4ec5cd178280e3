package kg

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Relevance weights. Scores are additive and clamped to [0,1], so a result
// matching every field cannot exceed a perfect score.
const (
	weightFileName    = 0.4
	weightFilePrefix  = 0.1
	weightTitle       = 0.3
	weightDescription = 0.2
	weightTag         = 0.1
)

// Score assigns a deterministic relevance score to one result for the
// given query. All comparisons are case-insensitive.
func Score(query string, r SearchResult) float64 {
	q := strings.ToLower(query)
	if q == "" {
		return 0
	}

	var score float64
	fileName := strings.ToLower(r.FileName)
	if strings.Contains(fileName, q) {
		score += weightFileName
		if strings.HasPrefix(fileName, q) {
			score += weightFilePrefix
		}
	}
	if r.Title != "" && strings.Contains(strings.ToLower(r.Title), q) {
		score += weightTitle
	}
	if r.Description != "" && strings.Contains(strings.ToLower(r.Description), q) {
		score += weightDescription
	}
	for _, tag := range r.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			score += weightTag
			break
		}
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// Highlights extracts matched snippets for one result, independent of the
// score. Emission order is fixed: filename, title, description, tag.
func Highlights(query string, r SearchResult) []string {
	q := strings.ToLower(query)
	if q == "" {
		return nil
	}

	var highlights []string
	if strings.Contains(strings.ToLower(r.FileName), q) {
		highlights = append(highlights, fmt.Sprintf("Filename: %s", r.FileName))
	}
	if r.Title != "" && strings.Contains(strings.ToLower(r.Title), q) {
		highlights = append(highlights, fmt.Sprintf("Title: %s", r.Title))
	}
	if r.Description != "" {
		if idx := strings.Index(strings.ToLower(r.Description), q); idx >= 0 {
			highlights = append(highlights, fmt.Sprintf("Description: %s", snippet(r.Description, idx)))
		}
	}
	for _, tag := range r.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			highlights = append(highlights, fmt.Sprintf("Tag: %s", tag))
			break
		}
	}
	return highlights
}

// snippet cuts a window around the first match occurrence: 30 characters of
// leading context and 100 of trailing, with ellipsis markers on truncated
// sides. The window counts runes so multi-byte text is never cut mid-rune.
func snippet(text string, idx int) string {
	runes := []rune(text)
	match := utf8.RuneCountInString(text[:idx])

	start := match - 30
	if start < 0 {
		start = 0
	}
	end := match + 100
	if end > len(runes) {
		end = len(runes)
	}

	out := string(runes[start:end])
	if start > 0 {
		out = "..." + out
	}
	if end < len(runes) {
		out = out + "..."
	}
	return out
}
