package safetycheck

import (
	"regexp"
	"strings"
)

const (
	// maxExtractedNames caps the candidate list so one photo cannot fan
	// out into an unbounded number of paid searches.
	maxExtractedNames = 5
	// maxScannedMatches limits extraction to the top visual matches,
	// where the page title is most likely to name the person.
	maxScannedMatches = 10
)

// twoTokenName matches "Capitalized-word Capitalized-word" substrings. It is
// a shape heuristic, not a named-entity recognizer: it will pick up phrases
// like "Breaking News" and miss single-word or lowercase handles.
var twoTokenName = regexp.MustCompile(`\b[A-Z][a-z]+ [A-Z][a-z]+\b`)

// ExtractNames scans visual-match titles for candidate person names. The
// provided name, if any, comes first; the rest follow in first-seen order,
// deduplicated case-insensitively and capped at maxExtractedNames.
func ExtractNames(matches []VisualMatch, providedName string) []string {
	names := make([]string, 0, maxExtractedNames)
	seen := make(map[string]bool)

	add := func(name string) {
		key := strings.ToLower(name)
		if seen[key] || len(names) >= maxExtractedNames {
			return
		}
		seen[key] = true
		names = append(names, name)
	}

	if providedName != "" {
		add(providedName)
	}

	for i, match := range matches {
		if i >= maxScannedMatches {
			break
		}
		for _, candidate := range twoTokenName.FindAllString(match.Title, -1) {
			add(candidate)
		}
	}

	return names
}
