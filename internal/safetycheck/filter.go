package safetycheck

import "strings"

// FilterRelevant keeps only results that plausibly refer to the subject:
// every whitespace-separated part of the name must appear, case-insensitively,
// somewhere in the title or snippet. A missing snippet counts as empty, so
// results without snippets are held to the title alone. Input order is
// preserved and the input slice is not mutated.
func FilterRelevant(results []SearchResult, subjectName string) []SearchResult {
	parts := strings.Fields(strings.ToLower(subjectName))
	if len(parts) == 0 {
		return nil
	}

	filtered := make([]SearchResult, 0, len(results))
	for _, r := range results {
		title := strings.ToLower(r.Title)
		snippet := strings.ToLower(r.Snippet)

		keep := true
		for _, part := range parts {
			if !strings.Contains(title, part) && !strings.Contains(snippet, part) {
				keep = false
				break
			}
		}
		if keep {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
