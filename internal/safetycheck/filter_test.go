package safetycheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterRelevantRequiresEveryNamePart(t *testing.T) {
	results := []SearchResult{
		{Title: "Jane Smith wins award"},                                        // missing "doe"
		{Title: "Doe family reunion", Snippet: "...Jane Doe attended..."},       // parts split across fields
		{Title: "JANE DOE charged in fraud case", Snippet: ""},                  // case-insensitive
		{Title: "Local news roundup", Snippet: "nothing about anyone relevant"}, // neither part
	}

	filtered := FilterRelevant(results, "Jane Doe")

	assert.Len(t, filtered, 2)
	assert.Equal(t, "Doe family reunion", filtered[0].Title)
	assert.Equal(t, "JANE DOE charged in fraud case", filtered[1].Title)
}

func TestFilterRelevantMissingSnippetTreatedAsEmpty(t *testing.T) {
	results := []SearchResult{
		{Title: "Jane something"},
	}

	assert.Empty(t, FilterRelevant(results, "Jane Doe"))
}

func TestFilterRelevantPreservesOrderAndInput(t *testing.T) {
	results := []SearchResult{
		{Title: "Jane Doe one"},
		{Title: "irrelevant"},
		{Title: "Jane Doe two"},
	}

	filtered := FilterRelevant(results, "Jane Doe")

	assert.Equal(t, []string{"Jane Doe one", "Jane Doe two"}, []string{filtered[0].Title, filtered[1].Title})
	// input untouched
	assert.Len(t, results, 3)
	assert.Equal(t, "irrelevant", results[1].Title)
}

func TestFilterRelevantSubstringNotPhrase(t *testing.T) {
	// conjunctive substring match, not exact phrase: parts may appear anywhere
	results := []SearchResult{
		{Title: "Doe, Jane: annual report"},
	}

	assert.Len(t, FilterRelevant(results, "Jane Doe"), 1)
}

func TestFilterRelevantEmptyName(t *testing.T) {
	results := []SearchResult{{Title: "anything"}}

	assert.Empty(t, FilterRelevant(results, "   "))
}
