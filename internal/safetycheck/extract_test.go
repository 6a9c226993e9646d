package safetycheck

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractNamesProvidedNameFirst(t *testing.T) {
	matches := []VisualMatch{
		{Title: "Alice Brown spotted in Paris"},
		{Title: "Interview with Carol White"},
	}

	names := ExtractNames(matches, "Jane Doe")

	assert.Equal(t, []string{"Jane Doe", "Alice Brown", "Carol White"}, names)
}

func TestExtractNamesDedupCaseInsensitive(t *testing.T) {
	matches := []VisualMatch{
		{Title: "Jane Doe at the gala"},
		{Title: "JANE DOE — wait, this one is uppercase"}, // regex won't match all-caps
		{Title: "More about Jane Doe and Jane Doe again"},
	}

	names := ExtractNames(matches, "Jane Doe")

	assert.Equal(t, []string{"Jane Doe"}, names)
}

func TestExtractNamesCap(t *testing.T) {
	matches := make([]VisualMatch, 0, 8)
	for i := 0; i < 8; i++ {
		matches = append(matches, VisualMatch{Title: fmt.Sprintf("Person %s story", string(rune('A'+i))+"lpha")})
	}

	names := ExtractNames(matches, "")

	assert.Len(t, names, maxExtractedNames)
}

func TestExtractNamesScansOnlyTopMatches(t *testing.T) {
	matches := make([]VisualMatch, 0, maxScannedMatches+1)
	for i := 0; i < maxScannedMatches; i++ {
		matches = append(matches, VisualMatch{Title: "no names here"})
	}
	matches = append(matches, VisualMatch{Title: "Deep Result mentions Alice Brown"})

	assert.Empty(t, ExtractNames(matches, ""))
}

func TestExtractNamesShapeHeuristic(t *testing.T) {
	matches := []VisualMatch{
		{Title: "lowercase name jane doe ignored"},
		{Title: "Single Capitalized"}, // matches: two capitalized tokens
		{Title: "Mr. X visits"},       // no two-token match
	}

	names := ExtractNames(matches, "")

	assert.Equal(t, []string{"Single Capitalized"}, names)
}

func TestExtractNamesEmptyInput(t *testing.T) {
	assert.Empty(t, ExtractNames(nil, ""))
	assert.Equal(t, []string{"Jane Doe"}, ExtractNames(nil, "Jane Doe"))
}
