package safetycheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(n int) *int { return &n }

func TestScoreConfidenceNewsBuckets(t *testing.T) {
	cases := []struct {
		count int
		want  ConfidenceLevel
	}{
		{0, ConfidenceHigh},
		{1, ConfidenceMedium},
		{2, ConfidenceMedium},
		{3, ConfidenceLow},
		{50, ConfidenceLow},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ScoreConfidence(tc.count, false, nil), "count=%d", tc.count)
	}
}

func TestScoreConfidencePhotoBuckets(t *testing.T) {
	cases := []struct {
		matches int
		want    ConfidenceLevel
	}{
		{0, ConfidenceHigh},
		{1, ConfidenceHigh},
		{2, ConfidenceMedium},
		{3, ConfidenceMedium},
		{4, ConfidenceLow},
		{10, ConfidenceLow},
		{11, ConfidenceVeryLow},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ScoreConfidence(0, false, intPtr(tc.matches)), "matches=%d", tc.matches)
	}
}

func TestScoreConfidenceTakesWorseOfNewsAndPhoto(t *testing.T) {
	// news MEDIUM, photo VERY_LOW
	assert.Equal(t, ConfidenceVeryLow, ScoreConfidence(1, false, intPtr(20)))
	// news HIGH, photo MEDIUM
	assert.Equal(t, ConfidenceMedium, ScoreConfidence(0, false, intPtr(3)))
	// news LOW, photo HIGH
	assert.Equal(t, ConfidenceLow, ScoreConfidence(5, false, intPtr(0)))
}

func TestScoreConfidenceSeriousCrimeOverridesEverything(t *testing.T) {
	// even when both signals look clean
	assert.Equal(t, ConfidenceVeryLow, ScoreConfidence(0, true, nil))
	assert.Equal(t, ConfidenceVeryLow, ScoreConfidence(0, true, intPtr(0)))
	assert.Equal(t, ConfidenceVeryLow, ScoreConfidence(2, true, intPtr(2)))
}

func TestScoreConfidenceNoPhotoEvidenceLeavesNewsLevel(t *testing.T) {
	// absent photo evidence must not be treated as zero matches
	assert.Equal(t, ConfidenceLow, ScoreConfidence(5, false, nil))
}

func TestHasSeriousCrime(t *testing.T) {
	assert.False(t, HasSeriousCrime(nil))
	assert.False(t, HasSeriousCrime([]SearchResult{
		{Title: "Jane Doe opens bakery", Snippet: "a local success story"},
	}))
	assert.True(t, HasSeriousCrime([]SearchResult{
		{Title: "Man SENTENCED to five years", Snippet: ""},
	}))
	assert.True(t, HasSeriousCrime([]SearchResult{
		{Title: "Court report", Snippet: "found guilty of domestic abuse"},
	}))
}

func TestWorseIsSymmetricAndUnknownYields(t *testing.T) {
	assert.Equal(t, ConfidenceVeryLow, ConfidenceMedium.Worse(ConfidenceVeryLow))
	assert.Equal(t, ConfidenceVeryLow, ConfidenceVeryLow.Worse(ConfidenceMedium))
	assert.Equal(t, ConfidenceMedium, ConfidenceHigh.Worse(ConfidenceMedium))
	assert.Equal(t, ConfidenceLow, ConfidenceUnknown.Worse(ConfidenceLow))
	assert.Equal(t, ConfidenceLow, ConfidenceLow.Worse(ConfidenceUnknown))
}
