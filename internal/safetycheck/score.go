package safetycheck

import "strings"

// seriousCrimeKeywords force the lowest confidence regardless of how few
// articles survived filtering.
var seriousCrimeKeywords = []string{
	"convicted",
	"sentenced",
	"assault",
	"domestic violence",
	"domestic abuse",
}

// HasSeriousCrime reports whether any result's title or snippet mentions a
// serious-crime keyword.
func HasSeriousCrime(results []SearchResult) bool {
	for _, r := range results {
		text := strings.ToLower(r.Title + " " + r.Snippet)
		for _, keyword := range seriousCrimeKeywords {
			if strings.Contains(text, keyword) {
				return true
			}
		}
	}
	return false
}

// newsConfidence maps the filtered adverse-news article count to a level.
// The bucket boundaries are inherited heuristics, not validated risk
// science; they are kept for output compatibility.
func newsConfidence(count int) ConfidenceLevel {
	switch {
	case count == 0:
		return ConfidenceHigh // no news = good sign
	case count <= 2:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// photoConfidence maps the reverse-image match count to a level. Zero
// matches is treated as a good sign rather than missing evidence.
func photoConfidence(matches int) ConfidenceLevel {
	switch {
	case matches <= 1:
		return ConfidenceHigh
	case matches <= 3:
		return ConfidenceMedium
	case matches <= 10:
		return ConfidenceLow
	default:
		return ConfidenceVeryLow
	}
}

// ScoreConfidence computes the final confidence level. The news-count level
// and, when photo evidence exists, the photo-match level are combined by
// taking the worse of the two. The serious-crime override is applied last
// and always wins: once forced to VERY_LOW the level is never raised.
func ScoreConfidence(newsCount int, seriousCrime bool, photoMatches *int) ConfidenceLevel {
	level := newsConfidence(newsCount)
	if photoMatches != nil {
		level = level.Worse(photoConfidence(*photoMatches))
	}
	if seriousCrime {
		level = ConfidenceVeryLow
	}
	return level
}
