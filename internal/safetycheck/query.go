package safetycheck

import (
	"fmt"
	"strconv"
	"strings"
)

// adverseKeywords is the fixed clause of crime-related terms appended to
// every news query.
const adverseKeywords = `(arrested OR convicted OR charged OR assault OR "domestic violence" OR "domestic abuse" OR court OR sentenced OR jailed OR fraud OR scam)`

// excludedSites suppresses low-signal social media hits from the general
// web search.
const excludedSites = `-site:facebook.com -site:instagram.com -site:twitter.com -site:linkedin.com -site:tiktok.com`

// BuildNewsQuery constructs the adverse-news search query for a subject.
// The name is exact-match quoted, the optional location likewise. A numeric
// age expands to a two-year range either side, since self-reported ages are
// often off by a year or two. A non-numeric age is ignored. The caller is
// responsible for rejecting an empty name before calling.
func BuildNewsQuery(name, location, age string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%q", name)

	if location != "" {
		fmt.Fprintf(&b, " %q", location)
	}

	if age != "" {
		if ageNum, err := strconv.Atoi(strings.TrimSpace(age)); err == nil {
			terms := make([]string, 0, 5)
			for n := ageNum - 2; n <= ageNum+2; n++ {
				terms = append(terms, fmt.Sprintf("age %d", n))
			}
			fmt.Fprintf(&b, " (%s)", strings.Join(terms, " OR "))
		}
	}

	b.WriteString(" " + adverseKeywords)
	b.WriteString(" " + excludedSites)
	return b.String()
}

// BuildPresenceQuery constructs the social/professional-profile search used
// to verify a subject's online presence rather than detect risk.
func BuildPresenceQuery(name, location string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%q", name)
	if location != "" {
		fmt.Fprintf(&b, " %q", location)
	}
	b.WriteString(` (linkedin OR facebook OR "about me")`)
	return b.String()
}
