// Package export renders a user's safety-check history in downloadable
// formats: PDF, CSV and Excel.
package export

import "time"

// HistoryRow is one exported safety check
type HistoryRow struct {
	CheckedAt    time.Time `json:"checked_at"`
	Subject      string    `json:"subject"`
	Confidence   string    `json:"confidence"`
	TotalResults int       `json:"total_results"`
	PhotoMatches int       `json:"photo_matches"`
}

var historyHeader = []string{"Checked At", "Subject", "Confidence", "News Results", "Photo Matches"}

const historyTimestampFormat = "2006-01-02 15:04"
