package safetycheck

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ConfidenceLevel is the discrete risk signal of a safety check, ordered
// HIGH > MEDIUM > LOW > VERY_LOW. UNKNOWN means an evidence source produced
// no signal at all and never worsens a combined level.
type ConfidenceLevel string

const (
	ConfidenceHigh    ConfidenceLevel = "HIGH"
	ConfidenceMedium  ConfidenceLevel = "MEDIUM"
	ConfidenceLow     ConfidenceLevel = "LOW"
	ConfidenceVeryLow ConfidenceLevel = "VERY_LOW"
	ConfidenceUnknown ConfidenceLevel = "UNKNOWN"
)

var confidenceRank = map[ConfidenceLevel]int{
	ConfidenceHigh:    4,
	ConfidenceMedium:  3,
	ConfidenceLow:     2,
	ConfidenceVeryLow: 1,
}

// Worse returns the lower of the two levels on the HIGH > MEDIUM > LOW >
// VERY_LOW order. UNKNOWN yields to the other operand.
func (c ConfidenceLevel) Worse(other ConfidenceLevel) ConfidenceLevel {
	if c == ConfidenceUnknown {
		return other
	}
	if other == ConfidenceUnknown {
		return c
	}
	if confidenceRank[other] < confidenceRank[c] {
		return other
	}
	return c
}

// DateUnknown is the sentinel used when a search result carries no
// publication date.
const DateUnknown = "Date unknown"

// SearchResult is one organic web-search hit
type SearchResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	Source  string `json:"source"`
	Date    string `json:"date"`
}

// VisualMatch is one reverse-image hit: a page containing an image visually
// similar to the submitted photo
type VisualMatch struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Source    string `json:"source"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// NewsGroup holds the adverse-news results for one candidate name
type NewsGroup struct {
	Name     string         `json:"name"`
	Articles []SearchResult `json:"articles"`
}

// CheckRequest is the inbound safety-check payload. Field names match the
// web client's wire format.
type CheckRequest struct {
	DateName     string `json:"dateName"`
	DateLocation string `json:"dateLocation"`
	DateAge      string `json:"dateAge"`
	PhotoURL     string `json:"photoURL"`
	PhotoData    string `json:"photoData"` // base64-encoded image bytes
	PhotoType    string `json:"photoType"` // content type of PhotoData
}

// CheckResponse is the assembled safety-check report
type CheckResponse struct {
	Success        bool            `json:"success"`
	Error          string          `json:"error,omitempty"`
	Confidence     ConfidenceLevel `json:"confidence,omitempty"`
	TotalResults   int             `json:"totalResults"`
	ExtractedNames []string        `json:"extractedNames,omitempty"`
	SearchSummary  string          `json:"searchSummary,omitempty"`
	NewsResults    []NewsGroup     `json:"newsResults,omitempty"`
	SocialProfiles []SearchResult  `json:"socialProfiles,omitempty"`
	PhotoMatches   int             `json:"photoMatches"`
	PhotoProfiles  []VisualMatch   `json:"photoProfiles,omitempty"`
}

// StoredCheck is a persisted safety-check report
type StoredCheck struct {
	ID            uuid.UUID       `json:"id" gorm:"primaryKey;type:uuid"`
	UserID        uuid.UUID       `json:"user_id" gorm:"type:uuid;not null;index"`
	SubjectName   string          `json:"subject_name" gorm:"not null"`
	SearchSummary string          `json:"search_summary"`
	Confidence    ConfidenceLevel `json:"confidence" gorm:"type:varchar(16)"`
	TotalResults  int             `json:"total_results"`
	PhotoMatches  int             `json:"photo_matches"`
	Payload       datatypes.JSON  `json:"payload" gorm:"type:jsonb"`
	CreatedAt     time.Time       `json:"created_at" gorm:"autoCreateTime"`
}
