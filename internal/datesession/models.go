package datesession

import (
	"time"

	"github.com/google/uuid"
)

// Session status values
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusAlerted   = "alerted"
)

// ExcuseTemplates are canned exit messages the user can pick before a date
var ExcuseTemplates = map[string]string{
	"family_emergency": "Hi! My sister just called - there's a family emergency. I need to leave right away. So sorry!",
	"work_emergency":   "Oh no, my boss just called. There's an urgent work issue I need to handle. I have to go!",
	"friend_emergency": "My best friend just texted - they're having a crisis and need me. I'm so sorry, I have to leave.",
	"sick_feeling":     "I'm not feeling well suddenly. I think I need to go home. Sorry to cut this short!",
	"pet_emergency":    "The dog sitter just called - there's an issue with my dog. I need to go check on them!",
}

// DateSession is one tracked date. If the user neither checks in nor ends
// the session before the expected end (plus grace), the watchdog alerts
// their emergency contacts.
type DateSession struct {
	ID                 uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid"`
	UserID             uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	DateName           string     `json:"date_name" gorm:"not null"`
	VenueName          string     `json:"venue_name"`
	VenueAddress       string     `json:"venue_address"`
	ScheduledAt        time.Time  `json:"scheduled_at"`
	ExpectedEndAt      time.Time  `json:"expected_end_at" gorm:"index"`
	EmergencyContactID *uuid.UUID `json:"emergency_contact_id" gorm:"type:uuid"`
	ExcuseTemplate     string     `json:"excuse_template"`
	Status             string     `json:"status" gorm:"default:active;index"`
	CheckedInAt        *time.Time `json:"checked_in_at"`
	CreatedAt          time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// StartRequest creates a session
type StartRequest struct {
	DateName           string     `json:"date_name" binding:"required"`
	VenueName          string     `json:"venue_name"`
	VenueAddress       string     `json:"venue_address"`
	ScheduledAt        time.Time  `json:"scheduled_at" binding:"required"`
	ExpectedEndAt      time.Time  `json:"expected_end_at" binding:"required"`
	EmergencyContactID *uuid.UUID `json:"emergency_contact_id"`
	ExcuseTemplate     string     `json:"excuse_template"`
}
