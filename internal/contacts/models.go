package contacts

import (
	"time"

	"github.com/google/uuid"
)

// EmergencyContact is a person who gets alerted when the user triggers an
// emergency or misses a date check-in
type EmergencyContact struct {
	ID           uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	UserID       uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Name         string    `json:"name" gorm:"not null"`
	Phone        string    `json:"phone" gorm:"not null"`
	Email        string    `json:"email"`
	Relationship string    `json:"relationship"`
	IsPrimary    bool      `json:"is_primary" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// ContactRequest is the create/update payload
type ContactRequest struct {
	Name         string `json:"name" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	Email        string `json:"email"`
	Relationship string `json:"relationship"`
	IsPrimary    bool   `json:"is_primary"`
}
