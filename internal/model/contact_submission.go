package model

import "time"

// ContactSubmission is a one-shot message from a visitor; no account needed.
type ContactSubmission struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Email        string     `gorm:"size:128;not null" json:"email"`
	Subject      string     `gorm:"size:256;not null" json:"subject"`
	Message      string     `gorm:"type:text;not null" json:"message"`
	DispatchedAt *time.Time `json:"dispatched_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
