package model

import "time"

type ConsultationStatus string

const (
	ConsultationPending  ConsultationStatus = "pending"
	ConsultationReviewed ConsultationStatus = "reviewed"
	ConsultationClosed   ConsultationStatus = "closed"
)

// ConsultationRequest is a one-shot message from an authenticated user.
// Status is mutated only through the admin surface. DispatchedAt records when
// the stored request was forwarded to the workflow layer by the dispatch
// worker.
type ConsultationRequest struct {
	ID           uint               `gorm:"primaryKey" json:"id"`
	UserID       uint               `gorm:"not null;index" json:"user_id"`
	Email        string             `gorm:"size:128;not null" json:"email"`
	Subject      string             `gorm:"size:256;not null" json:"subject"`
	Message      string             `gorm:"type:text;not null" json:"message"`
	Status       ConsultationStatus `gorm:"size:16;not null;default:pending;index" json:"status"`
	DispatchedAt *time.Time         `json:"dispatched_at,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}

func (s ConsultationStatus) Valid() bool {
	switch s {
	case ConsultationPending, ConsultationReviewed, ConsultationClosed:
		return true
	}
	return false
}
