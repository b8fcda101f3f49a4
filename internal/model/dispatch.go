package model

type SubmissionKind string

const (
	SubmissionContact      SubmissionKind = "contact"
	SubmissionConsultation SubmissionKind = "consultation"
)

// SubmissionJob is the queue envelope for forwarding a stored contact or
// consultation submission to the workflow layer. It carries the full payload
// so the dispatch worker does not depend on a read-after-write of the row.
type SubmissionJob struct {
	Kind    SubmissionKind `json:"kind"`
	ID      uint           `json:"id"`
	UserID  uint           `json:"user_id,omitempty"`
	Email   string         `json:"email"`
	Subject string         `json:"subject"`
	Message string         `json:"message"`
}
