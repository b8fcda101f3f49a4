package app

import (
	"context"
	"errors"
	"strings"

	"cvboost/internal/model"
)

var (
	ErrSubmissionEnqueue   = errors.New("submission enqueue failed")
	ErrConsultationUnknown = errors.New("consultation request not found")
	ErrInvalidStatus       = errors.New("invalid consultation status")
)

// SubmissionPublisher hands a stored submission to the dispatch queue.
type SubmissionPublisher interface {
	Publish(ctx context.Context, job model.SubmissionJob) error
}

type ContactStore interface {
	Create(submission *model.ContactSubmission) error
}

type ConsultationStore interface {
	Create(request *model.ConsultationRequest) error
	GetByID(id uint) (*model.ConsultationRequest, error)
	ListAll() ([]model.ConsultationRequest, error)
	UpdateStatus(id uint, status model.ConsultationStatus) error
}

type UserCounter interface {
	Count() (int64, error)
}

// InboxService stores contact and consultation submissions and enqueues them
// for asynchronous delivery to the workflow layer, and serves the admin
// review surface. Storing before dispatching means a workflow outage cannot
// lose a submission.
type InboxService struct {
	contacts      ContactStore
	consultations ConsultationStore
	users         UserCounter
	publisher     SubmissionPublisher
}

type ContactInput struct {
	Email   string
	Subject string
	Message string
}

type ConsultationInput struct {
	UserID  uint
	Email   string
	Subject string
	Message string
}

type AdminStats struct {
	TotalUsers int64 `json:"total_users"`
}

func NewInboxService(
	contacts ContactStore,
	consultations ConsultationStore,
	users UserCounter,
	publisher SubmissionPublisher,
) *InboxService {
	return &InboxService{
		contacts:      contacts,
		consultations: consultations,
		users:         users,
		publisher:     publisher,
	}
}

func (s *InboxService) SubmitContact(ctx context.Context, input ContactInput) (*model.ContactSubmission, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	subject := strings.TrimSpace(input.Subject)
	message := strings.TrimSpace(input.Message)
	if email == "" || subject == "" || message == "" {
		return nil, ErrInvalidInput
	}

	submission := &model.ContactSubmission{
		Email:   email,
		Subject: subject,
		Message: message,
	}
	if err := s.contacts.Create(submission); err != nil {
		return nil, err
	}

	if s.publisher == nil {
		return nil, ErrSubmissionEnqueue
	}
	if err := s.publisher.Publish(ctx, model.SubmissionJob{
		Kind:    model.SubmissionContact,
		ID:      submission.ID,
		Email:   email,
		Subject: subject,
		Message: message,
	}); err != nil {
		return nil, ErrSubmissionEnqueue
	}
	return submission, nil
}

func (s *InboxService) RequestConsultation(ctx context.Context, input ConsultationInput) (*model.ConsultationRequest, error) {
	if input.UserID == 0 {
		return nil, ErrInvalidInput
	}
	email := strings.TrimSpace(strings.ToLower(input.Email))
	subject := strings.TrimSpace(input.Subject)
	message := strings.TrimSpace(input.Message)
	if email == "" || subject == "" || message == "" {
		return nil, ErrInvalidInput
	}

	request := &model.ConsultationRequest{
		UserID:  input.UserID,
		Email:   email,
		Subject: subject,
		Message: message,
		Status:  model.ConsultationPending,
	}
	if err := s.consultations.Create(request); err != nil {
		return nil, err
	}

	if s.publisher == nil {
		return nil, ErrSubmissionEnqueue
	}
	if err := s.publisher.Publish(ctx, model.SubmissionJob{
		Kind:    model.SubmissionConsultation,
		ID:      request.ID,
		UserID:  input.UserID,
		Email:   email,
		Subject: subject,
		Message: message,
	}); err != nil {
		return nil, ErrSubmissionEnqueue
	}
	return request, nil
}

func (s *InboxService) ListConsultations() ([]model.ConsultationRequest, error) {
	return s.consultations.ListAll()
}

// UpdateConsultationStatus moves a request along pending → reviewed → closed.
// Only the admin surface reaches this.
func (s *InboxService) UpdateConsultationStatus(id uint, status model.ConsultationStatus) (*model.ConsultationRequest, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	request, err := s.consultations.GetByID(id)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, ErrConsultationUnknown
	}

	if err := s.consultations.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	request.Status = status
	return request, nil
}

func (s *InboxService) Stats() (*AdminStats, error) {
	total, err := s.users.Count()
	if err != nil {
		return nil, err
	}
	return &AdminStats{TotalUsers: total}, nil
}
