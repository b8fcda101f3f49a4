package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvboost/internal/model"
)

type fakeContactStore struct {
	created []*model.ContactSubmission
}

func (f *fakeContactStore) Create(submission *model.ContactSubmission) error {
	submission.ID = uint(len(f.created) + 1)
	f.created = append(f.created, submission)
	return nil
}

type fakeConsultationStore struct {
	created []*model.ConsultationRequest
	updates []model.ConsultationStatus
}

func (f *fakeConsultationStore) Create(request *model.ConsultationRequest) error {
	request.ID = uint(len(f.created) + 1)
	f.created = append(f.created, request)
	return nil
}

func (f *fakeConsultationStore) GetByID(id uint) (*model.ConsultationRequest, error) {
	for _, r := range f.created {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeConsultationStore) ListAll() ([]model.ConsultationRequest, error) {
	out := make([]model.ConsultationRequest, 0, len(f.created))
	for _, r := range f.created {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeConsultationStore) UpdateStatus(id uint, status model.ConsultationStatus) error {
	f.updates = append(f.updates, status)
	return nil
}

type fakePublisher struct {
	jobs []model.SubmissionJob
	err  error
}

func (f *fakePublisher) Publish(ctx context.Context, job model.SubmissionJob) error {
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, job)
	return nil
}

func TestSubmitContact(t *testing.T) {
	contacts := &fakeContactStore{}
	publisher := &fakePublisher{}
	svc := NewInboxService(contacts, &fakeConsultationStore{}, newFakeUserStore(), publisher)

	submission, err := svc.SubmitContact(context.Background(), ContactInput{
		Email:   " Visitor@Example.com ",
		Subject: "Pricing",
		Message: "How much?",
	})
	require.NoError(t, err)
	assert.Equal(t, "visitor@example.com", submission.Email)

	require.Len(t, publisher.jobs, 1)
	assert.Equal(t, model.SubmissionContact, publisher.jobs[0].Kind)
	assert.Equal(t, submission.ID, publisher.jobs[0].ID)
}

func TestSubmitContactValidation(t *testing.T) {
	svc := NewInboxService(&fakeContactStore{}, &fakeConsultationStore{}, newFakeUserStore(), &fakePublisher{})

	_, err := svc.SubmitContact(context.Background(), ContactInput{Email: "a@b.com", Subject: "", Message: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSubmitContactStoresRowEvenWhenEnqueueFails(t *testing.T) {
	contacts := &fakeContactStore{}
	publisher := &fakePublisher{err: errors.New("broker down")}
	svc := NewInboxService(contacts, &fakeConsultationStore{}, newFakeUserStore(), publisher)

	_, err := svc.SubmitContact(context.Background(), ContactInput{
		Email:   "a@b.com",
		Subject: "Pricing",
		Message: "How much?",
	})
	assert.ErrorIs(t, err, ErrSubmissionEnqueue)
	assert.Len(t, contacts.created, 1, "the submission row survives a broker outage")
}

func TestRequestConsultation(t *testing.T) {
	consultations := &fakeConsultationStore{}
	publisher := &fakePublisher{}
	svc := NewInboxService(&fakeContactStore{}, consultations, newFakeUserStore(), publisher)

	_, err := svc.RequestConsultation(context.Background(), ConsultationInput{
		Email:   "a@b.com",
		Subject: "Audit",
		Message: "Please review my CV",
	})
	assert.ErrorIs(t, err, ErrInvalidInput, "anonymous consultation requests are rejected")

	request, err := svc.RequestConsultation(context.Background(), ConsultationInput{
		UserID:  7,
		Email:   "a@b.com",
		Subject: "Audit",
		Message: "Please review my CV",
	})
	require.NoError(t, err)
	assert.Equal(t, model.ConsultationPending, request.Status)

	require.Len(t, publisher.jobs, 1)
	assert.Equal(t, model.SubmissionConsultation, publisher.jobs[0].Kind)
	assert.Equal(t, uint(7), publisher.jobs[0].UserID)
}

func TestUpdateConsultationStatus(t *testing.T) {
	consultations := &fakeConsultationStore{}
	svc := NewInboxService(&fakeContactStore{}, consultations, newFakeUserStore(), &fakePublisher{})

	_, err := svc.RequestConsultation(context.Background(), ConsultationInput{
		UserID:  7,
		Email:   "a@b.com",
		Subject: "Audit",
		Message: "Please review my CV",
	})
	require.NoError(t, err)

	_, err = svc.UpdateConsultationStatus(1, model.ConsultationStatus("bogus"))
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateConsultationStatus(99, model.ConsultationReviewed)
	assert.ErrorIs(t, err, ErrConsultationUnknown)

	request, err := svc.UpdateConsultationStatus(1, model.ConsultationReviewed)
	require.NoError(t, err)
	assert.Equal(t, model.ConsultationReviewed, request.Status)
	assert.Equal(t, []model.ConsultationStatus{model.ConsultationReviewed}, consultations.updates)
}

func TestAdminStats(t *testing.T) {
	users := newFakeUserStore()
	require.NoError(t, users.Create(&model.User{Email: "a@b.com"}))
	require.NoError(t, users.Create(&model.User{Email: "c@d.com"}))

	svc := NewInboxService(&fakeContactStore{}, &fakeConsultationStore{}, users, &fakePublisher{})
	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalUsers)
}
