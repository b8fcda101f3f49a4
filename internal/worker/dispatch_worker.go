package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"cvboost/internal/model"
	"cvboost/internal/repository"
	"cvboost/internal/workflow"
)

// ForwardGateway is the intake slice of the workflow layer the worker drives.
type ForwardGateway interface {
	SubmitContact(ctx context.Context, payload workflow.ContactPayload) error
	RequestConsultation(ctx context.Context, payload workflow.ConsultationPayload) error
}

// DispatchWorker drains the submission queue and forwards each stored
// contact/consultation to the workflow webhooks, marking the row dispatched
// on success. Failed deliveries are nacked without requeue; the row stays
// with a null dispatched_at for operators to spot.
type DispatchWorker struct {
	conn          *amqp.Connection
	gateway       ForwardGateway
	contacts      *repository.ContactRepository
	consultations *repository.ConsultationRepository
	queueName     string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewDispatchWorker(
	conn *amqp.Connection,
	gateway ForwardGateway,
	contacts *repository.ContactRepository,
	consultations *repository.ConsultationRepository,
	queueName string,
) *DispatchWorker {
	return &DispatchWorker{
		conn:          conn,
		gateway:       gateway,
		contacts:      contacts,
		consultations: consultations,
		queueName:     queueName,
	}
}

func (w *DispatchWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}

				var job model.SubmissionJob
				if err := json.Unmarshal(d.Body, &job); err != nil {
					log.Printf("worker decode submission failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				if err := w.forward(workerCtx, job); err != nil {
					log.Printf("worker forward submission %s/%d failed: %v", job.Kind, job.ID, err)
					_ = d.Nack(false, false)
					continue
				}

				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *DispatchWorker) forward(ctx context.Context, job model.SubmissionJob) error {
	switch job.Kind {
	case model.SubmissionContact:
		if err := w.gateway.SubmitContact(ctx, workflow.ContactPayload{
			Email:   job.Email,
			Subject: job.Subject,
			Message: job.Message,
		}); err != nil {
			return err
		}
		return w.contacts.MarkDispatched(job.ID, time.Now())
	case model.SubmissionConsultation:
		if err := w.gateway.RequestConsultation(ctx, workflow.ConsultationPayload{
			UserID:  job.UserID,
			Email:   job.Email,
			Subject: job.Subject,
			Message: job.Message,
		}); err != nil {
			return err
		}
		return w.consultations.MarkDispatched(job.ID, time.Now())
	default:
		return fmt.Errorf("unknown submission kind %q", job.Kind)
	}
}

func (w *DispatchWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
