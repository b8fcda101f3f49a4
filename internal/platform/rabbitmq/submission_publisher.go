package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"cvboost/internal/model"
)

type SubmissionPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewSubmissionPublisher(conn *amqp.Connection, queueName string) *SubmissionPublisher {
	return &SubmissionPublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *SubmissionPublisher) Publish(ctx context.Context, job model.SubmissionJob) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		p.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue failed: %w", err)
	}

	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal submission payload failed: %w", err)
	}

	if err := ch.PublishWithContext(
		ctx,
		"",
		p.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         payload,
			DeliveryMode: amqp.Persistent,
		},
	); err != nil {
		return fmt.Errorf("publish submission failed: %w", err)
	}
	return nil
}
