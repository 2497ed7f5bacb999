package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// SessionCleanupEvent asks the cleanup worker to remove everything left
// behind by a soft-deleted session.
type SessionCleanupEvent struct {
	SessionID uint `json:"session_id"`
}

type SessionCleanupPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewSessionCleanupPublisher(conn *amqp.Connection, queueName string) *SessionCleanupPublisher {
	return &SessionCleanupPublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *SessionCleanupPublisher) Publish(ctx context.Context, sessionID uint) error {
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

	payload, err := json.Marshal(SessionCleanupEvent{SessionID: sessionID})
	if err != nil {
		return fmt.Errorf("marshal cleanup event failed: %w", err)
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
		return fmt.Errorf("publish cleanup event failed: %w", err)
	}
	return nil
}
