package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"splitmate/internal/model"
)

// ActivityPublisher pushes activity events onto a durable queue. The
// activity persist worker on the other side writes them to the database.
type ActivityPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewActivityPublisher(conn *amqp.Connection, queueName string) *ActivityPublisher {
	return &ActivityPublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *ActivityPublisher) Publish(ctx context.Context, activity model.Activity) error {
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

	payload, err := json.Marshal(activity)
	if err != nil {
		return fmt.Errorf("marshal activity payload failed: %w", err)
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
		return fmt.Errorf("publish activity failed: %w", err)
	}
	return nil
}
