package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// Publisher sends one event to a queue.  Callers treat failures as
// non-fatal: events are an audit trail, not part of the transaction.
type Publisher interface {
	Publish(ctx context.Context, queue string, event any) error
}

// NewPublisher returns an AMQP publisher, or a no-op one when url is empty.
func NewPublisher(url string, log logrus.FieldLogger) Publisher {
	if url == "" {
		return NopPublisher{}
	}
	return NewAMQPPublisher(url, log)
}

// AMQPPublisher dials the broker per publish.  Event volume is a handful
// per booking, so no connection is kept open.
type AMQPPublisher struct {
	url         string
	dialTimeout time.Duration
	log         logrus.FieldLogger
}

func NewAMQPPublisher(url string, log logrus.FieldLogger) *AMQPPublisher {
	return &AMQPPublisher{url: url, dialTimeout: 2 * time.Second, log: log}
}

func (p *AMQPPublisher) Publish(ctx context.Context, queue string, event any) error {
	log := p.log.WithField("queue", queue)

	conn, err := amqp.DialConfig(p.url, amqp.Config{Dial: amqp.DefaultDial(p.dialTimeout)})
	if err != nil {
		log.WithError(err).Warn("rabbitmq: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.WithError(err).Warn("rabbitmq: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	// Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		log.WithError(err).Warn("rabbitmq: queue declare failed")
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.WithError(err).Warn("rabbitmq: marshal event failed")
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	// default exchange, routing key = queue name
	if err := ch.PublishWithContext(ctx, "", queue, false, false, pub); err != nil {
		log.WithError(err).Warn("rabbitmq: publish failed")
		return err
	}
	return nil
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }
