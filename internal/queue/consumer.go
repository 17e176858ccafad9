package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// Consumer drains the event queues and appends one line per event to an
// audit log file.  Run reconnects with backoff until its context ends.
type Consumer struct {
	url     string
	logPath string
	log     logrus.FieldLogger
}

func NewConsumer(url, logPath string, log logrus.FieldLogger) *Consumer {
	if logPath == "" {
		logPath = filepath.Join("logs", "booking.log")
	}
	return &Consumer{url: url, logPath: logPath, log: log.WithField("component", "event-consumer")}
}

func (c *Consumer) Run(ctx context.Context) {
	backoff := time.Second
	for ctx.Err() == nil {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.log.WithError(err).Warnf("failed to dial broker; retrying in %s", backoff)
			if !sleep(ctx, backoff) {
				return
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return
		}
		c.log.WithError(err).Warn("consume loop ended; reconnecting")
		if !sleep(ctx, 2*time.Second) {
			return
		}
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.log.WithError(err).Warn("set QoS failed")
	}

	bookings, err := c.subscribe(ch, BookingEventsQueue)
	if err != nil {
		return err
	}
	prices, err := c.subscribe(ch, PricesRecalculatedQueue)
	if err != nil {
		return err
	}

	for {
		var (
			d     amqp.Delivery
			ok    bool
			queue string
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok = <-bookings:
			queue = BookingEventsQueue
		case d, ok = <-prices:
			queue = PricesRecalculatedQueue
		}
		if !ok {
			return errors.New("deliveries channel closed")
		}
		if err := c.handleMessage(queue, d.Body); err != nil {
			c.log.WithError(err).WithField("queue", queue).Error("handle message failed")
			_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
			continue
		}
		_ = d.Ack(false)
	}
}

func (c *Consumer) subscribe(ch *amqp.Channel, queue string) (<-chan amqp.Delivery, error) {
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("queue declare %s: %w", queue, err)
	}
	msgs, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("queue consume %s: %w", queue, err)
	}
	return msgs, nil
}

func (c *Consumer) handleMessage(queue string, body []byte) error {
	line, err := formatLine(queue, body)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.logPath), 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(c.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

func formatLine(queue string, body []byte) (string, error) {
	switch queue {
	case BookingEventsQueue:
		var ev BookingEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return "", fmt.Errorf("unmarshal: %w", err)
		}
		return fmt.Sprintf("[%s] %s | code=%s | booking_id=%d | package_id=%d | hotel_id=%d | status=%s | party=%dA+%dC | total=%d cents | email=%q\n",
			ev.OccurredAt, ev.Type, ev.ReservationCode, ev.BookingID, ev.PackageID, ev.HotelID, ev.Status,
			ev.Adults, ev.Children, ev.TotalAmountCents, ev.CustomerEmail), nil
	case PricesRecalculatedQueue:
		var ev PricesRecalculatedEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return "", fmt.Errorf("unmarshal: %w", err)
		}
		return fmt.Sprintf("[%s] prices.recalculated | package_id=%d | rows=%d | skipped=%d | fallback=%t\n",
			ev.OccurredAt, ev.PackageID, ev.Rows, ev.Skipped, ev.Fallback), nil
	}
	return "", fmt.Errorf("unknown queue %q", queue)
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
