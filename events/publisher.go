// Package events publishes walk-in domain events to RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// QueueBookingConfirmed receives one message per confirmed walk-in.
const QueueBookingConfirmed = "booking.confirmed"

// BookingConfirmed is emitted after a walk-in check-in commits.
type BookingConfirmed struct {
	BookingID     uint      `json:"bookingId"`
	ReferenceCode string    `json:"referenceCode"`
	RoomNumber    string    `json:"roomNumber"`
	RoomType      string    `json:"roomType"`
	GuestName     string    `json:"guestName"`
	CheckInDate   time.Time `json:"checkInDate"`
	CheckOutDate  time.Time `json:"checkOutDate"`
	Nights        int       `json:"nights"`
	TotalAmount   float64   `json:"totalAmount"`
	Source        string    `json:"source"`
	OccurredAt    time.Time `json:"occurredAt"`
}

type Publisher interface {
	PublishBookingConfirmed(ctx context.Context, event BookingConfirmed) error
}

// New returns an AMQP publisher for url, or a no-op publisher when url is empty.
func New(url string, logger zerolog.Logger) Publisher {
	if strings.TrimSpace(url) == "" {
		logger.Info().Msg("AMQP_URL not set; booking events disabled")
		return Noop{}
	}
	return &AMQPPublisher{url: url, logger: logger.With().Str("component", "events").Logger()}
}

// Noop drops every event.
type Noop struct{}

func (Noop) PublishBookingConfirmed(context.Context, BookingConfirmed) error { return nil }

// AMQPPublisher opens a connection per event. Messages are persistent.
type AMQPPublisher struct {
	url    string
	logger zerolog.Logger
}

func (p *AMQPPublisher) PublishBookingConfirmed(ctx context.Context, event BookingConfirmed) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.logger.Error().Err(err).Msg("rabbitmq: dial failed")
		return fmt.Errorf("dial rabbitmq: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.logger.Error().Err(err).Msg("rabbitmq: channel open failed")
		return fmt.Errorf("open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		QueueBookingConfirmed, // name
		true,                  // durable
		false,                 // autoDelete
		false,                 // exclusive
		false,                 // noWait
		nil,                   // args
	); err != nil {
		p.logger.Error().Err(err).Msg("rabbitmq: queue declare failed")
		return fmt.Errorf("declare queue: %w", err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ReferenceCode,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", QueueBookingConfirmed, false, false, pub); err != nil {
		p.logger.Error().Err(err).Str("reference", event.ReferenceCode).Msg("rabbitmq: publish failed")
		return fmt.Errorf("publish booking confirmed: %w", err)
	}
	p.logger.Debug().Str("reference", event.ReferenceCode).Msg("booking.confirmed published")
	return nil
}
