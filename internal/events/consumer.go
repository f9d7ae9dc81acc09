package events

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/Sehnya/photo-web-demo/internal/booking"
	"github.com/Sehnya/photo-web-demo/internal/email"
	"github.com/segmentio/kafka-go"
)

// reader matches the slice of kafka.Reader the consumer needs; tests
// substitute a fake.
type reader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// ConfirmationConsumer replays booking-confirmed events into the email
// sender. Running it out of band gives confirmations a delivery seam
// without putting a broker on the booking critical path.
type ConfirmationConsumer struct {
	sender email.Sender
	reader reader
}

func NewConfirmationConsumer(sender email.Sender, brokers ...string) *ConfirmationConsumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    Topic,
		GroupID:  "confirmation-emails",
		MaxBytes: 10e6, // 10MB
	})
	return &ConfirmationConsumer{sender: sender, reader: r}
}

func (c *ConfirmationConsumer) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		c.processMessage(ctx)
	}
}

func (c *ConfirmationConsumer) Close() {
	if err := c.reader.Close(); err != nil {
		log.Printf("error closing kafka reader: %v", err)
	}
}

func (c *ConfirmationConsumer) processMessage(ctx context.Context) {
	m, err := c.reader.ReadMessage(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Printf("error reading message: %v", err)
		return
	}

	var envelope Envelope
	if err := json.Unmarshal(m.Value, &envelope); err != nil {
		log.Printf("error parsing message: %v", err)
		return
	}
	if envelope.Type != TypeBookingConfirmed {
		return
	}

	var rec booking.Record
	if err := json.Unmarshal(envelope.Payload, &rec); err != nil {
		log.Printf("error parsing booking payload: %v", err)
		return
	}

	if err := c.sender.SendBookingConfirmation(ctx, email.BookingData{
		BookingID:   rec.ID,
		SessionType: rec.SessionType,
		Date:        rec.Date,
		StartTime:   rec.Start,
		EndTime:     rec.End,
		ClientName:  rec.Client.Name,
		ClientEmail: rec.Client.Email,
		ClientPhone: rec.Client.Phone,
		Notes:       rec.Client.Notes,
		Price:       rec.Price,
	}); err != nil {
		log.Printf("error sending confirmation for %s: %v", rec.ID, err)
	}
}
