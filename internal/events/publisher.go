// Package events publishes commerce events to kafka and consumes them
// for the simulated confirmation email. Event delivery is best effort;
// the stores never block on it.
package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/Sehnya/photo-web-demo/internal/booking"
	"github.com/Sehnya/photo-web-demo/internal/checkout"
	"github.com/segmentio/kafka-go"
)

const Topic = "studio-events"

const (
	TypeBookingConfirmed  = "booking.confirmed"
	TypeCheckoutCompleted = "checkout.completed"
)

// Envelope wraps every published event.
type Envelope struct {
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers ...string) *Publisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  Topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &Publisher{writer: w}
}

func (p *Publisher) Close() {
	if err := p.writer.Close(); err != nil {
		log.Printf("error closing kafka writer: %v", err)
	}
}

// BookingConfirmed publishes a confirmed booking record.
func (p *Publisher) BookingConfirmed(ctx context.Context, rec booking.Record) {
	p.publish(ctx, TypeBookingConfirmed, rec.ID, rec)
}

// CheckoutCompleted publishes a completed checkout snapshot.
func (p *Publisher) CheckoutCompleted(ctx context.Context, details checkout.BookingDetails) {
	p.publish(ctx, TypeCheckoutCompleted, details.OrderID, details)
}

func (p *Publisher) publish(ctx context.Context, eventType, key string, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("failed to marshal %s payload: %v", eventType, err)
		return
	}

	envelope := Envelope{Type: eventType, OccurredAt: time.Now().UTC(), Payload: body}
	value, err := json.Marshal(envelope)
	if err != nil {
		log.Printf("failed to marshal %s envelope: %v", eventType, err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := p.writer.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: value}); err != nil {
		log.Printf("failed to publish %s event %s: %v", eventType, key, err)
	}
}
