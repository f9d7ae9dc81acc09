package events

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/Sehnya/photo-web-demo/internal/booking"
	"github.com/Sehnya/photo-web-demo/internal/email"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	m        sync.Mutex
	messages []kafka.Message
}

func (f *fakeReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	f.m.Lock()
	defer f.m.Unlock()
	if len(f.messages) == 0 {
		return kafka.Message{}, context.Canceled
	}
	m := f.messages[0]
	f.messages = f.messages[1:]
	return m, nil
}

func (f *fakeReader) Close() error { return nil }

type recordingSender struct {
	m    sync.Mutex
	sent []email.BookingData
}

func (s *recordingSender) SendBookingConfirmation(_ context.Context, b email.BookingData) error {
	s.m.Lock()
	defer s.m.Unlock()
	s.sent = append(s.sent, b)
	return nil
}

func envelopeMessage(t *testing.T, eventType string, payload interface{}) kafka.Message {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	value, err := json.Marshal(Envelope{Type: eventType, OccurredAt: time.Now(), Payload: body})
	require.NoError(t, err)
	return kafka.Message{Value: value}
}

func TestConfirmationConsumer_SendsEmailForBookingEvents(t *testing.T) {
	rec := booking.Record{
		ID:          "2026-09-12-10-abcd1234",
		SessionType: "CLASSIC PORTRAITS",
		Date:        "2026-09-12",
		Start:       10,
		End:         12,
		Price:       1200,
		Client:      booking.ClientInfo{Name: "Ada", Email: "ada@example.com"},
	}

	sender := &recordingSender{}
	consumer := &ConfirmationConsumer{
		sender: sender,
		reader: &fakeReader{messages: []kafka.Message{
			envelopeMessage(t, TypeCheckoutCompleted, map[string]string{"orderId": "x"}),
			envelopeMessage(t, TypeBookingConfirmed, rec),
			{Value: []byte("not json")},
		}},
	}

	consumer.processMessage(context.Background()) // checkout event: skipped
	consumer.processMessage(context.Background()) // booking event: emailed
	consumer.processMessage(context.Background()) // garbage: logged, skipped

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "ada@example.com", sender.sent[0].ClientEmail)
	assert.Equal(t, "2026-09-12-10-abcd1234", sender.sent[0].BookingID)
}
