package email

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBooking() BookingData {
	return BookingData{
		BookingID:   "2026-09-12-10-abcd1234",
		SessionType: "CLASSIC PORTRAITS",
		Date:        "2026-09-12",
		StartTime:   10,
		EndTime:     12,
		ClientName:  "Ada Lovelace",
		ClientEmail: "ada@example.com",
		Price:       1200,
	}
}

func TestGenerateConfirmation(t *testing.T) {
	html, err := GenerateConfirmation(sampleBooking())
	require.NoError(t, err)

	assert.Contains(t, html, "2026-09-12-10-abcd1234")
	assert.Contains(t, html, "CLASSIC PORTRAITS")
	assert.Contains(t, html, "10:00 AM")
	assert.Contains(t, html, "12:00 PM")
	assert.Contains(t, html, "Saturday, September 12, 2026")
	assert.Contains(t, html, "$600.00") // half of 1200
}

func TestGenerateConfirmation_EscapesClientInput(t *testing.T) {
	booking := sampleBooking()
	booking.Notes = `<script>alert("x")</script>`

	html, err := GenerateConfirmation(booking)
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>")
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "8:00 AM", formatTime(8))
	assert.Equal(t, "12:00 PM", formatTime(12))
	assert.Equal(t, "12:00 AM", formatTime(0))
	assert.Equal(t, "5:00 PM", formatTime(17))
}

func TestFormatDate_Invalid(t *testing.T) {
	assert.Equal(t, "not a date", formatDate("not a date"))
}

func TestConsoleSender(t *testing.T) {
	var sender Sender = ConsoleSender{}
	err := sender.SendBookingConfirmation(context.Background(), sampleBooking())
	assert.NoError(t, err)
}

func TestGenerateConfirmation_ContainsContactBlock(t *testing.T) {
	html, err := GenerateConfirmation(sampleBooking())
	require.NoError(t, err)
	assert.True(t, strings.Contains(html, "hello@brandenadams.com"))
}
