// Package email renders and "sends" booking confirmation emails. There
// is no real delivery transport; the console sender logs what a
// provider integration would deliver.
package email

import (
	"context"
	"fmt"
	"log"
	"time"
)

// BookingData carries everything the confirmation template needs.
type BookingData struct {
	BookingID   string
	SessionType string
	Date        string // YYYY-MM-DD
	StartTime   int    // hour, 24h clock
	EndTime     int
	ClientName  string
	ClientEmail string
	ClientPhone string
	Notes       string
	Price       float64
}

// Sender delivers a booking confirmation to the client.
type Sender interface {
	SendBookingConfirmation(ctx context.Context, booking BookingData) error
}

// ConsoleSender simulates delivery by logging. Swapping in SendGrid,
// Mailgun or SES means implementing Sender against their APIs.
type ConsoleSender struct{}

func (ConsoleSender) SendBookingConfirmation(_ context.Context, booking BookingData) error {
	log.Printf("Sending booking confirmation email to: %s", booking.ClientEmail)
	log.Printf("Booking ID: %s", booking.BookingID)

	html, err := GenerateConfirmation(booking)
	if err != nil {
		return fmt.Errorf("generate confirmation email: %w", err)
	}

	log.Printf("Email HTML generated successfully (%d bytes)", len(html))
	return nil
}

func formatTime(hour24 int) string {
	ampm := "AM"
	if hour24 >= 12 {
		ampm = "PM"
	}
	h := hour24 % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:00 %s", h, ampm)
}

func formatDate(dateString string) string {
	date, err := time.Parse("2006-01-02", dateString)
	if err != nil {
		return dateString
	}
	return date.Format("Monday, January 2, 2006")
}
