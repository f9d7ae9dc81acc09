// Package booking implements the scheduling flow: pick a session type,
// pick a date and start hour, leave client details, confirm. Confirmed
// bookings are appended to a persisted list; sessions in progress live
// in memory only.
package booking

import (
	"fmt"
	"time"
)

// Studio working hours. A slot must end by ClosingHour, so the last
// valid start hour for a session is ClosingHour minus its duration.
const (
	OpeningHour = 8
	ClosingHour = 17
)

type State string

const (
	StateSelecting State = "select"
	StateConfirmed State = "success"
)

// ClientInfo is the contact form attached to a confirmation. Name and
// Email are required; Phone and Notes are optional.
type ClientInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// Record is a committed booking as stored in the bookings list. The
// list is append-only; there is no update or cancel path.
type Record struct {
	ID          string     `json:"id"`
	SessionType string     `json:"type"`
	Date        string     `json:"date"`
	Start       int        `json:"start"`
	End         int        `json:"end"`
	Price       float64    `json:"price"`
	Client      ClientInfo `json:"client"`
	CreatedAt   int64      `json:"createdAt"` // epoch ms
}

// Session is one in-progress scheduling flow.
type Session struct {
	ID            string `json:"id"`
	State         State  `json:"state"`
	SessionTypeID string `json:"session_type_id,omitempty"`
	Date          string `json:"date,omitempty"`
	StartHour     int    `json:"start_hour"`
	HasSlot       bool   `json:"has_slot"`
	BookingID     string `json:"booking_id,omitempty"`
	CreatedAt     time.Time
}

// Summary is the read-only derived view shown while selecting.
type Summary struct {
	SessionType string  `json:"session_type,omitempty"`
	Price       float64 `json:"price,omitempty"`
	Date        string  `json:"date,omitempty"`
	Start       int     `json:"start,omitempty"`
	End         int     `json:"end,omitempty"`
	StartHours  []int   `json:"start_hours"`
}

// AvailableStartHours lists every whole hour a session of the given
// duration may begin: OpeningHour through ClosingHour-duration,
// inclusive. A non-positive or oversized duration yields no slots.
func AvailableStartHours(durationHours int) []int {
	if durationHours <= 0 {
		return nil
	}

	last := ClosingHour - durationHours
	if last < OpeningHour {
		return nil
	}

	hours := make([]int, 0, last-OpeningHour+1)
	for h := OpeningHour; h <= last; h++ {
		hours = append(hours, h)
	}
	return hours
}

// FormatHour renders an hour in the 12-hour clock used on the site and
// in confirmation emails.
func FormatHour(hour24 int) string {
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
