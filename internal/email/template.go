package email

import (
	"bytes"
	"fmt"
	"html/template"
)

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Your Shoot is Booked - Branden Adams Photography</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            line-height: 1.6;
            color: #ffffff;
            background-color: #000000;
        }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { text-align: center; margin-bottom: 40px; }
        .check-icon {
            width: 80px; height: 80px; background-color: #10b981;
            border-radius: 50%; display: inline-flex;
            align-items: center; justify-content: center;
            margin-bottom: 24px; font-size: 32px;
        }
        .main-title { font-size: 36px; font-weight: 900; margin-bottom: 16px; }
        .date-time { font-size: 20px; font-weight: 600; color: #10b981; margin-bottom: 8px; }
        .photographer { font-size: 16px; color: #d1d5db; }
        .card {
            background-color: rgba(255, 255, 255, 0.05);
            border-radius: 16px; padding: 32px; margin-bottom: 32px;
        }
        .card-title { font-size: 24px; font-weight: 700; margin-bottom: 24px; }
        .detail-label { font-size: 12px; color: #9ca3af; margin-bottom: 4px; }
        .detail-value { font-weight: 600; font-size: 14px; }
        .booking-id-box {
            background-color: rgba(255, 255, 255, 0.1);
            border-radius: 8px; padding: 16px; margin-top: 16px;
        }
        .booking-id { font-family: monospace; font-size: 14px; }
        .cta-button {
            display: inline-block; background-color: #ffffff; color: #000000;
            font-weight: 600; padding: 12px 32px; border-radius: 8px;
            text-decoration: none; margin: 8px;
        }
        .contact-box { text-align: center; margin-top: 40px; }
        .contact-link { color: #10b981; }
        .booking-ref { font-size: 12px; color: #9ca3af; margin-top: 16px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <div class="check-icon">&#10003;</div>
            <h1 class="main-title">YOUR SHOOT IS BOOKED</h1>
            <div class="date-time">{{.FormattedDate}} &middot; {{.StartLabel}} &ndash; {{.EndLabel}}</div>
            <div class="photographer">Branden Adams Photography</div>
        </div>
        <div class="card">
            <div class="card-title">Session Details</div>
            <div class="detail-label">Session Type</div>
            <div class="detail-value">{{.SessionType}}</div>
            <div class="detail-label">Client</div>
            <div class="detail-value">{{.ClientName}} ({{.ClientEmail}})</div>
            {{if .Notes}}<div class="detail-label">Notes</div>
            <div class="detail-value">{{.Notes}}</div>{{end}}
            <div class="booking-id-box">
                <div class="detail-label">Booking ID</div>
                <div class="booking-id">{{.BookingID}}</div>
            </div>
        </div>
        <div class="card" style="text-align: center;">
            <div class="card-title">Next Steps</div>
            <p>Pay your 50% deposit to confirm your session date and time.</p>
            <a href="{{.PaymentLink}}" class="cta-button">Pay Deposit Now (${{.DepositLabel}})</a>
            <a href="{{.BookingLink}}" class="cta-button">Book Another Session</a>
        </div>
        <div class="contact-box">
            <p>
                Contact us at <a href="mailto:hello@brandenadams.com" class="contact-link">hello@brandenadams.com</a> or
                <a href="tel:+1234567890" class="contact-link">(123) 456-7890</a>
            </p>
            <p class="booking-ref">
                Booking ID: {{.BookingID}} &bull; Please reference this ID in all communications
            </p>
        </div>
    </div>
</body>
</html>`))

type confirmationView struct {
	BookingData
	FormattedDate string
	StartLabel    string
	EndLabel      string
	DepositLabel  string
	PaymentLink   string
	BookingLink   string
}

// GenerateConfirmation renders the booking confirmation HTML document.
func GenerateConfirmation(booking BookingData) (string, error) {
	view := confirmationView{
		BookingData:   booking,
		FormattedDate: formatDate(booking.Date),
		StartLabel:    formatTime(booking.StartTime),
		EndLabel:      formatTime(booking.EndTime),
		DepositLabel:  fmt.Sprintf("%.2f", booking.Price/2),
		PaymentLink:   "#/checkout",
		BookingLink:   "#/schedule",
	}

	var buf bytes.Buffer
	if err := confirmationTmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render confirmation template: %w", err)
	}
	return buf.String(), nil
}
