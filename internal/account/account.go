// Package account implements the pending-user / verified-user lifecycle
// with simulated email-code verification. Unlike the demo it descends
// from, passwords are bcrypt-hashed; everything else keeps the original
// shape, including email-as-id and the 15-minute code expiry.
package account

import (
	"time"
)

const (
	codeTTL    = 15 * time.Minute
	codeDigits = 6
)

// PendingUser is a registration awaiting code verification. The email,
// lowercased, serves as id.
type PendingUser struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Phone            string `json:"phone"`
	PasswordHash     string `json:"passwordHash"`
	MarketingOptIn   bool   `json:"marketingOptIn"`
	VerificationCode string `json:"verificationCode"`
	ExpiresAt        int64  `json:"expiresAt"` // epoch ms
}

// User is a verified account. At most one exists per email.
type User struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Phone          string `json:"phone"`
	PasswordHash   string `json:"passwordHash"`
	MarketingOptIn bool   `json:"marketingOptIn"`
	Verified       bool   `json:"verified"`
	CreatedAt      int64  `json:"createdAt"` // epoch ms
}

// SubscriptionConsent records a marketing opt-in/out decision. The list
// is append-only.
type SubscriptionConsent struct {
	Email          string `json:"email"`
	MarketingOptIn bool   `json:"marketingOptIn"`
	Timestamp      int64  `json:"timestamp"` // epoch ms
}

// Registration is the signup form input.
type Registration struct {
	Email          string
	FirstName      string
	LastName       string
	Phone          string
	Password       string
	MarketingOptIn bool
}

// Issued reports the code handed to a pending user. In production the
// code would travel by email, never through the API response.
type Issued struct {
	Code      string `json:"code"`
	ExpiresAt int64  `json:"expiresAt"`
}

// SignInStatus discriminates sign-in outcomes; the store never throws
// for a failed attempt.
type SignInStatus string

const (
	SignInOK                 SignInStatus = "ok"
	SignInNoAccount          SignInStatus = "no_account"
	SignInUnverified         SignInStatus = "unverified"
	SignInInvalidCredentials SignInStatus = "invalid_credentials"
)

// Reason returns the user-facing message for a failed status.
func (s SignInStatus) Reason() string {
	switch s {
	case SignInNoAccount:
		return "No account found for this email."
	case SignInUnverified:
		return "Please verify your email before logging in."
	case SignInInvalidCredentials:
		return "Invalid credentials."
	default:
		return ""
	}
}

// SignInResult carries the outcome; User is set only when Status is ok.
type SignInResult struct {
	Status SignInStatus
	User   *User
}
