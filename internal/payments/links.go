// Package payments is the boundary to the hosted payment provider. The
// core never captures money; it only hands out configured payment-link
// URLs. A missing link means payment is disabled, not an error.
package payments

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

// DisabledMessage is surfaced when no link is configured.
const DisabledMessage = "Payment links are not configured. Set PAYMENT_LINK or per-package links to enable payment."

// UnreachableMessage is surfaced when a configured link fails its probe.
const UnreachableMessage = "Payment is temporarily unavailable. Please try again shortly."

// Links maps package ids to their hosted checkout URLs, with an
// optional global fallback.
type Links struct {
	PerPackage map[string]string
	Fallback   string
}

// ForPackage returns the payment link for a package id, falling back to
// the global link. ok is false when payment is unavailable.
func (l Links) ForPackage(id string) (string, bool) {
	if url, exists := l.PerPackage[id]; exists && url != "" {
		return url, true
	}
	if l.Fallback != "" {
		return l.Fallback, true
	}
	return "", false
}

// Enabled reports whether any payment path is configured at all.
func (l Links) Enabled() bool {
	if l.Fallback != "" {
		return true
	}
	for _, url := range l.PerPackage {
		if url != "" {
			return true
		}
	}
	return false
}

// Prober checks that a configured link actually answers. The breaker
// keeps a flapping provider from being hammered; probe failures only
// gate UI enablement and never block checkout itself.
type Prober struct {
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[bool]
}

func NewProber() *Prober {
	settings := gobreaker.Settings{
		Name:    "payment-link-probe",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	}
	return &Prober{
		client:  &http.Client{Timeout: 5 * time.Second},
		breaker: gobreaker.NewCircuitBreaker[bool](settings),
	}
}

// Probe issues a HEAD request against the link through the breaker.
func (p *Prober) Probe(ctx context.Context, url string) (bool, error) {
	return p.breaker.Execute(func() (bool, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
		if err != nil {
			return false, fmt.Errorf("build probe request: %w", err)
		}

		resp, err := p.client.Do(req)
		if err != nil {
			return false, fmt.Errorf("probe %s: %w", url, err)
		}
		defer resp.Body.Close()

		return resp.StatusCode < http.StatusInternalServerError, nil
	})
}
