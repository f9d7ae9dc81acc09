// Package checkout turns a priced cart into a committed order snapshot.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Sehnya/photo-web-demo/internal/cart"
	"github.com/Sehnya/photo-web-demo/internal/pricing"
	"github.com/Sehnya/photo-web-demo/internal/storage"
	"github.com/google/uuid"
)

type PaymentMethod string

const (
	PaymentFull    PaymentMethod = "full"
	PaymentDeposit PaymentMethod = "deposit"
)

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrNoCheckout           = errors.New("no checkout on record")
)

// Quote is a checkout computation before confirmation. DueNow and
// Remaining always sum to the breakdown total.
type Quote struct {
	pricing.Breakdown
	PaymentMethod PaymentMethod `json:"payment_method"`
	DueNow        float64       `json:"due_now"`
	Remaining     float64       `json:"remaining"`
}

// BookingDetails is the snapshot written when checkout completes. One
// slot holds the latest order only; a new checkout overwrites it.
type BookingDetails struct {
	OrderID       string        `json:"orderId"`
	Packages      []cart.Item   `json:"packages"`
	Subtotal      float64       `json:"subtotal"`
	Tax           float64       `json:"tax"`
	Total         float64       `json:"total"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	DepositAmount float64       `json:"depositAmount"`
	RemainingAmt  float64       `json:"remainingAmount"`
	StateCode     string        `json:"stateCode"`
	Timestamp     string        `json:"timestamp"`
}

// Publisher receives completed-checkout notifications. Nil publishers
// are allowed; the notification is best effort.
type Publisher interface {
	CheckoutCompleted(ctx context.Context, details BookingDetails)
}

type Service struct {
	store     storage.Store
	publisher Publisher
	now       func() time.Time
}

func NewService(store storage.Store, publisher Publisher) *Service {
	return &Service{store: store, publisher: publisher, now: time.Now}
}

// Compute prices the cart under the jurisdiction and splits the total
// according to the payment method. Deposit means 50% now; the remainder
// is derived as total minus deposit so the two halves sum exactly.
func Compute(items []cart.Item, jurisdiction string, method PaymentMethod) (Quote, error) {
	if method != PaymentFull && method != PaymentDeposit {
		return Quote{}, ErrInvalidPaymentMethod
	}

	breakdown := pricing.ComputeBreakdown(items, jurisdiction)

	quote := Quote{Breakdown: breakdown, PaymentMethod: method}
	switch method {
	case PaymentDeposit:
		quote.DueNow = breakdown.Total / 2
		quote.Remaining = breakdown.Total - quote.DueNow
	case PaymentFull:
		quote.DueNow = breakdown.Total
		quote.Remaining = 0
	}

	return quote, nil
}

// Confirm commits the checkout: computes the final quote and writes the
// order snapshot to the last-checkout slot. The previous snapshot, if
// any, is overwritten; there is no order history.
func (s *Service) Confirm(ctx context.Context, items []cart.Item, jurisdiction string, method PaymentMethod) (BookingDetails, error) {
	if len(items) == 0 {
		return BookingDetails{}, ErrEmptyCart
	}

	quote, err := Compute(items, jurisdiction, method)
	if err != nil {
		return BookingDetails{}, err
	}

	details := BookingDetails{
		OrderID:       uuid.NewString(),
		Packages:      items,
		Subtotal:      quote.Subtotal,
		Tax:           quote.Tax,
		Total:         quote.Total,
		PaymentMethod: method,
		DepositAmount: quote.DueNow,
		RemainingAmt:  quote.Remaining,
		StateCode:     jurisdiction,
		Timestamp:     s.now().UTC().Format(time.RFC3339),
	}

	data, err := json.Marshal(details)
	if err != nil {
		return BookingDetails{}, fmt.Errorf("marshal checkout snapshot failed: %w", err)
	}
	if err := s.store.Set(ctx, storage.KeyLastCheckout, data); err != nil {
		return BookingDetails{}, fmt.Errorf("persist checkout snapshot failed: %w", err)
	}

	if s.publisher != nil {
		s.publisher.CheckoutCompleted(ctx, details)
	}

	return details, nil
}

// Last returns the most recent checkout snapshot.
func (s *Service) Last(ctx context.Context) (BookingDetails, error) {
	data, err := s.store.Get(ctx, storage.KeyLastCheckout)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return BookingDetails{}, ErrNoCheckout
		}
		return BookingDetails{}, fmt.Errorf("read checkout snapshot failed: %w", err)
	}

	var details BookingDetails
	if err := json.Unmarshal(data, &details); err != nil {
		log.Printf("checkout slot corrupt: %v", err)
		return BookingDetails{}, ErrNoCheckout
	}
	return details, nil
}
