package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Sehnya/photo-web-demo/internal/cart"
	"github.com/Sehnya/photo-web-demo/internal/checkout"
	"github.com/Sehnya/photo-web-demo/internal/payments"
)

type CheckoutHandler struct {
	carts     *cart.Service
	checkouts *checkout.Service
	links     payments.Links
}

func NewCheckoutHandler(carts *cart.Service, checkouts *checkout.Service, links payments.Links) *CheckoutHandler {
	return &CheckoutHandler{carts: carts, checkouts: checkouts, links: links}
}

type CheckoutRequestDTO struct {
	State         string `json:"state"`
	PaymentMethod string `json:"payment_method"`
}

type QuoteResponseDTO struct {
	checkout.Quote
	PaymentEnabled bool   `json:"payment_enabled"`
	PaymentMessage string `json:"payment_message,omitempty"`
}

// POST /api/v1/checkout/quote
func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	items := h.carts.Load(r.Context())
	quote, err := checkout.Compute(items, req.State, checkout.PaymentMethod(req.PaymentMethod))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_payment_method",
			"payment_method must be \"full\" or \"deposit\"")
		return
	}

	resp := QuoteResponseDTO{Quote: quote, PaymentEnabled: h.links.Enabled()}
	if !resp.PaymentEnabled {
		resp.PaymentMessage = payments.DisabledMessage
	}
	respondJSON(w, http.StatusOK, resp)
}

// POST /api/v1/checkout/confirm
func (h *CheckoutHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	items := h.carts.Load(r.Context())
	details, err := h.checkouts.Confirm(r.Context(), items, req.State, checkout.PaymentMethod(req.PaymentMethod))
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", "your cart is empty")
		return
	case errors.Is(err, checkout.ErrInvalidPaymentMethod):
		respondError(w, http.StatusBadRequest, "invalid_payment_method",
			"payment_method must be \"full\" or \"deposit\"")
		return
	case err != nil:
		respondStorageError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, details)
}

// GET /api/v1/checkout/last
func (h *CheckoutHandler) Last(w http.ResponseWriter, r *http.Request) {
	details, err := h.checkouts.Last(r.Context())
	if err != nil {
		if errors.Is(err, checkout.ErrNoCheckout) {
			respondError(w, http.StatusNotFound, "no_checkout", "no booking found")
			return
		}
		respondStorageError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, details)
}
