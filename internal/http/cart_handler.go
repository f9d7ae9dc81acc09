package http

import (
	"encoding/json"
	"net/http"

	"github.com/Sehnya/photo-web-demo/internal/cart"
	"github.com/Sehnya/photo-web-demo/internal/catalog"
	"github.com/Sehnya/photo-web-demo/internal/pricing"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	carts *cart.Service
}

func NewCartHandler(carts *cart.Service) *CartHandler {
	return &CartHandler{carts: carts}
}

type AddItemRequestDTO struct {
	PackageID string `json:"package_id"`
}

type ChangeQtyRequestDTO struct {
	Delta int `json:"delta"`
}

type CartResponseDTO struct {
	Items     []cart.Item       `json:"items"`
	Breakdown pricing.Breakdown `json:"breakdown"`
	State     string            `json:"state"`
}

func (h *CartHandler) respondCart(w http.ResponseWriter, r *http.Request, items []cart.Item) {
	state := r.URL.Query().Get("state")
	if state == "" {
		state = "CA"
	}
	respondJSON(w, http.StatusOK, CartResponseDTO{
		Items:     items,
		Breakdown: pricing.ComputeBreakdown(items, state),
		State:     state,
	})
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.respondCart(w, r, h.carts.Load(r.Context()))
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	pkg, ok := catalog.ByID(req.PackageID)
	if !ok {
		respondError(w, http.StatusNotFound, "unknown_package", "no such package")
		return
	}

	items, err := h.carts.AddItem(r.Context(), pkg.ID, pkg.Title, pkg.Price)
	if err != nil {
		respondStorageError(w, r, err)
		return
	}
	h.respondCart(w, r, items)
}

// PUT /api/v1/cart/items/{id}
func (h *CartHandler) ChangeQty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req ChangeQtyRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	items, err := h.carts.ChangeQty(r.Context(), id, req.Delta)
	if err != nil {
		respondStorageError(w, r, err)
		return
	}
	h.respondCart(w, r, items)
}

// DELETE /api/v1/cart/items/{id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	items, err := h.carts.RemoveItem(r.Context(), id)
	if err != nil {
		respondStorageError(w, r, err)
		return
	}
	h.respondCart(w, r, items)
}

// DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.carts.Clear(r.Context()); err != nil {
		respondStorageError(w, r, err)
		return
	}
	h.respondCart(w, r, nil)
}
