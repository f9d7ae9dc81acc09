package http

import (
	"context"
	"log"
	"net/http"

	"github.com/Sehnya/photo-web-demo/internal/catalog"
	"github.com/Sehnya/photo-web-demo/internal/payments"
	"github.com/go-chi/chi/v5"
)

// LinkProber verifies a payment link answers before it is handed out.
// May be nil, in which case configured links are trusted as-is.
type LinkProber interface {
	Probe(ctx context.Context, url string) (bool, error)
}

type CatalogHandler struct {
	links  payments.Links
	prober LinkProber
}

func NewCatalogHandler(links payments.Links, prober LinkProber) *CatalogHandler {
	return &CatalogHandler{links: links, prober: prober}
}

// GET /api/v1/catalog
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, catalog.All())
}

type PaymentLinkResponseDTO struct {
	Enabled bool   `json:"enabled"`
	URL     string `json:"url,omitempty"`
	Message string `json:"message,omitempty"`
}

// GET /api/v1/catalog/{id}/payment-link
func (h *CatalogHandler) PaymentLink(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := catalog.ByID(id); !ok {
		respondError(w, http.StatusNotFound, "unknown_package", "no such package")
		return
	}

	url, ok := h.links.ForPackage(id)
	if !ok {
		respondJSON(w, http.StatusOK, PaymentLinkResponseDTO{
			Enabled: false,
			Message: payments.DisabledMessage,
		})
		return
	}

	if h.prober != nil {
		reachable, err := h.prober.Probe(r.Context(), url)
		if err != nil || !reachable {
			if err != nil {
				log.Printf("payment link probe for %s failed: %v", id, err)
			}
			respondJSON(w, http.StatusOK, PaymentLinkResponseDTO{
				Enabled: false,
				Message: payments.UnreachableMessage,
			})
			return
		}
	}
	respondJSON(w, http.StatusOK, PaymentLinkResponseDTO{Enabled: true, URL: url})
}
