package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// RouterConfig bundles the handlers the router mounts.
type RouterConfig struct {
	Cart           *CartHandler
	Catalog        *CatalogHandler
	Checkout       *CheckoutHandler
	Booking        *BookingHandler
	Account        *AccountHandler
	RequestTimeout time.Duration
}

// NewRouter assembles the API surface.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cfg.Cart.GetCart)
			r.Delete("/", cfg.Cart.ClearCart)
			r.Post("/items", cfg.Cart.AddItem)
			r.Put("/items/{id}", cfg.Cart.ChangeQty)
			r.Delete("/items/{id}", cfg.Cart.RemoveItem)
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", cfg.Catalog.List)
			r.Get("/{id}/payment-link", cfg.Catalog.PaymentLink)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/quote", cfg.Checkout.Quote)
			r.Post("/confirm", cfg.Checkout.Confirm)
			r.Get("/last", cfg.Checkout.Last)
		})

		r.Route("/booking", func(r chi.Router) {
			r.Get("/slots", cfg.Booking.Slots)
			r.Post("/session", cfg.Booking.StartSession)
			r.Route("/session/{id}", func(r chi.Router) {
				r.Get("/", cfg.Booking.GetSession)
				r.Delete("/", cfg.Booking.Reset)
				r.Post("/type", cfg.Booking.SelectType)
				r.Post("/slot", cfg.Booking.SelectSlot)
				r.Post("/confirm", cfg.Booking.Confirm)
			})
		})
		r.Get("/bookings", cfg.Booking.List)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", cfg.Account.Signup)
			r.Post("/resend", cfg.Account.Resend)
			r.Post("/verify", cfg.Account.Verify)
			r.Post("/login", cfg.Account.Login)
			r.Post("/logout", cfg.Account.Logout)
			r.Get("/me", cfg.Account.Me)
		})
	})

	return otelhttp.NewHandler(r, "studio-api")
}
