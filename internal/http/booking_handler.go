package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Sehnya/photo-web-demo/internal/booking"
	"github.com/Sehnya/photo-web-demo/internal/catalog"
	"github.com/go-chi/chi/v5"
)

type BookingHandler struct {
	bookings *booking.Service
}

func NewBookingHandler(bookings *booking.Service) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

type SelectTypeRequestDTO struct {
	SessionTypeID string `json:"session_type_id"`
}

type SelectSlotRequestDTO struct {
	Date      string `json:"date"`
	StartHour int    `json:"start_hour"`
}

type SessionResponseDTO struct {
	Session booking.Session `json:"session"`
	Summary booking.Summary `json:"summary"`
}

func (h *BookingHandler) respondSession(w http.ResponseWriter, status int, session booking.Session) {
	summary, _ := h.bookings.Summarize(session.ID)
	respondJSON(w, status, SessionResponseDTO{Session: session, Summary: summary})
}

// POST /api/v1/booking/session
func (h *BookingHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	session := h.bookings.StartSession()
	h.respondSession(w, http.StatusCreated, session)
}

// GET /api/v1/booking/session/{id}
func (h *BookingHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.bookings.GetSession(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "session_not_found", "no such booking session")
		return
	}
	h.respondSession(w, http.StatusOK, session)
}

// POST /api/v1/booking/session/{id}/type
func (h *BookingHandler) SelectType(w http.ResponseWriter, r *http.Request) {
	var req SelectTypeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	session, err := h.bookings.SelectType(chi.URLParam(r, "id"), req.SessionTypeID)
	if err != nil {
		h.respondBookingError(w, r, err)
		return
	}
	h.respondSession(w, http.StatusOK, session)
}

// POST /api/v1/booking/session/{id}/slot
func (h *BookingHandler) SelectSlot(w http.ResponseWriter, r *http.Request) {
	var req SelectSlotRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	session, err := h.bookings.SelectSlot(chi.URLParam(r, "id"), req.Date, req.StartHour)
	if err != nil {
		h.respondBookingError(w, r, err)
		return
	}
	h.respondSession(w, http.StatusOK, session)
}

// POST /api/v1/booking/session/{id}/confirm
func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var client booking.ClientInfo
	if err := json.NewDecoder(r.Body).Decode(&client); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	rec, err := h.bookings.Confirm(r.Context(), chi.URLParam(r, "id"), client)
	if err != nil {
		h.respondBookingError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, rec)
}

// DELETE /api/v1/booking/session/{id}
func (h *BookingHandler) Reset(w http.ResponseWriter, r *http.Request) {
	session, err := h.bookings.Reset(chi.URLParam(r, "id"))
	if err != nil {
		h.respondBookingError(w, r, err)
		return
	}
	h.respondSession(w, http.StatusOK, session)
}

type SlotsResponseDTO struct {
	SessionTypeID string   `json:"session_type_id"`
	DurationHours int      `json:"duration_hours"`
	StartHours    []int    `json:"start_hours"`
	Labels        []string `json:"labels"`
}

// GET /api/v1/booking/slots?type=classic  (or ?duration=2)
func (h *BookingHandler) Slots(w http.ResponseWriter, r *http.Request) {
	typeID := r.URL.Query().Get("type")
	duration := 0

	if typeID != "" {
		pkg, ok := catalog.ByID(typeID)
		if !ok {
			respondError(w, http.StatusNotFound, "unknown_type", "no such session type")
			return
		}
		duration = pkg.DurationHours
	} else if raw := r.URL.Query().Get("duration"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_duration", "duration must be an integer")
			return
		}
		duration = d
	} else {
		respondError(w, http.StatusBadRequest, "missing_type", "type or duration is required")
		return
	}

	hours := booking.AvailableStartHours(duration)
	labels := make([]string, len(hours))
	for i, hour := range hours {
		labels[i] = booking.FormatHour(hour) + " – " + booking.FormatHour(hour+duration)
	}

	respondJSON(w, http.StatusOK, SlotsResponseDTO{
		SessionTypeID: typeID,
		DurationHours: duration,
		StartHours:    hours,
		Labels:        labels,
	})
}

// GET /api/v1/bookings
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.bookings.Bookings(r.Context())
	if err != nil {
		respondStorageError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, records)
}

func (h *BookingHandler) respondBookingError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *booking.ValidationError
	switch {
	case errors.As(err, &vErr):
		respondError(w, http.StatusBadRequest, "validation_failed", vErr.Error())
	case errors.Is(err, booking.ErrSessionNotFound):
		respondError(w, http.StatusNotFound, "session_not_found", "no such booking session")
	case errors.Is(err, booking.ErrUnknownType):
		respondError(w, http.StatusBadRequest, "unknown_type", "select a session type first")
	case errors.Is(err, booking.ErrInvalidSlot):
		respondError(w, http.StatusBadRequest, "invalid_slot", "choose an available time slot")
	case errors.Is(err, booking.ErrSlotTaken):
		respondError(w, http.StatusConflict, "slot_taken", "that slot is already booked")
	case errors.Is(err, booking.ErrAlreadyDone):
		respondError(w, http.StatusConflict, "session_confirmed", "this session is already confirmed")
	default:
		respondStorageError(w, r, err)
	}
}
