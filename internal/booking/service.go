package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/Sehnya/photo-web-demo/internal/catalog"
	"github.com/Sehnya/photo-web-demo/internal/email"
	"github.com/Sehnya/photo-web-demo/internal/storage"
	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("booking session not found")
	ErrUnknownType     = errors.New("unknown session type")
	ErrInvalidSlot     = errors.New("start hour is not an available slot")
	ErrSlotTaken       = errors.New("slot is already booked")
	ErrAlreadyDone     = errors.New("session already confirmed")
)

// ValidationError reports a missing or malformed client field. It is a
// rejection of the submit, not a state transition.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Publisher receives confirmed-booking notifications. May be nil.
type Publisher interface {
	BookingConfirmed(ctx context.Context, rec Record)
}

// Service runs booking sessions and owns the persisted bookings list.
type Service struct {
	store     storage.Store
	sender    email.Sender
	publisher Publisher
	now       func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewService(store storage.Store, sender email.Sender, publisher Publisher) *Service {
	return &Service{
		store:     store,
		sender:    sender,
		publisher: publisher,
		now:       time.Now,
		sessions:  make(map[string]*Session),
	}
}

// StartSession opens a fresh scheduling flow. Like every session
// accessor it returns a copy; the live record only changes under the
// service lock.
func (s *Service) StartSession() Session {
	session := &Session{
		ID:        uuid.NewString(),
		State:     StateSelecting,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return *session
}

// GetSession returns a snapshot of the in-progress session by id.
func (s *Service) GetSession(id string) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return *session, nil
}

// SelectType sets the active session type. Changing type invalidates a
// previously chosen slot when it no longer fits the new duration.
func (s *Service) SelectType(id, typeID string) (Session, error) {
	pkg, ok := catalog.ByID(typeID)
	if !ok {
		return Session{}, ErrUnknownType
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	if session.State == StateConfirmed {
		return Session{}, ErrAlreadyDone
	}

	session.SessionTypeID = pkg.ID
	if session.HasSlot && !validStart(session.StartHour, pkg.DurationHours) {
		session.HasSlot = false
		session.StartHour = 0
	}
	return *session, nil
}

// SelectSlot picks a date and start hour for the current session type.
func (s *Service) SelectSlot(id, date string, startHour int) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	if session.State == StateConfirmed {
		return Session{}, ErrAlreadyDone
	}
	if session.SessionTypeID == "" {
		return Session{}, ErrUnknownType
	}

	pkg, _ := catalog.ByID(session.SessionTypeID)
	if !validStart(startHour, pkg.DurationHours) {
		return Session{}, ErrInvalidSlot
	}
	if date == "" {
		return Session{}, &ValidationError{Field: "date", Message: "a date is required"}
	}

	session.Date = date
	session.StartHour = startHour
	session.HasSlot = true
	return *session, nil
}

// Summarize returns the derived read-only view for the session.
func (s *Service) Summarize(id string) (Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return Summary{}, ErrSessionNotFound
	}

	summary := Summary{}
	if session.SessionTypeID != "" {
		pkg, _ := catalog.ByID(session.SessionTypeID)
		summary.SessionType = pkg.Title
		summary.Price = pkg.Price
		summary.StartHours = AvailableStartHours(pkg.DurationHours)
		if session.HasSlot {
			summary.Date = session.Date
			summary.Start = session.StartHour
			summary.End = session.StartHour + pkg.DurationHours
		}
	}
	return summary, nil
}

// Confirm submits client info and commits the booking. Missing required
// fields or a missing slot reject the submit without leaving the
// selecting state. On success the record is appended to the persisted
// list, the confirmation email is sent, and the session is terminal.
func (s *Service) Confirm(ctx context.Context, id string, client ClientInfo) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return Record{}, ErrSessionNotFound
	}
	if session.State == StateConfirmed {
		return Record{}, ErrAlreadyDone
	}
	if session.SessionTypeID == "" || !session.HasSlot {
		return Record{}, ErrInvalidSlot
	}
	if strings.TrimSpace(client.Name) == "" {
		return Record{}, &ValidationError{Field: "name", Message: "name is required"}
	}
	if strings.TrimSpace(client.Email) == "" || !strings.Contains(client.Email, "@") {
		return Record{}, &ValidationError{Field: "email", Message: "a valid email is required"}
	}

	pkg, _ := catalog.ByID(session.SessionTypeID)

	records, err := s.list(ctx)
	if err != nil {
		return Record{}, err
	}
	for _, existing := range records {
		if existing.Date == session.Date &&
			existing.Start == session.StartHour &&
			existing.SessionType == pkg.Title {
			return Record{}, ErrSlotTaken
		}
	}

	now := s.now()
	rec := Record{
		ID:          bookingID(session.Date, session.StartHour),
		SessionType: pkg.Title,
		Date:        session.Date,
		Start:       session.StartHour,
		End:         session.StartHour + pkg.DurationHours,
		Price:       pkg.Price,
		Client:      client,
		CreatedAt:   now.UnixMilli(),
	}

	records = append(records, rec)
	if err := s.persist(ctx, records); err != nil {
		return Record{}, err
	}

	session.State = StateConfirmed
	session.BookingID = rec.ID

	if s.sender != nil {
		if err := s.sender.SendBookingConfirmation(ctx, confirmationFor(rec)); err != nil {
			// The booking stands; the email is a courtesy
			log.Printf("confirmation email failed for booking %s: %v", rec.ID, err)
		}
	}
	if s.publisher != nil {
		s.publisher.BookingConfirmed(ctx, rec)
	}

	return rec, nil
}

// Reset discards in-progress selections and returns the session to its
// initial state. Committed bookings are unaffected.
func (s *Service) Reset(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}

	*session = Session{ID: session.ID, State: StateSelecting, CreatedAt: session.CreatedAt}
	return *session, nil
}

// Bookings returns the committed booking list.
func (s *Service) Bookings(ctx context.Context) ([]Record, error) {
	return s.list(ctx)
}

func (s *Service) list(ctx context.Context) ([]Record, error) {
	data, err := s.store.Get(ctx, storage.KeyBookings)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return []Record{}, nil
		}
		return nil, fmt.Errorf("read bookings failed: %w", err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		log.Printf("bookings slot corrupt, resetting: %v", err)
		return []Record{}, nil
	}
	return records, nil
}

func (s *Service) persist(ctx context.Context, records []Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal bookings failed: %w", err)
	}
	if err := s.store.Set(ctx, storage.KeyBookings, data); err != nil {
		return fmt.Errorf("persist bookings failed: %w", err)
	}
	return nil
}

func validStart(startHour, durationHours int) bool {
	return startHour >= OpeningHour && startHour+durationHours <= ClosingHour
}

// bookingID combines the slot with a uniqueness suffix so two bookings
// of the same slot on different days (or retries) never collide.
func bookingID(date string, startHour int) string {
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("%s-%d-%s", date, startHour, suffix)
}

func confirmationFor(rec Record) email.BookingData {
	return email.BookingData{
		BookingID:   rec.ID,
		SessionType: rec.SessionType,
		Date:        rec.Date,
		StartTime:   rec.Start,
		EndTime:     rec.End,
		ClientName:  rec.Client.Name,
		ClientEmail: rec.Client.Email,
		ClientPhone: rec.Client.Phone,
		Notes:       rec.Client.Notes,
		Price:       rec.Price,
	}
}
