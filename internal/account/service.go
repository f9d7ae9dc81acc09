package account

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	mathrand "math/rand"
	"strings"
	"time"

	"github.com/Sehnya/photo-web-demo/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

var ErrAccountExists = errors.New("an account with this email already exists")

// Service owns the pending-user list, the verified-user list, the
// subscription-consent list and the current-session pointer.
type Service struct {
	store storage.Store
	now   func() time.Time
}

func NewService(store storage.Store) *Service {
	return &Service{store: store, now: time.Now}
}

// CreatePendingUser registers an unverified account and issues its
// verification code. A verified user under the same email blocks the
// signup; a prior pending record is replaced.
func (s *Service) CreatePendingUser(ctx context.Context, reg Registration) (Issued, error) {
	email := normalizeEmail(reg.Email)

	users, err := s.loadUsers(ctx)
	if err != nil {
		return Issued{}, err
	}
	for _, u := range users {
		if u.Email == email {
			return Issued{}, ErrAccountExists
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return Issued{}, fmt.Errorf("hash password failed: %w", err)
	}

	code := generateCode()
	expiresAt := s.now().Add(codeTTL).UnixMilli()
	record := PendingUser{
		ID:               email,
		Email:            email,
		FirstName:        reg.FirstName,
		LastName:         reg.LastName,
		Phone:            reg.Phone,
		PasswordHash:     string(hash),
		MarketingOptIn:   reg.MarketingOptIn,
		VerificationCode: code,
		ExpiresAt:        expiresAt,
	}

	pendings, err := s.loadPendings(ctx)
	if err != nil {
		return Issued{}, err
	}
	filtered := pendings[:0]
	for _, p := range pendings {
		if p.Email != email {
			filtered = append(filtered, p)
		}
	}
	filtered = append(filtered, record)

	if err := s.persistPendings(ctx, filtered); err != nil {
		return Issued{}, err
	}
	return Issued{Code: code, ExpiresAt: expiresAt}, nil
}

// ResendVerificationCode issues a fresh code and expiry, invalidating
// the old code. An email with no pending record gets a stub so a code
// can still be verified later.
func (s *Service) ResendVerificationCode(ctx context.Context, emailAddr string) (Issued, error) {
	email := normalizeEmail(emailAddr)

	pendings, err := s.loadPendings(ctx)
	if err != nil {
		return Issued{}, err
	}

	code := generateCode()
	expiresAt := s.now().Add(codeTTL).UnixMilli()

	found := false
	for i := range pendings {
		if pendings[i].Email == email {
			pendings[i].VerificationCode = code
			pendings[i].ExpiresAt = expiresAt
			found = true
			break
		}
	}
	if !found {
		pendings = append(pendings, PendingUser{
			ID:               email,
			Email:            email,
			VerificationCode: code,
			ExpiresAt:        expiresAt,
		})
	}

	if err := s.persistPendings(ctx, pendings); err != nil {
		return Issued{}, err
	}
	return Issued{Code: code, ExpiresAt: expiresAt}, nil
}

// Verify checks the code against the pending record. On success the
// pending record is removed and a verified User materializes, replacing
// any stale user under the same email. Returns false for a missing
// record, an expired code, or a mismatch.
func (s *Service) Verify(ctx context.Context, emailAddr, code string) (bool, error) {
	email := normalizeEmail(emailAddr)

	pendings, err := s.loadPendings(ctx)
	if err != nil {
		return false, err
	}

	idx := -1
	for i, p := range pendings {
		if p.Email == email {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, nil
	}

	p := pendings[idx]
	if s.now().UnixMilli() > p.ExpiresAt {
		return false, nil
	}
	if p.VerificationCode != code {
		return false, nil
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		return false, err
	}
	kept := users[:0]
	for _, u := range users {
		if u.Email != email {
			kept = append(kept, u)
		}
	}
	kept = append(kept, User{
		ID:             p.Email,
		Email:          p.Email,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Phone:          p.Phone,
		PasswordHash:   p.PasswordHash,
		MarketingOptIn: p.MarketingOptIn,
		Verified:       true,
		CreatedAt:      s.now().UnixMilli(),
	})
	if err := s.persistUsers(ctx, kept); err != nil {
		return false, err
	}

	pendings = append(pendings[:idx], pendings[idx+1:]...)
	if err := s.persistPendings(ctx, pendings); err != nil {
		return false, err
	}
	return true, nil
}

// GetUserByEmail returns the verified user, or nil if none exists.
func (s *Service) GetUserByEmail(ctx context.Context, emailAddr string) (*User, error) {
	email := normalizeEmail(emailAddr)

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, nil
}

// SignIn compares credentials and reports a discriminated outcome.
func (s *Service) SignIn(ctx context.Context, emailAddr, password string) (SignInResult, error) {
	user, err := s.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		return SignInResult{}, err
	}
	if user == nil {
		return SignInResult{Status: SignInNoAccount}, nil
	}
	if !user.Verified {
		return SignInResult{Status: SignInUnverified}, nil
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return SignInResult{Status: SignInInvalidCredentials}, nil
	}
	return SignInResult{Status: SignInOK, User: user}, nil
}

// SaveSubscriptionConsent appends to the consent list.
func (s *Service) SaveSubscriptionConsent(ctx context.Context, consent SubscriptionConsent) error {
	var subs []SubscriptionConsent
	data, err := s.store.Get(ctx, storage.KeySubscriptions)
	if err == nil {
		if err := json.Unmarshal(data, &subs); err != nil {
			log.Printf("subscriptions slot corrupt, resetting: %v", err)
			subs = nil
		}
	} else if !errors.Is(err, storage.ErrKeyNotFound) {
		return fmt.Errorf("read subscriptions failed: %w", err)
	}

	consent.Email = normalizeEmail(consent.Email)
	subs = append(subs, consent)

	out, err := json.Marshal(subs)
	if err != nil {
		return fmt.Errorf("marshal subscriptions failed: %w", err)
	}
	if err := s.store.Set(ctx, storage.KeySubscriptions, out); err != nil {
		return fmt.Errorf("persist subscriptions failed: %w", err)
	}
	return nil
}

// CurrentUser reads the session pointer; nil means signed out.
func (s *Service) CurrentUser(ctx context.Context) (*User, error) {
	data, err := s.store.Get(ctx, storage.KeySession)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session failed: %w", err)
	}

	var user User
	if err := json.Unmarshal(data, &user); err != nil {
		log.Printf("session slot corrupt, clearing: %v", err)
		return nil, nil
	}
	return &user, nil
}

// SetCurrentUser sets or, with nil, clears the session pointer.
func (s *Service) SetCurrentUser(ctx context.Context, user *User) error {
	if user == nil {
		if err := s.store.Delete(ctx, storage.KeySession); err != nil {
			return fmt.Errorf("clear session failed: %w", err)
		}
		return nil
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal session failed: %w", err)
	}
	if err := s.store.Set(ctx, storage.KeySession, data); err != nil {
		return fmt.Errorf("persist session failed: %w", err)
	}
	return nil
}

func (s *Service) loadPendings(ctx context.Context) ([]PendingUser, error) {
	data, err := s.store.Get(ctx, storage.KeyPendingUsers)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return []PendingUser{}, nil
		}
		return nil, fmt.Errorf("read pending users failed: %w", err)
	}

	var pendings []PendingUser
	if err := json.Unmarshal(data, &pendings); err != nil {
		log.Printf("pending users slot corrupt, resetting: %v", err)
		return []PendingUser{}, nil
	}
	return pendings, nil
}

func (s *Service) persistPendings(ctx context.Context, pendings []PendingUser) error {
	data, err := json.Marshal(pendings)
	if err != nil {
		return fmt.Errorf("marshal pending users failed: %w", err)
	}
	if err := s.store.Set(ctx, storage.KeyPendingUsers, data); err != nil {
		return fmt.Errorf("persist pending users failed: %w", err)
	}
	return nil
}

func (s *Service) loadUsers(ctx context.Context) ([]User, error) {
	data, err := s.store.Get(ctx, storage.KeyUsers)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return []User{}, nil
		}
		return nil, fmt.Errorf("read users failed: %w", err)
	}

	var users []User
	if err := json.Unmarshal(data, &users); err != nil {
		log.Printf("users slot corrupt, resetting: %v", err)
		return []User{}, nil
	}
	return users, nil
}

func (s *Service) persistUsers(ctx context.Context, users []User) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("marshal users failed: %w", err)
	}
	if err := s.store.Set(ctx, storage.KeyUsers, data); err != nil {
		return fmt.Errorf("persist users failed: %w", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// generateCode returns a 6-digit numeric code, cryptographically
// sourced when possible.
func generateCode() string {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err == nil {
		n := binary.BigEndian.Uint32(buf[:]) % 1_000_000
		return fmt.Sprintf("%06d", n)
	}
	return fmt.Sprintf("%06d", mathrand.Intn(1_000_000))
}
