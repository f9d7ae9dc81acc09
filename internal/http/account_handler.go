package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Sehnya/photo-web-demo/internal/account"
)

type AccountHandler struct {
	accounts *account.Service
}

func NewAccountHandler(accounts *account.Service) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

type SignupRequestDTO struct {
	Email          string `json:"email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Phone          string `json:"phone"`
	Password       string `json:"password"`
	MarketingOptIn bool   `json:"marketing_opt_in"`
}

type ResendRequestDTO struct {
	Email string `json:"email"`
}

type VerifyRequestDTO struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponseDTO struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Verified  bool   `json:"verified"`
}

func userDTO(u *account.User) UserResponseDTO {
	return UserResponseDTO{
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Verified:  u.Verified,
	}
}

// POST /api/v1/auth/signup
func (h *AccountHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "validation_failed", "email and password are required")
		return
	}

	issued, err := h.accounts.CreatePendingUser(r.Context(), account.Registration{
		Email:          req.Email,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Phone:          req.Phone,
		Password:       req.Password,
		MarketingOptIn: req.MarketingOptIn,
	})
	if err != nil {
		if errors.Is(err, account.ErrAccountExists) {
			respondError(w, http.StatusConflict, "account_exists",
				"An account with this email already exists. Please log in.")
			return
		}
		respondStorageError(w, r, err)
		return
	}

	if req.MarketingOptIn {
		consent := account.SubscriptionConsent{
			Email:          req.Email,
			MarketingOptIn: true,
			Timestamp:      time.Now().UnixMilli(),
		}
		if err := h.accounts.SaveSubscriptionConsent(r.Context(), consent); err != nil {
			// consent is best effort, the signup stands
			respondJSON(w, http.StatusCreated, issued)
			return
		}
	}

	// The code rides the response only because delivery is simulated.
	respondJSON(w, http.StatusCreated, issued)
}

// POST /api/v1/auth/resend
func (h *AccountHandler) Resend(w http.ResponseWriter, r *http.Request) {
	var req ResendRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Email == "" {
		respondError(w, http.StatusBadRequest, "validation_failed", "email is required")
		return
	}

	issued, err := h.accounts.ResendVerificationCode(r.Context(), req.Email)
	if err != nil {
		respondStorageError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, issued)
}

// POST /api/v1/auth/verify
func (h *AccountHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	ok, err := h.accounts.Verify(r.Context(), req.Email, req.Code)
	if err != nil {
		respondStorageError(w, r, err)
		return
	}
	if !ok {
		respondError(w, http.StatusBadRequest, "verification_failed",
			"The code is invalid or has expired. Request a new one.")
		return
	}

	user, err := h.accounts.GetUserByEmail(r.Context(), req.Email)
	if err != nil || user == nil {
		respondStorageError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, userDTO(user))
}

// POST /api/v1/auth/login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	result, err := h.accounts.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		respondStorageError(w, r, err)
		return
	}

	switch result.Status {
	case account.SignInOK:
		if err := h.accounts.SetCurrentUser(r.Context(), result.User); err != nil {
			respondStorageError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, userDTO(result.User))
	case account.SignInNoAccount:
		respondError(w, http.StatusNotFound, "no_account", result.Status.Reason())
	case account.SignInUnverified:
		respondError(w, http.StatusForbidden, "unverified", result.Status.Reason())
	default:
		respondError(w, http.StatusUnauthorized, "invalid_credentials", result.Status.Reason())
	}
}

// POST /api/v1/auth/logout
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.accounts.SetCurrentUser(r.Context(), nil); err != nil {
		respondStorageError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

// GET /api/v1/auth/me
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.accounts.CurrentUser(r.Context())
	if err != nil {
		respondStorageError(w, r, err)
		return
	}
	if user == nil {
		respondError(w, http.StatusUnauthorized, "signed_out", "no active session")
		return
	}
	respondJSON(w, http.StatusOK, userDTO(user))
}
