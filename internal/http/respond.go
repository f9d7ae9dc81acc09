package http

import (
	"encoding/json"
	"log"
	"net/http"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, details string) {
	respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Code:    code,
		Details: details,
	})
}

// respondStorageError is the write-failure path: the state did not
// change, the client should retry.
func respondStorageError(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("storage write failed (request %s): %v", getRequestID(r.Context()), err)
	respondError(w, http.StatusServiceUnavailable, "storage_unavailable",
		"Could not save your changes. Please try again.")
}
