package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"commerce-adapter-layer/internal/domain"

	"github.com/go-chi/chi/v5/middleware"
)

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, status, errorResponse{
		Error:     message,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

// statusForError maps the domain error taxonomy to HTTP status codes.
// Declared capability gaps are the client's misuse of the platform, not a
// server fault.
func statusForError(err error) int {
	var authErr *domain.AuthenticationError
	var unsupported *domain.UnsupportedOperationError
	var rateLimited *domain.RateLimitError
	var apiErr *domain.PlatformAPIError

	switch {
	case errors.As(err, &authErr):
		return http.StatusUnauthorized
	case errors.As(err, &unsupported):
		return http.StatusNotImplemented
	case errors.As(err, &rateLimited):
		return http.StatusTooManyRequests
	case errors.As(err, &apiErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
