package handler

// Response helpers shared by every handler.
//
// Every error response from the API has the same one-field shape:
//
//	{"status": "<human-readable message>"}
//
// regardless of whether it's a 400 or a 404. The status code carries the
// classification; the body carries the message.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/cliphub/internal/apperror"
)

// StatusResponse is the standard error (and bare acknowledgement) body.
type StatusResponse struct {
	Status string `json:"status"`
}

// IDResponse is the body returned by operations that create or identify a
// single entity.
type IDResponse struct {
	ID string `json:"id"`
}

// FollowingResponse is the body returned by the follow-graph endpoints.
type FollowingResponse struct {
	Following bool `json:"following"`
}

// writeJSON sends a JSON response with the given status code. Headers must
// be set before the first body write, hence the fixed order here.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already gone out; logging is all that's left.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to its HTTP status code and sends the
// {"status": message} body.
//
// Mapping:
//   - Validation      → 400 (malformed or missing input)
//   - Conflict        → 400 (uniqueness violation; the API predates 409)
//   - NotFound        → 404
//   - Unauthenticated → 404 (same response as "user not found"; login
//     failures never reveal whether the username exists)
//   - anything else   → 500 with a generic message; internals stay internal
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, apperror.ErrUnauthenticated):
			status = http.StatusNotFound
		}

		writeJSON(w, status, StatusResponse{Status: appErr.Message})
		return
	}

	writeJSON(w, http.StatusInternalServerError, StatusResponse{
		Status: "an internal error occurred",
	})
}
