package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/UkralStul/post-scheduler/internal/pagination"
	"github.com/UkralStul/post-scheduler/internal/storage"
)

// errInvalidInput marks request bodies and query parameters that fail validation.
var errInvalidInput = errors.New("invalid input")

// respondJSON writes v as a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Headers are already sent.
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, pagination.ErrInvalidPaginationArgs),
		errors.Is(err, pagination.ErrMalformedCursor),
		errors.Is(err, errInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrConcurrentModification):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err with the mapped status. Internal errors are logged
// and replaced by a generic message.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "internal server error",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
		respondJSON(w, code, map[string]string{"error": "internal server error"})
		return
	}
	respondJSON(w, code, map[string]string{"error": err.Error()})
}
