package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"zentrafuge/internal/apperrors"
)

// base carries the response plumbing shared by all handlers: JSON encoding,
// the {success:false, message, error?} failure envelope, and the mapping from
// service error kinds to HTTP statuses. Raw error text is exposed only in
// development.
type base struct {
	logger       *zap.Logger
	exposeErrors bool
}

func (b *base) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		b.logger.Error("encode response", zap.Error(err))
	}
}

func (b *base) fail(w http.ResponseWriter, status int, message string) {
	b.writeJSON(w, status, map[string]any{"success": false, "message": message})
}

func (b *base) failWithErr(w http.ResponseWriter, status int, message string, err error) {
	b.logger.Error(message, zap.Error(err))
	body := map[string]any{"success": false, "message": message}
	if b.exposeErrors {
		body["error"] = err.Error()
	}
	b.writeJSON(w, status, body)
}

// serviceError converts a service-layer failure into the error envelope.
// fallback is the 500-level message for unexpected failures.
func (b *base) serviceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		b.fail(w, http.StatusNotFound, "User not found")
	case errors.Is(err, apperrors.ErrNoMessagesAvailable):
		b.fail(w, http.StatusNotFound, "No buddy messages available")
	case errors.Is(err, apperrors.ErrValidation):
		b.fail(w, http.StatusBadRequest, "Invalid request")
	default:
		b.failWithErr(w, http.StatusInternalServerError, fallback, err)
	}
}
