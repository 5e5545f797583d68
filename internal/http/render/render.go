// Package render holds the JSON plumbing shared by the HTTP handlers.
package render

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/innkeeper/internal/pkg/apperr"
)

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	RoomIDs []uuid.UUID `json:"room_ids,omitempty"`
}

// Status maps a business failure to its HTTP status. Unclassified errors are 500.
func Status(kind apperr.Kind) int {
	switch kind {
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.RoomUnavailable, apperr.RoomNotAvailable, apperr.InvalidTransition, apperr.DuplicateInvoice,
		apperr.HasPayments, apperr.HasInvoice, apperr.AlreadyExists, apperr.InconsistentState:
		return http.StatusConflict
	case apperr.InsufficientStock, apperr.InvalidDiscount, apperr.Overpayment:
		return http.StatusUnprocessableEntity
	case apperr.InvalidRange, apperr.InvalidArgument:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err as a JSON error body. Infrastructure failures are logged and hidden from the client.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		JSON(w, http.StatusInternalServerError, errorResponse{Error: "internal", Message: "internal error"})

		return
	}

	JSON(w, Status(appErr.Kind), errorResponse{
		Error:   string(appErr.Kind),
		Message: appErr.Message,
		RoomIDs: appErr.RoomIDs,
	})
}

// Decode reads a JSON request body into v.
func Decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Wrap(apperr.InvalidArgument, err, "invalid request body")
	}

	return nil
}

// ID parses the named URL parameter as a UUID.
func ID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, apperr.New(apperr.InvalidArgument, "invalid %s", name)
	}

	return id, nil
}

// Date parses YYYY-MM-DD.
func Date(field, s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, apperr.New(apperr.InvalidArgument, "%s must be a YYYY-MM-DD date, got %q", field, s)
	}

	return t, nil
}

// OptionalUUID parses s when it is not empty.
func OptionalUUID(field, s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return nil, apperr.New(apperr.InvalidArgument, "invalid %s", field)
	}

	return &id, nil
}
