// Package apperr defines the business failure taxonomy shared by the lifecycle services.
//
// Every Kind is itself an error, so callers test with errors.Is(err, apperr.RoomUnavailable)
// and extract details with errors.As into *Error.
package apperr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Kind classifies a business failure.
type Kind string

const (
	InvalidRange      Kind = "invalid_range"
	RoomUnavailable   Kind = "room_unavailable"
	RoomNotAvailable  Kind = "room_not_available"
	InvalidTransition Kind = "invalid_transition"
	InsufficientStock Kind = "insufficient_stock"
	InvalidDiscount   Kind = "invalid_discount"
	DuplicateInvoice  Kind = "duplicate_invoice"
	HasPayments       Kind = "has_payments"
	HasInvoice        Kind = "has_invoice"
	InconsistentState Kind = "inconsistent_state"
	NotFound          Kind = "not_found"

	AlreadyExists   Kind = "already_exists"
	InvalidArgument Kind = "invalid_argument"
	Overpayment     Kind = "overpayment"
)

func (k Kind) Error() string { return string(k) }

// Error is a classified failure with optional context.
type Error struct {
	Kind    Kind
	Message string
	// RoomIDs lists the offending rooms for RoomUnavailable.
	RoomIDs []uuid.UUID
	Cause   error
}

// New creates a classified error with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies an underlying error, typically a storage constraint violation.
func Wrap(kind Kind, cause error, message string) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Unavailable reports rooms that are already booked for an overlapping range.
func Unavailable(roomIDs ...uuid.UUID) *Error {
	ids := make([]string, len(roomIDs))
	for i, id := range roomIDs {
		ids[i] = id.String()
	}

	return &Error{
		Kind:    RoomUnavailable,
		Message: "rooms already booked: " + strings.Join(ids, ", "),
		RoomIDs: roomIDs,
	}
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Message != "" {
		msg += ": " + e.Message
	}

	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}

	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches the error against its Kind.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// KindOf returns the Kind of err, or the empty Kind when err is not classified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	var k Kind
	if errors.As(err, &k) {
		return k
	}

	return ""
}
