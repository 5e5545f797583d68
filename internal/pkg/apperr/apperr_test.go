package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/innkeeper/internal/pkg/apperr"
)

func TestError_IsMatchesKind(t *testing.T) {
	err := fmt.Errorf("confirming: %w", apperr.New(apperr.InvalidTransition, "reservation is %s", "CANCELLED"))

	assert.ErrorIs(t, err, apperr.InvalidTransition)
	assert.NotErrorIs(t, err, apperr.NotFound)
	assert.Equal(t, apperr.InvalidTransition, apperr.KindOf(err))
	assert.Equal(t, "confirming: invalid_transition: reservation is CANCELLED", err.Error())
}

func TestUnavailable_CarriesRoomIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	err := error(apperr.Unavailable(a, b))

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, []uuid.UUID{a, b}, appErr.RoomIDs)
	assert.ErrorIs(t, err, apperr.RoomUnavailable)
}

func TestWrap_KeepsCause(t *testing.T) {
	cause := errors.New("duplicate key value violates unique constraint")

	err := apperr.Wrap(apperr.DuplicateInvoice, cause, "stay already invoiced")

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, apperr.DuplicateInvoice)
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperr.Kind
	}{
		{name: "Bare kind", err: apperr.NotFound, want: apperr.NotFound},
		{name: "Wrapped kind", err: fmt.Errorf("get: %w", apperr.HasInvoice), want: apperr.HasInvoice},
		{name: "Unclassified", err: errors.New("boom"), want: ""},
		{name: "Nil", err: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperr.KindOf(tt.err))
		})
	}
}
