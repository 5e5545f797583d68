package reservation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/innkeeper/internal/audit"
	"github.com/MrJamesThe3rd/innkeeper/internal/calendar"
	"github.com/MrJamesThe3rd/innkeeper/internal/pkg/apperr"
	"github.com/MrJamesThe3rd/innkeeper/internal/reservation"
	"github.com/MrJamesThe3rd/innkeeper/internal/room"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func newService(repo reservation.Repository, policy reservation.HoldPolicy) *reservation.Service {
	cal := calendar.New(calendar.Fixed(time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)), time.UTC)
	return reservation.NewService(repo, cal, audit.Discard, reservation.Config{HoldPolicy: policy})
}

// expectRooms makes every room lock succeed and reports no occupancy.
func expectRooms(tx *reservation.MockTx, occ room.Occupancy) {
	tx.EXPECT().LockRoom(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id uuid.UUID) (*room.Room, error) {
			return &room.Room{ID: id, Number: "101", Status: room.StatusAvailable}, nil
		}).AnyTimes()
	tx.EXPECT().RoomOccupancy(gomock.Any(), gomock.Any(), gomock.Any()).Return(occ, nil).AnyTimes()
}

func TestService_Create(t *testing.T) {
	roomID := uuid.New()
	guestID := uuid.New()

	valid := reservation.CreateParams{
		GuestID:  guestID,
		CheckIn:  date(2025, 1, 10),
		CheckOut: date(2025, 1, 12),
		Allocations: []reservation.AllocationParams{
			{RoomID: roomID, Price: decimal.NewFromInt(150), Breakfast: true},
		},
	}

	type testCase struct {
		name      string
		policy    reservation.HoldPolicy
		params    reservation.CreateParams
		setupMock func(repo *reservation.MockRepository, tx *reservation.MockTx)
		wantErr   apperr.Kind
	}

	tests := []testCase{
		{
			name:   "HoldOnCreateReservesRoom",
			policy: reservation.HoldOnCreate,
			params: valid,
			setupMock: func(repo *reservation.MockRepository, tx *reservation.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				expectRooms(tx, room.Occupancy{PendingArrival: true})
				tx.EXPECT().ConflictingRooms(gomock.Any(), []uuid.UUID{roomID}, date(2025, 1, 10), date(2025, 1, 12), uuid.Nil).Return(nil, nil)
				tx.EXPECT().
					CreateReservation(gomock.Any(), gomock.Any(), true).
					DoAndReturn(func(_ context.Context, r *reservation.Reservation, _ bool) error {
						r.ID = uuid.New()
						return nil
					})
				tx.EXPECT().SetRoomStatus(gomock.Any(), roomID, room.StatusReserved).Return(nil)
				tx.EXPECT().Commit().Return(nil)
				tx.EXPECT().Rollback().Return(nil)
			},
		},
		{
			name:   "HoldOnConfirmLeavesRoomAvailable",
			policy: reservation.HoldOnConfirm,
			params: valid,
			setupMock: func(repo *reservation.MockRepository, tx *reservation.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				expectRooms(tx, room.Occupancy{})
				tx.EXPECT().ConflictingRooms(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				tx.EXPECT().CreateReservation(gomock.Any(), gomock.Any(), false).Return(nil)
				tx.EXPECT().Commit().Return(nil)
				tx.EXPECT().Rollback().Return(nil)
			},
		},
		{
			name:   "OverlappingRoom",
			policy: reservation.HoldOnCreate,
			params: valid,
			setupMock: func(repo *reservation.MockRepository, tx *reservation.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				expectRooms(tx, room.Occupancy{})
				tx.EXPECT().ConflictingRooms(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]uuid.UUID{roomID}, nil)
				tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: apperr.RoomUnavailable,
		},
		{
			name:   "ConstraintViolationAtInsert",
			policy: reservation.HoldOnCreate,
			params: valid,
			setupMock: func(repo *reservation.MockRepository, tx *reservation.MockTx) {
				repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				expectRooms(tx, room.Occupancy{})
				tx.EXPECT().ConflictingRooms(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				tx.EXPECT().CreateReservation(gomock.Any(), gomock.Any(), true).Return(apperr.Unavailable(roomID))
				tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: apperr.RoomUnavailable,
		},
		{
			name:   "StartInThePast",
			policy: reservation.HoldOnCreate,
			params: reservation.CreateParams{
				GuestID:     guestID,
				CheckIn:     date(2025, 1, 4),
				CheckOut:    date(2025, 1, 6),
				Allocations: valid.Allocations,
			},
			wantErr: apperr.InvalidRange,
		},
		{
			name:   "EmptyRange",
			policy: reservation.HoldOnCreate,
			params: reservation.CreateParams{
				GuestID:     guestID,
				CheckIn:     date(2025, 1, 12),
				CheckOut:    date(2025, 1, 10),
				Allocations: valid.Allocations,
			},
			wantErr: apperr.InvalidRange,
		},
		{
			name:   "RoomAllocatedTwice",
			policy: reservation.HoldOnCreate,
			params: reservation.CreateParams{
				GuestID:  guestID,
				CheckIn:  date(2025, 1, 10),
				CheckOut: date(2025, 1, 12),
				Allocations: []reservation.AllocationParams{
					{RoomID: roomID},
					{RoomID: roomID},
				},
			},
			wantErr: apperr.InvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := reservation.NewMockRepository(ctrl)
			tx := reservation.NewMockTx(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo, tx)
			}

			got, err := newService(repo, tt.policy).Create(context.Background(), tt.params)

			if tt.wantErr != "" {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, reservation.StatusPending, got.Status)
			assert.Equal(t, []uuid.UUID{roomID}, got.RoomIDs())
			assert.True(t, got.Allocations[0].Breakfast)
		})
	}
}

func TestService_Confirm(t *testing.T) {
	id := uuid.New()
	roomID := uuid.New()

	locked := func(status reservation.Status) *reservation.Reservation {
		return &reservation.Reservation{
			ID:          id,
			CheckIn:     date(2025, 1, 10),
			CheckOut:    date(2025, 1, 12),
			Status:      status,
			Allocations: []*reservation.Allocation{{RoomID: roomID}},
		}
	}

	t.Run("PendingToConfirmed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := reservation.NewMockRepository(ctrl)
		tx := reservation.NewMockTx(ctrl)

		repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
		tx.EXPECT().LockReservation(gomock.Any(), id).Return(locked(reservation.StatusPending), nil)
		expectRooms(tx, room.Occupancy{PendingArrival: true})
		tx.EXPECT().ConflictingRooms(gomock.Any(), []uuid.UUID{roomID}, date(2025, 1, 10), date(2025, 1, 12), id).Return(nil, nil)
		tx.EXPECT().UpdateReservationStatus(gomock.Any(), id, reservation.StatusConfirmed, true).Return(nil)
		tx.EXPECT().SetRoomStatus(gomock.Any(), roomID, room.StatusReserved).Return(nil)
		tx.EXPECT().Commit().Return(nil)
		tx.EXPECT().Rollback().Return(nil)

		got, err := newService(repo, reservation.HoldOnConfirm).Confirm(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusConfirmed, got.Status)
	})

	for _, status := range []reservation.Status{reservation.StatusConfirmed, reservation.StatusCancelled} {
		t.Run("From"+string(status), func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := reservation.NewMockRepository(ctrl)
			tx := reservation.NewMockTx(ctrl)

			repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
			tx.EXPECT().LockReservation(gomock.Any(), id).Return(locked(status), nil)
			tx.EXPECT().Rollback().Return(nil)

			_, err := newService(repo, reservation.HoldOnCreate).Confirm(context.Background(), id)
			assert.ErrorIs(t, err, apperr.InvalidTransition)
		})
	}

	t.Run("OverlapIntroducedSinceCreation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := reservation.NewMockRepository(ctrl)
		tx := reservation.NewMockTx(ctrl)

		repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
		tx.EXPECT().LockReservation(gomock.Any(), id).Return(locked(reservation.StatusPending), nil)
		expectRooms(tx, room.Occupancy{})
		tx.EXPECT().ConflictingRooms(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), id).Return([]uuid.UUID{roomID}, nil)
		tx.EXPECT().Rollback().Return(nil)

		_, err := newService(repo, reservation.HoldOnConfirm).Confirm(context.Background(), id)
		require.ErrorIs(t, err, apperr.RoomUnavailable)

		var appErr *apperr.Error
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, []uuid.UUID{roomID}, appErr.RoomIDs)
	})
}

func TestService_Cancel(t *testing.T) {
	id := uuid.New()
	roomID := uuid.New()

	locked := &reservation.Reservation{
		ID:          id,
		CheckIn:     date(2025, 1, 10),
		CheckOut:    date(2025, 1, 12),
		Status:      reservation.StatusConfirmed,
		Allocations: []*reservation.Allocation{{RoomID: roomID}},
	}

	pending := &reservation.Reservation{
		ID:          id,
		CheckIn:     date(2025, 1, 10),
		CheckOut:    date(2025, 1, 12),
		Status:      reservation.StatusPending,
		Allocations: []*reservation.Allocation{{RoomID: roomID}},
	}

	type testCase struct {
		name      string
		policy    reservation.HoldPolicy
		setupMock func(tx *reservation.MockTx)
		wantErr   apperr.Kind
	}

	tests := []testCase{
		{
			name:   "NonHoldingPendingSkipsOverlapCheck",
			policy: reservation.HoldOnConfirm,
			setupMock: func(tx *reservation.MockTx) {
				tx.EXPECT().LockReservation(gomock.Any(), id).Return(pending, nil)
				tx.EXPECT().HasStays(gomock.Any(), id).Return(false, nil)
				tx.EXPECT().LockRoom(gomock.Any(), roomID).Return(&room.Room{ID: roomID, Status: room.StatusReserved}, nil).Times(2)
				tx.EXPECT().UpdateReservationStatus(gomock.Any(), id, reservation.StatusCancelled, false).Return(nil)
				tx.EXPECT().RoomOccupancy(gomock.Any(), roomID, gomock.Any()).Return(room.Occupancy{PendingArrival: true}, nil)
				tx.EXPECT().Commit().Return(nil)
			},
		},
		{
			name: "ConfirmedFreesRoom",
			setupMock: func(tx *reservation.MockTx) {
				tx.EXPECT().LockReservation(gomock.Any(), id).Return(locked, nil)
				tx.EXPECT().HasStays(gomock.Any(), id).Return(false, nil)
				tx.EXPECT().LockRoom(gomock.Any(), roomID).Return(&room.Room{ID: roomID, Status: room.StatusReserved}, nil).Times(2)
				tx.EXPECT().ConflictingRooms(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), id).Return(nil, nil)
				tx.EXPECT().UpdateReservationStatus(gomock.Any(), id, reservation.StatusCancelled, false).Return(nil)
				tx.EXPECT().RoomOccupancy(gomock.Any(), roomID, gomock.Any()).Return(room.Occupancy{}, nil)
				tx.EXPECT().SetRoomStatus(gomock.Any(), roomID, room.StatusAvailable).Return(nil)
				tx.EXPECT().Commit().Return(nil)
			},
		},
		{
			name: "AlreadyCheckedIn",
			setupMock: func(tx *reservation.MockTx) {
				tx.EXPECT().LockReservation(gomock.Any(), id).Return(locked, nil)
				tx.EXPECT().HasStays(gomock.Any(), id).Return(true, nil)
			},
			wantErr: apperr.InvalidTransition,
		},
		{
			name: "AnotherHolderOverlaps",
			setupMock: func(tx *reservation.MockTx) {
				tx.EXPECT().LockReservation(gomock.Any(), id).Return(locked, nil)
				tx.EXPECT().HasStays(gomock.Any(), id).Return(false, nil)
				tx.EXPECT().LockRoom(gomock.Any(), roomID).Return(&room.Room{ID: roomID}, nil)
				tx.EXPECT().ConflictingRooms(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), id).Return([]uuid.UUID{roomID}, nil)
			},
			wantErr: apperr.InconsistentState,
		},
		{
			name: "Deleted",
			setupMock: func(tx *reservation.MockTx) {
				tx.EXPECT().LockReservation(gomock.Any(), id).Return(nil, apperr.New(apperr.NotFound, "reservation %s", id))
			},
			wantErr: apperr.NotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := reservation.NewMockRepository(ctrl)
			tx := reservation.NewMockTx(ctrl)

			repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
			tx.EXPECT().Rollback().Return(nil)
			tt.setupMock(tx)

			policy := tt.policy
			if policy == "" {
				policy = reservation.HoldOnCreate
			}

			got, err := newService(repo, policy).Cancel(context.Background(), id)

			if tt.wantErr != "" {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, reservation.StatusCancelled, got.Status)
		})
	}
}

func TestHoldPolicy_Holds(t *testing.T) {
	assert.True(t, reservation.HoldOnCreate.Holds(reservation.StatusPending))
	assert.False(t, reservation.HoldOnConfirm.Holds(reservation.StatusPending))
	assert.True(t, reservation.HoldOnConfirm.Holds(reservation.StatusConfirmed))
	assert.False(t, reservation.HoldOnCreate.Holds(reservation.StatusCancelled))
}
