package stay_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/innkeeper/internal/audit"
	"github.com/MrJamesThe3rd/innkeeper/internal/calendar"
	"github.com/MrJamesThe3rd/innkeeper/internal/notify"
	"github.com/MrJamesThe3rd/innkeeper/internal/pkg/apperr"
	"github.com/MrJamesThe3rd/innkeeper/internal/reservation"
	"github.com/MrJamesThe3rd/innkeeper/internal/room"
	"github.com/MrJamesThe3rd/innkeeper/internal/stay"
)

type spySender struct {
	messages []notify.Message
}

func (s *spySender) Send(_ context.Context, msg notify.Message) {
	s.messages = append(s.messages, msg)
}

var now = time.Date(2025, 1, 10, 14, 0, 0, 0, time.UTC)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func newService(repo stay.Repository, sender notify.Sender) *stay.Service {
	return stay.NewService(repo, calendar.New(calendar.Fixed(now), time.UTC), audit.Discard, sender)
}

func TestService_CheckIn(t *testing.T) {
	resID := uuid.New()
	guestID := uuid.New()
	roomA := uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	roomB := uuid.MustParse("00000000-0000-0000-0000-00000000000b")

	locked := func(status reservation.Status) *reservation.Reservation {
		return &reservation.Reservation{
			ID:       resID,
			GuestID:  guestID,
			CheckIn:  date(2025, 1, 10),
			CheckOut: date(2025, 1, 12),
			Status:   status,
			Allocations: []*reservation.Allocation{
				{RoomID: roomB},
				{RoomID: roomA},
			},
		}
	}

	type testCase struct {
		name      string
		setupMock func(tx *stay.MockTx)
		wantErr   apperr.Kind
		wantRooms []uuid.UUID
	}

	tests := []testCase{
		{
			name: "OneStayPerRoom",
			setupMock: func(tx *stay.MockTx) {
				tx.EXPECT().LockReservation(gomock.Any(), resID).Return(locked(reservation.StatusConfirmed), nil)
				tx.EXPECT().HasStays(gomock.Any(), resID).Return(false, nil)
				tx.EXPECT().LockRoom(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, id uuid.UUID) (*room.Room, error) {
						return &room.Room{ID: id, Status: room.StatusReserved}, nil
					}).Times(4)
				tx.EXPECT().RoomOccupancy(gomock.Any(), gomock.Any(), date(2025, 1, 10)).Return(room.Occupancy{PendingArrival: true}, nil).Times(2)
				tx.EXPECT().SetRoomStatus(gomock.Any(), gomock.Any(), room.StatusOccupied).Return(nil).Times(2)
				tx.EXPECT().CreateStay(gomock.Any(), gomock.Any()).Return(nil).Times(2)
				tx.EXPECT().Commit().Return(nil)
			},
			wantRooms: []uuid.UUID{roomA, roomB},
		},
		{
			name: "PendingReservation",
			setupMock: func(tx *stay.MockTx) {
				tx.EXPECT().LockReservation(gomock.Any(), resID).Return(locked(reservation.StatusPending), nil)
			},
			wantErr: apperr.InvalidTransition,
		},
		{
			name: "AlreadyCheckedIn",
			setupMock: func(tx *stay.MockTx) {
				tx.EXPECT().LockReservation(gomock.Any(), resID).Return(locked(reservation.StatusConfirmed), nil)
				tx.EXPECT().HasStays(gomock.Any(), resID).Return(true, nil)
			},
			wantErr: apperr.InvalidTransition,
		},
		{
			name: "RoomStillCleaning",
			setupMock: func(tx *stay.MockTx) {
				tx.EXPECT().LockReservation(gomock.Any(), resID).Return(locked(reservation.StatusConfirmed), nil)
				tx.EXPECT().HasStays(gomock.Any(), resID).Return(false, nil)
				tx.EXPECT().LockRoom(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, id uuid.UUID) (*room.Room, error) {
						return &room.Room{ID: id, Number: "101", Status: room.StatusCleaning}, nil
					}).Times(3)
			},
			wantErr: apperr.RoomNotAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := stay.NewMockRepository(ctrl)
			tx := stay.NewMockTx(ctrl)
			sender := &spySender{}

			repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
			tx.EXPECT().Rollback().Return(nil)
			tt.setupMock(tx)

			stays, err := newService(repo, sender).CheckIn(context.Background(), resID)

			if tt.wantErr != "" {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, sender.messages)

				return
			}

			require.NoError(t, err)
			require.Len(t, stays, len(tt.wantRooms))

			for i, st := range stays {
				assert.Equal(t, tt.wantRooms[i], st.RoomID)
				assert.Equal(t, stay.StatusActive, st.Status)
				assert.Equal(t, guestID, st.GuestID)
				assert.Equal(t, resID, *st.ReservationID)
			}

			require.Len(t, sender.messages, 2)
			assert.Equal(t, "Stay started", sender.messages[0].Subject)
		})
	}
}

func TestService_AddConsumption(t *testing.T) {
	stayID := uuid.New()
	water := &stay.Product{ID: uuid.New(), Name: "Water", UnitPrice: decimal.NewFromInt(8), Stock: 8, Active: true}

	type testCase struct {
		name      string
		line      stay.Line
		setupMock func(tx *stay.MockTx)
		wantTotal decimal.Decimal
		wantErr   apperr.Kind
	}

	tests := []testCase{
		{
			name: "ChargesProductPrice",
			line: stay.Line{ProductID: water.ID, Quantity: 2},
			setupMock: func(tx *stay.MockTx) {
				tx.EXPECT().LockStay(gomock.Any(), stayID).Return(&stay.Stay{ID: stayID, Status: stay.StatusActive}, nil)
				tx.EXPECT().ConsumeStock(gomock.Any(), water.ID, 2).Return(water, nil)
				tx.EXPECT().CreateConsumption(gomock.Any(), gomock.Any()).Return(nil)
				tx.EXPECT().Commit().Return(nil)
			},
			wantTotal: decimal.NewFromInt(16),
		},
		{
			name: "ChargesAgreedPrice",
			line: stay.Line{ProductID: water.ID, Quantity: 3, UnitPrice: new(decimal.RequireFromString("2.50"))},
			setupMock: func(tx *stay.MockTx) {
				tx.EXPECT().LockStay(gomock.Any(), stayID).Return(&stay.Stay{ID: stayID, Status: stay.StatusActive}, nil)
				tx.EXPECT().ConsumeStock(gomock.Any(), water.ID, 3).Return(water, nil)
				tx.EXPECT().CreateConsumption(gomock.Any(), gomock.Any()).Return(nil)
				tx.EXPECT().Commit().Return(nil)
			},
			wantTotal: decimal.RequireFromString("7.5"),
		},
		{
			name: "FinishedStay",
			line: stay.Line{ProductID: water.ID, Quantity: 1},
			setupMock: func(tx *stay.MockTx) {
				tx.EXPECT().LockStay(gomock.Any(), stayID).Return(&stay.Stay{ID: stayID, Status: stay.StatusFinished}, nil)
			},
			wantErr: apperr.InvalidTransition,
		},
		{
			name: "OutOfStock",
			line: stay.Line{ProductID: water.ID, Quantity: 9},
			setupMock: func(tx *stay.MockTx) {
				tx.EXPECT().LockStay(gomock.Any(), stayID).Return(&stay.Stay{ID: stayID, Status: stay.StatusActive}, nil)
				tx.EXPECT().ConsumeStock(gomock.Any(), water.ID, 9).Return(nil, apperr.New(apperr.InsufficientStock, "Water"))
			},
			wantErr: apperr.InsufficientStock,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := stay.NewMockRepository(ctrl)
			tx := stay.NewMockTx(ctrl)

			repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
			tx.EXPECT().Rollback().Return(nil)
			tt.setupMock(tx)

			c, err := newService(repo, notify.Discard).AddConsumption(context.Background(), stayID, tt.line)

			if tt.wantErr != "" {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.True(t, tt.wantTotal.Equal(c.Total), "total %s", c.Total)
			assert.Equal(t, "Water", c.ProductName)
			assert.Equal(t, now, c.ConsumedAt)
		})
	}
}

func TestService_AddConsumption_RejectsNonPositiveQuantity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	_, err := newService(stay.NewMockRepository(ctrl), notify.Discard).
		AddConsumption(context.Background(), uuid.New(), stay.Line{ProductID: uuid.New()})
	assert.ErrorIs(t, err, apperr.InvalidArgument)
}

func TestService_CheckOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	roomID := uuid.New()
	repo := stay.NewMockRepository(ctrl)
	tx := stay.NewMockTx(ctrl)
	sender := &spySender{}

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().LockStay(gomock.Any(), id).Return(&stay.Stay{ID: id, RoomID: roomID, Status: stay.StatusActive}, nil)
	tx.EXPECT().
		UpdateStay(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s *stay.Stay) error {
			assert.Equal(t, stay.StatusFinished, s.Status)
			assert.Equal(t, now, *s.CheckedOutAt)

			return nil
		})
	tx.EXPECT().LockRoom(gomock.Any(), roomID).Return(&room.Room{ID: roomID, Status: room.StatusOccupied}, nil)
	tx.EXPECT().SetRoomStatus(gomock.Any(), roomID, room.StatusCleaning).Return(nil)
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	st, err := newService(repo, sender).CheckOut(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, stay.StatusFinished, st.Status)
	require.Len(t, sender.messages, 1)
	assert.Equal(t, "Stay finished", sender.messages[0].Subject)
}

func TestService_CheckOut_Twice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	repo := stay.NewMockRepository(ctrl)
	tx := stay.NewMockTx(ctrl)

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().LockStay(gomock.Any(), id).Return(&stay.Stay{ID: id, Status: stay.StatusFinished}, nil)
	tx.EXPECT().Rollback().Return(nil)

	_, err := newService(repo, notify.Discard).CheckOut(context.Background(), id)
	assert.ErrorIs(t, err, apperr.InvalidTransition)
}

func TestService_Delete(t *testing.T) {
	id := uuid.New()
	roomID := uuid.New()

	t.Run("Invoiced", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := stay.NewMockRepository(ctrl)
		tx := stay.NewMockTx(ctrl)

		repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
		tx.EXPECT().LockStay(gomock.Any(), id).Return(&stay.Stay{ID: id, RoomID: roomID, Status: stay.StatusFinished}, nil)
		tx.EXPECT().HasInvoice(gomock.Any(), id).Return(true, nil)
		tx.EXPECT().Rollback().Return(nil)

		err := newService(repo, notify.Discard).Delete(context.Background(), id)
		assert.ErrorIs(t, err, apperr.HasInvoice)
	})

	t.Run("ActiveStayFreesRoom", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := stay.NewMockRepository(ctrl)
		tx := stay.NewMockTx(ctrl)

		repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
		tx.EXPECT().LockStay(gomock.Any(), id).Return(&stay.Stay{ID: id, RoomID: roomID, Status: stay.StatusActive}, nil)
		tx.EXPECT().HasInvoice(gomock.Any(), id).Return(false, nil)
		tx.EXPECT().
			UpdateStay(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, s *stay.Stay) error {
				assert.Equal(t, stay.StatusCancelled, s.Status)
				return nil
			})
		tx.EXPECT().DeleteStay(gomock.Any(), id).Return(nil)
		tx.EXPECT().LockRoom(gomock.Any(), roomID).Return(&room.Room{ID: roomID, Status: room.StatusOccupied}, nil)
		tx.EXPECT().RoomOccupancy(gomock.Any(), roomID, date(2025, 1, 10)).Return(room.Occupancy{}, nil)
		tx.EXPECT().SetRoomStatus(gomock.Any(), roomID, room.StatusAvailable).Return(nil)
		tx.EXPECT().Commit().Return(nil)
		tx.EXPECT().Rollback().Return(nil)

		require.NoError(t, newService(repo, notify.Discard).Delete(context.Background(), id))
	})
}

func TestService_WalkIn(t *testing.T) {
	guestID := uuid.New()
	roomID := uuid.New()

	t.Run("MustStartToday", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		_, err := newService(stay.NewMockRepository(ctrl), notify.Discard).WalkIn(context.Background(), stay.WalkInParams{
			GuestID:  guestID,
			RoomID:   roomID,
			CheckIn:  date(2025, 1, 11),
			CheckOut: date(2025, 1, 13),
		})
		assert.ErrorIs(t, err, apperr.InvalidRange)
	})

	t.Run("RoomBookedForTonight", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := stay.NewMockRepository(ctrl)
		tx := stay.NewMockTx(ctrl)

		repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
		tx.EXPECT().LockRoom(gomock.Any(), roomID).Return(&room.Room{ID: roomID, Status: room.StatusReserved}, nil)
		tx.EXPECT().ConflictingRooms(gomock.Any(), []uuid.UUID{roomID}, date(2025, 1, 10), date(2025, 1, 11), uuid.Nil).Return([]uuid.UUID{roomID}, nil)
		tx.EXPECT().Rollback().Return(nil)

		_, err := newService(repo, notify.Discard).WalkIn(context.Background(), stay.WalkInParams{
			GuestID:  guestID,
			RoomID:   roomID,
			CheckOut: date(2025, 1, 11),
		})
		assert.ErrorIs(t, err, apperr.RoomUnavailable)
	})
}
