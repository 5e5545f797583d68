package memstore

import (
	"bytes"
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/innkeeper/internal/calendar"
	"github.com/MrJamesThe3rd/innkeeper/internal/pkg/apperr"
	"github.com/MrJamesThe3rd/innkeeper/internal/reservation"
)

func (s *Store) GetReservation(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	var out *reservation.Reservation

	err := s.withLock(ctx, func(d *data) error {
		row, ok := d.reservations[id]
		if !ok || row.res.DeletedAt != nil {
			return apperr.New(apperr.NotFound, "reservation %s", id)
		}

		out = cloneReservation(row.res)

		return nil
	})

	return out, err
}

func (t *tx) ConflictingRooms(_ context.Context, roomIDs []uuid.UUID, start, end time.Time, exclude uuid.UUID) ([]uuid.UUID, error) {
	var conflicts []uuid.UUID

	for _, roomID := range roomIDs {
		if t.d.heldByOther(roomID, start, end, exclude) {
			conflicts = append(conflicts, roomID)
		}
	}

	slices.SortFunc(conflicts, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })

	return conflicts, nil
}

// heldByOther is blocked restricted to holders that do not belong to the exclude reservation.
func (d *data) heldByOther(roomID uuid.UUID, start, end time.Time, exclude uuid.UUID) bool {
	for _, row := range d.reservations {
		if row.res.ID == exclude || !row.holds || row.res.DeletedAt != nil {
			continue
		}

		if row.res.Allocation(roomID) != nil && calendar.Overlaps(row.res.CheckIn, row.res.CheckOut, start, end) {
			return true
		}
	}

	for _, st := range d.stays {
		if st.RoomID != roomID || !d.activeStay(st) {
			continue
		}

		if st.ReservationID != nil && *st.ReservationID == exclude {
			continue
		}

		if calendar.Overlaps(st.CheckIn, st.CheckOut, start, end) {
			return true
		}
	}

	return false
}

// holdsOverlap mirrors the room_allocations_no_overlap exclusion constraint.
func (d *data) holdsOverlap(res *reservation.Reservation) []uuid.UUID {
	var clashes []uuid.UUID

	for _, a := range res.Allocations {
		for _, row := range d.reservations {
			if row.res.ID == res.ID || !row.holds || row.res.DeletedAt != nil {
				continue
			}

			if row.res.Allocation(a.RoomID) != nil && calendar.Overlaps(row.res.CheckIn, row.res.CheckOut, res.CheckIn, res.CheckOut) {
				clashes = append(clashes, a.RoomID)
				break
			}
		}
	}

	return clashes
}

func (t *tx) CreateReservation(_ context.Context, r *reservation.Reservation, holdsInventory bool) error {
	if holdsInventory {
		if clashes := t.d.holdsOverlap(r); len(clashes) > 0 {
			return apperr.Unavailable(clashes...)
		}
	}

	for _, a := range r.Allocations {
		if _, ok := t.d.rooms[a.RoomID]; !ok {
			return apperr.New(apperr.NotFound, "room %s", a.RoomID)
		}
	}

	r.ID = uuid.New()
	r.CreatedAt = t.store.now()
	r.UpdatedAt = new(r.CreatedAt)

	for _, a := range r.Allocations {
		a.ID = uuid.New()
		a.ReservationID = r.ID
	}

	t.d.reservations[r.ID] = &reservationRow{res: cloneReservation(r), holds: holdsInventory}

	return nil
}

func (t *tx) LockReservation(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row, ok := t.d.reservations[id]
	if !ok || row.res.DeletedAt != nil {
		return nil, apperr.New(apperr.NotFound, "reservation %s", id)
	}

	return cloneReservation(row.res), nil
}

func (t *tx) UpdateReservationStatus(_ context.Context, id uuid.UUID, status reservation.Status, holdsInventory bool) error {
	row, ok := t.d.reservations[id]
	if !ok || row.res.DeletedAt != nil {
		return apperr.New(apperr.NotFound, "reservation %s", id)
	}

	if holdsInventory && !row.holds {
		if clashes := t.d.holdsOverlap(row.res); len(clashes) > 0 {
			return apperr.Unavailable(clashes...)
		}
	}

	row.res.Status = status
	row.res.UpdatedAt = new(t.store.now())
	row.holds = holdsInventory

	return nil
}

func (t *tx) HasStays(_ context.Context, reservationID uuid.UUID) (bool, error) {
	for _, st := range t.d.stays {
		if st.DeletedAt == nil && st.ReservationID != nil && *st.ReservationID == reservationID {
			return true, nil
		}
	}

	return false, nil
}

func (t *tx) DeleteReservation(_ context.Context, id uuid.UUID) error {
	row, ok := t.d.reservations[id]
	if !ok {
		return apperr.New(apperr.NotFound, "reservation %s", id)
	}

	row.res.DeletedAt = new(t.store.now())
	row.holds = false

	return nil
}
