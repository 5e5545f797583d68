package memstore

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/innkeeper/internal/invoice"
	"github.com/MrJamesThe3rd/innkeeper/internal/pkg/apperr"
	"github.com/MrJamesThe3rd/innkeeper/internal/reservation"
	"github.com/MrJamesThe3rd/innkeeper/internal/room"
	"github.com/MrJamesThe3rd/innkeeper/internal/stay"
)

// roomWithType returns a detached copy of r with its type loaded.
func (d *data) roomWithType(r *room.Room) *room.Room {
	cp := cloneRoom(r)
	if t, ok := d.types[r.TypeID]; ok {
		cp.Type = cloneType(t)
	}

	return cp
}

// blocked reports whether a holding allocation or an ACTIVE stay covers the room within [start, end).
func (d *data) blocked(roomID uuid.UUID, start, end time.Time) bool {
	return d.heldByOther(roomID, start, end, uuid.Nil)
}

func (d *data) activeStay(st *stay.Stay) bool {
	return st.Status == stay.StatusActive && st.DeletedAt == nil
}

// checkedIn reports whether a non-deleted stay exists for the reservation and room.
func (d *data) checkedIn(reservationID, roomID uuid.UUID) bool {
	for _, st := range d.stays {
		if st.DeletedAt == nil && st.RoomID == roomID && st.ReservationID != nil && *st.ReservationID == reservationID {
			return true
		}
	}

	return false
}

func (s *Store) GetRoom(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	var out *room.Room

	err := s.withLock(ctx, func(d *data) error {
		r, ok := d.rooms[id]
		if !ok || r.DeletedAt != nil {
			return apperr.New(apperr.NotFound, "room %s", id)
		}

		out = d.roomWithType(r)

		return nil
	})

	return out, err
}

func (s *Store) ListRooms(ctx context.Context, filter room.ListFilter) ([]*room.Room, error) {
	var out []*room.Room

	err := s.withLock(ctx, func(d *data) error {
		for _, r := range d.rooms {
			if r.DeletedAt != nil && !filter.IncludeDeleted {
				continue
			}

			if filter.TypeID != nil && r.TypeID != *filter.TypeID {
				continue
			}

			if filter.Status != nil && r.Status != *filter.Status {
				continue
			}

			out = append(out, d.roomWithType(r))
		}

		return nil
	})

	room.Sort(out)

	return out, err
}

func (s *Store) ListAvailable(ctx context.Context, q room.AvailabilityQuery) ([]*room.Room, error) {
	var out []*room.Room

	err := s.withLock(ctx, func(d *data) error {
		for _, r := range d.rooms {
			if r.DeletedAt != nil {
				continue
			}

			if q.TypeID != nil && r.TypeID != *q.TypeID {
				continue
			}

			if q.ExcludeOccupied && r.Status == room.StatusOccupied {
				continue
			}

			if d.blocked(r.ID, q.Start, q.End) {
				continue
			}

			out = append(out, d.roomWithType(r))
		}

		return nil
	})

	room.Sort(out)

	return out, err
}

func (s *Store) CreateType(ctx context.Context, t *room.Type) error {
	return s.withLock(ctx, func(d *data) error {
		for _, existing := range d.types {
			if strings.EqualFold(existing.Name, t.Name) {
				return apperr.New(apperr.AlreadyExists, "room type %s", t.Name)
			}
		}

		t.ID = uuid.New()
		t.CreatedAt = s.now()
		d.types[t.ID] = cloneType(t)

		return nil
	})
}

func (s *Store) ListTypes(ctx context.Context) ([]*room.Type, error) {
	var out []*room.Type

	err := s.withLock(ctx, func(d *data) error {
		for _, t := range d.types {
			out = append(out, cloneType(t))
		}

		return nil
	})

	slices.SortFunc(out, func(a, b *room.Type) int { return strings.Compare(a.Name, b.Name) })

	return out, err
}

func (t *tx) LockRoom(_ context.Context, id uuid.UUID) (*room.Room, error) {
	r, ok := t.d.rooms[id]
	if !ok || r.DeletedAt != nil {
		return nil, apperr.New(apperr.NotFound, "room %s", id)
	}

	return t.d.roomWithType(r), nil
}

func (t *tx) RoomOccupancy(_ context.Context, id uuid.UUID, today time.Time) (room.Occupancy, error) {
	var occ room.Occupancy

	for _, st := range t.d.stays {
		if st.RoomID == id && t.d.activeStay(st) {
			occ.ActiveStay = true
			break
		}
	}

	for _, row := range t.d.reservations {
		if !row.holds || row.res.DeletedAt != nil || row.res.Allocation(id) == nil {
			continue
		}

		if row.res.CheckOut.After(today) && !t.d.checkedIn(row.res.ID, id) {
			occ.PendingArrival = true
			break
		}
	}

	return occ, nil
}

func (t *tx) SetRoomStatus(_ context.Context, id uuid.UUID, status room.Status) error {
	r, ok := t.d.rooms[id]
	if !ok || r.DeletedAt != nil {
		return apperr.New(apperr.NotFound, "room %s", id)
	}

	r.Status = status
	r.UpdatedAt = new(t.store.now())

	return nil
}

func (t *tx) TypeByName(_ context.Context, name string) (*room.Type, error) {
	for _, rt := range t.d.types {
		if strings.EqualFold(rt.Name, name) {
			return cloneType(rt), nil
		}
	}

	return nil, apperr.New(apperr.NotFound, "room type %q", name)
}

func (t *tx) CreateRooms(_ context.Context, rooms []*room.Room) error {
	for _, r := range rooms {
		if _, ok := t.d.types[r.TypeID]; !ok {
			return apperr.New(apperr.NotFound, "room type %s", r.TypeID)
		}

		for _, existing := range t.d.rooms {
			if existing.Number == r.Number {
				return apperr.New(apperr.AlreadyExists, "room %s", r.Number)
			}
		}

		r.ID = uuid.New()
		r.CreatedAt = t.store.now()
		t.d.rooms[r.ID] = cloneRoom(r)
	}

	return nil
}

func (t *tx) HasOpenDocuments(_ context.Context, id uuid.UUID) (bool, error) {
	for _, row := range t.d.reservations {
		res := row.res
		if res.DeletedAt != nil || res.Status == reservation.StatusCancelled || res.Allocation(id) == nil {
			continue
		}

		if !t.d.checkedIn(res.ID, id) {
			return true, nil
		}
	}

	for _, st := range t.d.stays {
		if st.RoomID == id && t.d.activeStay(st) {
			return true, nil
		}
	}

	for _, inv := range t.d.invoices {
		if inv.DeletedAt != nil || inv.Status != invoice.StatusIssued {
			continue
		}

		if st, ok := t.d.stays[inv.StayID]; ok && st.RoomID == id {
			return true, nil
		}
	}

	return false, nil
}

func (t *tx) DeleteRoom(_ context.Context, id uuid.UUID) error {
	r, ok := t.d.rooms[id]
	if !ok {
		return apperr.New(apperr.NotFound, "room %s", id)
	}

	r.DeletedAt = new(t.store.now())

	return nil
}
