package room

import (
	"bytes"
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/innkeeper/internal/pkg/apperr"
)

// The functions below are the only way lifecycle services change a room's status.
// Each runs inside the caller's transaction.

// LockInOrder locks rooms in ascending ID order so concurrent transactions touching
// the same rooms cannot deadlock. ids must not contain duplicates.
func LockInOrder(ctx context.Context, tx StatusTx, ids []uuid.UUID) ([]*Room, error) {
	sorted := SortedIDs(ids)
	rooms := make([]*Room, 0, len(sorted))

	for _, id := range sorted {
		r, err := tx.LockRoom(ctx, id)
		if err != nil {
			return nil, err
		}

		rooms = append(rooms, r)
	}

	return rooms, nil
}

// SortedIDs returns a sorted copy of ids.
func SortedIDs(ids []uuid.UUID) []uuid.UUID {
	sorted := slices.Clone(ids)
	slices.SortFunc(sorted, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })

	return sorted
}

// Refresh recomputes the cached status of a room from its occupancy and persists it.
func Refresh(ctx context.Context, tx StatusTx, id uuid.UUID, today time.Time) (*Room, error) {
	r, err := tx.LockRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	occ, err := tx.RoomOccupancy(ctx, id, today)
	if err != nil {
		return nil, err
	}

	next := Project(r.Status, occ)
	if next == r.Status {
		return r, nil
	}

	if err := tx.SetRoomStatus(ctx, id, next); err != nil {
		return nil, err
	}

	r.Status = next

	return r, nil
}

// FreeIfUnreferenced is called after a reservation or stay stops referencing a room.
// The room returns to AVAILABLE only if no other active stay or pending arrival holds it.
func FreeIfUnreferenced(ctx context.Context, tx StatusTx, id uuid.UUID, today time.Time) (*Room, error) {
	return Refresh(ctx, tx, id, today)
}

// Occupy moves a room to OCCUPIED at check-in. The room must be RESERVED or AVAILABLE
// and must not already host an active stay.
func Occupy(ctx context.Context, tx StatusTx, id uuid.UUID, today time.Time) (*Room, error) {
	r, err := tx.LockRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	if r.Status != StatusReserved && r.Status != StatusAvailable {
		return nil, apperr.New(apperr.RoomNotAvailable, "room %s is %s", r.Number, r.Status)
	}

	occ, err := tx.RoomOccupancy(ctx, id, today)
	if err != nil {
		return nil, err
	}

	if occ.ActiveStay {
		return nil, apperr.New(apperr.RoomNotAvailable, "room %s already hosts an active stay", r.Number)
	}

	if err := tx.SetRoomStatus(ctx, id, StatusOccupied); err != nil {
		return nil, err
	}

	r.Status = StatusOccupied

	return r, nil
}

// Vacate moves a room to CLEANING at check-out.
func Vacate(ctx context.Context, tx StatusTx, id uuid.UUID) (*Room, error) {
	r, err := tx.LockRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.SetRoomStatus(ctx, id, StatusCleaning); err != nil {
		return nil, err
	}

	r.Status = StatusCleaning

	return r, nil
}
