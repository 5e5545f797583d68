package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/innkeeper/internal/database"
	"github.com/MrJamesThe3rd/innkeeper/internal/pkg/apperr"
	"github.com/MrJamesThe3rd/innkeeper/internal/reservation"
	roomstore "github.com/MrJamesThe3rd/innkeeper/internal/room/store"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const selectReservationColumns = `id, guest_id, check_in, check_out, status, created_at, updated_at, deleted_at`

func scanReservation(s scanner) (*reservation.Reservation, error) {
	var (
		r         reservation.Reservation
		statusStr string
	)

	if err := s.Scan(&r.ID, &r.GuestID, &r.CheckIn, &r.CheckOut, &statusStr, &r.CreatedAt, &r.UpdatedAt, &r.DeletedAt); err != nil {
		return nil, err
	}

	r.Status = reservation.Status(statusStr)

	return &r, nil
}

func getReservation(ctx context.Context, q querier, query string, id uuid.UUID) (*reservation.Reservation, error) {
	r, err := scanReservation(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "reservation %s", id)
		}

		return nil, fmt.Errorf("getting reservation: %w", err)
	}

	if r.Allocations, err = loadAllocations(ctx, q, r.ID); err != nil {
		return nil, err
	}

	return r, nil
}

func loadAllocations(ctx context.Context, q querier, reservationID uuid.UUID) ([]*reservation.Allocation, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, reservation_id, room_id, price, breakfast, parking
		FROM room_allocations
		WHERE reservation_id = $1 AND deleted_at IS NULL
		ORDER BY created_at ASC, id ASC
	`, reservationID)
	if err != nil {
		return nil, fmt.Errorf("listing allocations: %w", err)
	}
	defer rows.Close()

	var (
		allocs []*reservation.Allocation
		byID   = make(map[uuid.UUID]*reservation.Allocation)
	)

	for rows.Next() {
		var a reservation.Allocation
		if err := rows.Scan(&a.ID, &a.ReservationID, &a.RoomID, &a.Price, &a.Breakfast, &a.Parking); err != nil {
			return nil, fmt.Errorf("scanning allocation: %w", err)
		}

		allocs = append(allocs, &a)
		byID[a.ID] = &a
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating allocation rows: %w", err)
	}

	guests, err := q.QueryContext(ctx, `
		SELECT g.allocation_id, g.guest_id
		FROM allocation_guests g
		JOIN room_allocations a ON a.id = g.allocation_id
		WHERE a.reservation_id = $1 AND a.deleted_at IS NULL
		ORDER BY g.position ASC
	`, reservationID)
	if err != nil {
		return nil, fmt.Errorf("listing co-occupants: %w", err)
	}
	defer guests.Close()

	for guests.Next() {
		var allocID, guestID uuid.UUID
		if err := guests.Scan(&allocID, &guestID); err != nil {
			return nil, fmt.Errorf("scanning co-occupant: %w", err)
		}

		if a, ok := byID[allocID]; ok {
			a.CoOccupantIDs = append(a.CoOccupantIDs, guestID)
		}
	}

	if err := guests.Err(); err != nil {
		return nil, fmt.Errorf("iterating co-occupant rows: %w", err)
	}

	return allocs, nil
}

func (s *Store) GetReservation(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	query := `SELECT ` + selectReservationColumns + `
		FROM reservations
		WHERE id = $1 AND deleted_at IS NULL`

	return getReservation(ctx, s.db, query, id)
}

func (s *Store) Begin(ctx context.Context) (reservation.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning reservation tx: %w", err)
	}

	return NewTx(dbTx), nil
}

// Tx extends the room transaction with reservation writes. The stay store embeds it.
type Tx struct {
	*roomstore.Tx
	tx *sql.Tx
}

func NewTx(tx *sql.Tx) *Tx {
	return &Tx{Tx: roomstore.NewTx(tx), tx: tx}
}

func (t *Tx) ConflictingRooms(ctx context.Context, roomIDs []uuid.UUID, start, end time.Time, exclude uuid.UUID) ([]uuid.UUID, error) {
	if len(roomIDs) == 0 {
		return nil, nil
	}

	ids := make([]string, len(roomIDs))
	for i, id := range roomIDs {
		ids[i] = id.String()
	}

	query := `
		SELECT DISTINCT room_id FROM (
			SELECT a.room_id
			FROM room_allocations a
			WHERE a.room_id = ANY($1::uuid[]) AND a.holds_inventory AND a.deleted_at IS NULL
			AND a.reservation_id <> $4
			AND a.stay_range && daterange($2::date, $3::date)
			UNION
			SELECT s.room_id
			FROM stays s
			WHERE s.room_id = ANY($1::uuid[]) AND s.status = 'ACTIVE' AND s.deleted_at IS NULL
			AND (s.reservation_id IS NULL OR s.reservation_id <> $4)
			AND daterange(s.check_in, s.check_out) && daterange($2::date, $3::date)
		) c
		ORDER BY room_id ASC
	`

	rows, err := t.tx.QueryContext(ctx, query, ids, start, end, exclude)
	if err != nil {
		return nil, fmt.Errorf("finding conflicting rooms: %w", err)
	}
	defer rows.Close()

	var conflicts []uuid.UUID

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning conflicting room: %w", err)
		}

		conflicts = append(conflicts, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating conflicting rooms: %w", err)
	}

	return conflicts, nil
}

func (t *Tx) CreateReservation(ctx context.Context, r *reservation.Reservation, holdsInventory bool) error {
	err := t.tx.QueryRowContext(ctx, `
		INSERT INTO reservations (guest_id, check_in, check_out, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at
	`, r.GuestID, r.CheckIn, r.CheckOut, r.Status).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating reservation: %w", err)
	}

	allocQuery := `
		INSERT INTO room_allocations (reservation_id, room_id, price, breakfast, parking, stay_range, holds_inventory, created_at)
		VALUES ($1, $2, $3, $4, $5, daterange($6::date, $7::date), $8, NOW())
		RETURNING id
	`

	guestQuery := `
		INSERT INTO allocation_guests (allocation_id, guest_id, position)
		VALUES ($1, $2, $3)
	`

	for _, a := range r.Allocations {
		a.ReservationID = r.ID

		err := t.tx.QueryRowContext(ctx, allocQuery,
			r.ID, a.RoomID, a.Price, a.Breakfast, a.Parking, r.CheckIn, r.CheckOut, holdsInventory,
		).Scan(&a.ID)
		if err != nil {
			if _, ok := database.ExclusionViolation(err); ok {
				return apperr.Unavailable(a.RoomID)
			}

			return fmt.Errorf("creating allocation: %w", err)
		}

		for i, guestID := range a.CoOccupantIDs {
			if _, err := t.tx.ExecContext(ctx, guestQuery, a.ID, guestID, i); err != nil {
				return fmt.Errorf("linking co-occupant: %w", err)
			}
		}
	}

	return nil
}

func (t *Tx) LockReservation(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	query := `SELECT ` + selectReservationColumns + `
		FROM reservations
		WHERE id = $1 AND deleted_at IS NULL
		FOR UPDATE`

	return getReservation(ctx, t.tx, query, id)
}

func (t *Tx) UpdateReservationStatus(ctx context.Context, id uuid.UUID, status reservation.Status, holdsInventory bool) error {
	if _, err := t.tx.ExecContext(ctx, `
		UPDATE reservations
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL
	`, status, id); err != nil {
		return fmt.Errorf("updating reservation status: %w", err)
	}

	if _, err := t.tx.ExecContext(ctx, `
		UPDATE room_allocations
		SET holds_inventory = $1
		WHERE reservation_id = $2 AND deleted_at IS NULL
	`, holdsInventory, id); err != nil {
		if _, ok := database.ExclusionViolation(err); ok {
			return apperr.Wrap(apperr.RoomUnavailable, err, "rooms already booked")
		}

		return fmt.Errorf("updating allocation hold: %w", err)
	}

	return nil
}

func (t *Tx) HasStays(ctx context.Context, reservationID uuid.UUID) (bool, error) {
	var exists bool

	err := t.tx.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM stays WHERE reservation_id = $1 AND deleted_at IS NULL)
	`, reservationID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking reservation stays: %w", err)
	}

	return exists, nil
}

func (t *Tx) DeleteReservation(ctx context.Context, id uuid.UUID) error {
	if _, err := t.tx.ExecContext(ctx, `UPDATE reservations SET deleted_at = NOW() WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting reservation: %w", err)
	}

	if _, err := t.tx.ExecContext(ctx, `
		UPDATE room_allocations
		SET holds_inventory = FALSE, deleted_at = NOW()
		WHERE reservation_id = $1 AND deleted_at IS NULL
	`, id); err != nil {
		return fmt.Errorf("deleting allocations: %w", err)
	}

	return nil
}
