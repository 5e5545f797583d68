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
	"github.com/MrJamesThe3rd/innkeeper/internal/room"
)

// orderRooms matches room.Sort: floor, then numeric numbers by value, then the rest lexicographically.
const orderRooms = ` ORDER BY r.floor ASC, (r.number !~ '^[0-9]+$') ASC,
	CASE WHEN r.number ~ '^[0-9]+$' THEN r.number::numeric END ASC, r.number ASC`

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

const selectRoomColumns = `
	r.id, r.number, r.floor, r.type_id, r.status, r.created_at, r.updated_at, r.deleted_at,
	t.id, t.name, t.nightly_rate, t.capacity, t.created_at
`

// scanRoom expects the column order of selectRoomColumns.
func scanRoom(s scanner) (*room.Room, error) {
	var (
		r         room.Room
		t         room.Type
		statusStr string
	)

	if err := s.Scan(
		&r.ID, &r.Number, &r.Floor, &r.TypeID, &statusStr, &r.CreatedAt, &r.UpdatedAt, &r.DeletedAt,
		&t.ID, &t.Name, &t.NightlyRate, &t.Capacity, &t.CreatedAt,
	); err != nil {
		return nil, err
	}

	r.Status = room.Status(statusStr)
	r.Type = &t

	return &r, nil
}

func listRooms(ctx context.Context, q querier, query string, args ...any) ([]*room.Room, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*room.Room

	for rows.Next() {
		r, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning room: %w", err)
		}

		rooms = append(rooms, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating room rows: %w", err)
	}

	return rooms, nil
}

func (s *Store) GetRoom(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	query := `SELECT ` + selectRoomColumns + `
		FROM rooms r
		JOIN room_types t ON t.id = r.type_id
		WHERE r.id = $1 AND r.deleted_at IS NULL`

	r, err := scanRoom(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "room %s", id)
		}

		return nil, fmt.Errorf("getting room: %w", err)
	}

	return r, nil
}

func (s *Store) ListRooms(ctx context.Context, filter room.ListFilter) ([]*room.Room, error) {
	query := `SELECT ` + selectRoomColumns + `
		FROM rooms r
		JOIN room_types t ON t.id = r.type_id
		WHERE TRUE`

	var args []any

	argIdx := 1

	if !filter.IncludeDeleted {
		query += " AND r.deleted_at IS NULL"
	}

	if filter.TypeID != nil {
		query += fmt.Sprintf(" AND r.type_id = $%d", argIdx)

		args = append(args, *filter.TypeID)
		argIdx++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND r.status = $%d", argIdx)

		args = append(args, *filter.Status)
	}

	query += orderRooms

	return listRooms(ctx, s.db, query, args...)
}

// ListAvailable excludes rooms with an inventory-holding allocation or an ACTIVE stay overlapping the range.
func (s *Store) ListAvailable(ctx context.Context, q room.AvailabilityQuery) ([]*room.Room, error) {
	query := `SELECT ` + selectRoomColumns + `
		FROM rooms r
		JOIN room_types t ON t.id = r.type_id
		WHERE r.deleted_at IS NULL
		AND NOT EXISTS (
			SELECT 1 FROM room_allocations a
			WHERE a.room_id = r.id AND a.holds_inventory AND a.deleted_at IS NULL
			AND a.stay_range && daterange($1::date, $2::date)
		)
		AND NOT EXISTS (
			SELECT 1 FROM stays s
			WHERE s.room_id = r.id AND s.status = 'ACTIVE' AND s.deleted_at IS NULL
			AND daterange(s.check_in, s.check_out) && daterange($1::date, $2::date)
		)`

	args := []any{q.Start, q.End}

	if q.TypeID != nil {
		query += " AND r.type_id = $3"

		args = append(args, *q.TypeID)
	}

	if q.ExcludeOccupied {
		query += " AND r.status <> 'OCCUPIED'"
	}

	query += orderRooms

	return listRooms(ctx, s.db, query, args...)
}

func (s *Store) CreateType(ctx context.Context, t *room.Type) error {
	query := `
		INSERT INTO room_types (name, nightly_rate, capacity, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, t.Name, t.NightlyRate, t.Capacity).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		if _, ok := database.UniqueViolation(err); ok {
			return apperr.Wrap(apperr.AlreadyExists, err, "room type "+t.Name)
		}

		return fmt.Errorf("creating room type: %w", err)
	}

	return nil
}

func (s *Store) ListTypes(ctx context.Context) ([]*room.Type, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, nightly_rate, capacity, created_at
		FROM room_types
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing room types: %w", err)
	}
	defer rows.Close()

	var types []*room.Type

	for rows.Next() {
		var t room.Type
		if err := rows.Scan(&t.ID, &t.Name, &t.NightlyRate, &t.Capacity, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning room type: %w", err)
		}

		types = append(types, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating room type rows: %w", err)
	}

	return types, nil
}

func (s *Store) Begin(ctx context.Context) (room.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning room tx: %w", err)
	}

	return NewTx(dbTx), nil
}

// Tx is the room half of a lifecycle transaction. The reservation, stay and invoice
// stores embed it so their writes and the room status changes share one *sql.Tx.
type Tx struct {
	tx *sql.Tx
}

func NewTx(tx *sql.Tx) *Tx {
	return &Tx{tx: tx}
}

func (t *Tx) Commit() error   { return t.tx.Commit() }
func (t *Tx) Rollback() error { return t.tx.Rollback() }

// LockRoom takes a row lock on the room until the transaction ends.
func (t *Tx) LockRoom(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	query := `SELECT ` + selectRoomColumns + `
		FROM rooms r
		JOIN room_types t ON t.id = r.type_id
		WHERE r.id = $1 AND r.deleted_at IS NULL
		FOR UPDATE OF r`

	r, err := scanRoom(t.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "room %s", id)
		}

		return nil, fmt.Errorf("locking room: %w", err)
	}

	return r, nil
}

func (t *Tx) RoomOccupancy(ctx context.Context, id uuid.UUID, today time.Time) (room.Occupancy, error) {
	query := `
		SELECT
			EXISTS (
				SELECT 1 FROM stays
				WHERE room_id = $1 AND status = 'ACTIVE' AND deleted_at IS NULL
			),
			EXISTS (
				SELECT 1 FROM room_allocations a
				JOIN reservations res ON res.id = a.reservation_id
				WHERE a.room_id = $1 AND a.holds_inventory AND a.deleted_at IS NULL
				AND res.deleted_at IS NULL
				AND upper(a.stay_range) > $2::date
				AND NOT EXISTS (
					SELECT 1 FROM stays s
					WHERE s.reservation_id = a.reservation_id AND s.room_id = a.room_id AND s.deleted_at IS NULL
				)
			)
	`

	var occ room.Occupancy
	if err := t.tx.QueryRowContext(ctx, query, id, today).Scan(&occ.ActiveStay, &occ.PendingArrival); err != nil {
		return room.Occupancy{}, fmt.Errorf("reading room occupancy: %w", err)
	}

	return occ, nil
}

func (t *Tx) SetRoomStatus(ctx context.Context, id uuid.UUID, status room.Status) error {
	query := `
		UPDATE rooms
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL
	`

	if _, err := t.tx.ExecContext(ctx, query, status, id); err != nil {
		return fmt.Errorf("updating room status: %w", err)
	}

	return nil
}

func (t *Tx) TypeByName(ctx context.Context, name string) (*room.Type, error) {
	var rt room.Type

	err := t.tx.QueryRowContext(ctx, `
		SELECT id, name, nightly_rate, capacity, created_at
		FROM room_types
		WHERE lower(name) = lower($1)
	`, name).Scan(&rt.ID, &rt.Name, &rt.NightlyRate, &rt.Capacity, &rt.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "room type %q", name)
		}

		return nil, fmt.Errorf("getting room type: %w", err)
	}

	return &rt, nil
}

func (t *Tx) CreateRooms(ctx context.Context, rooms []*room.Room) error {
	query := `
		INSERT INTO rooms (number, floor, type_id, status, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	for _, r := range rooms {
		err := t.tx.QueryRowContext(ctx, query, r.Number, r.Floor, r.TypeID, r.Status).Scan(&r.ID, &r.CreatedAt)
		if err != nil {
			if _, ok := database.UniqueViolation(err); ok {
				return apperr.Wrap(apperr.AlreadyExists, err, "room "+r.Number)
			}

			return fmt.Errorf("creating room %s: %w", r.Number, err)
		}
	}

	return nil
}

// HasOpenDocuments reports whether the room is referenced by a reservation that is neither
// cancelled nor checked in, by an ACTIVE stay, or by an ISSUED invoice.
func (t *Tx) HasOpenDocuments(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		SELECT
			EXISTS (
				SELECT 1 FROM room_allocations a
				JOIN reservations res ON res.id = a.reservation_id
				WHERE a.room_id = $1 AND a.deleted_at IS NULL
				AND res.deleted_at IS NULL AND res.status <> 'CANCELLED'
				AND NOT EXISTS (
					SELECT 1 FROM stays s
					WHERE s.reservation_id = a.reservation_id AND s.room_id = a.room_id AND s.deleted_at IS NULL
				)
			)
			OR EXISTS (
				SELECT 1 FROM stays
				WHERE room_id = $1 AND status = 'ACTIVE' AND deleted_at IS NULL
			)
			OR EXISTS (
				SELECT 1 FROM invoices i
				JOIN stays s ON s.id = i.stay_id
				WHERE s.room_id = $1 AND i.status = 'ISSUED' AND i.deleted_at IS NULL
			)
	`

	var open bool
	if err := t.tx.QueryRowContext(ctx, query, id).Scan(&open); err != nil {
		return false, fmt.Errorf("checking room references: %w", err)
	}

	return open, nil
}

func (t *Tx) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	if _, err := t.tx.ExecContext(ctx, `UPDATE rooms SET deleted_at = NOW() WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting room: %w", err)
	}

	return nil
}
