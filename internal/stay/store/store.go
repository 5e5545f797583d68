package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/innkeeper/internal/database"
	"github.com/MrJamesThe3rd/innkeeper/internal/pkg/apperr"
	reservationstore "github.com/MrJamesThe3rd/innkeeper/internal/reservation/store"
	"github.com/MrJamesThe3rd/innkeeper/internal/stay"
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

const selectStayColumns = `
	id, guest_id, room_id, reservation_id, check_in, check_out, status, checked_out_at,
	created_at, updated_at, deleted_at
`

func scanStay(s scanner) (*stay.Stay, error) {
	var (
		st        stay.Stay
		statusStr string
	)

	if err := s.Scan(
		&st.ID, &st.GuestID, &st.RoomID, &st.ReservationID, &st.CheckIn, &st.CheckOut, &statusStr, &st.CheckedOutAt,
		&st.CreatedAt, &st.UpdatedAt, &st.DeletedAt,
	); err != nil {
		return nil, err
	}

	st.Status = stay.Status(statusStr)

	return &st, nil
}

func getStay(ctx context.Context, q querier, query string, id uuid.UUID) (*stay.Stay, error) {
	st, err := scanStay(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "stay %s", id)
		}

		return nil, fmt.Errorf("getting stay: %w", err)
	}

	if st.Consumptions, err = listConsumptions(ctx, q, st.ID); err != nil {
		return nil, err
	}

	return st, nil
}

func listConsumptions(ctx context.Context, q querier, stayID uuid.UUID) ([]*stay.Consumption, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT c.id, c.stay_id, c.product_id, p.name, c.quantity, c.unit_price, c.total, c.consumed_at
		FROM consumptions c
		JOIN products p ON p.id = c.product_id
		WHERE c.stay_id = $1
		ORDER BY c.consumed_at ASC, c.id ASC
	`, stayID)
	if err != nil {
		return nil, fmt.Errorf("listing consumptions: %w", err)
	}
	defer rows.Close()

	var items []*stay.Consumption

	for rows.Next() {
		var c stay.Consumption
		if err := rows.Scan(&c.ID, &c.StayID, &c.ProductID, &c.ProductName, &c.Quantity, &c.UnitPrice, &c.Total, &c.ConsumedAt); err != nil {
			return nil, fmt.Errorf("scanning consumption: %w", err)
		}

		items = append(items, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating consumption rows: %w", err)
	}

	return items, nil
}

const selectProductColumns = `id, name, unit_price, stock, active, created_at`

func scanProduct(s scanner) (*stay.Product, error) {
	var p stay.Product
	if err := s.Scan(&p.ID, &p.Name, &p.UnitPrice, &p.Stock, &p.Active, &p.CreatedAt); err != nil {
		return nil, err
	}

	return &p, nil
}

func (s *Store) GetStay(ctx context.Context, id uuid.UUID) (*stay.Stay, error) {
	query := `SELECT ` + selectStayColumns + ` FROM stays WHERE id = $1 AND deleted_at IS NULL`

	return getStay(ctx, s.db, query, id)
}

func (s *Store) GetProduct(ctx context.Context, id uuid.UUID) (*stay.Product, error) {
	p, err := scanProduct(s.db.QueryRowContext(ctx, `SELECT `+selectProductColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "product %s", id)
		}

		return nil, fmt.Errorf("getting product: %w", err)
	}

	return p, nil
}

func (s *Store) ListProducts(ctx context.Context) ([]*stay.Product, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+selectProductColumns+` FROM products ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var products []*stay.Product

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}

		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}

func (s *Store) CreateProduct(ctx context.Context, p *stay.Product) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO products (name, unit_price, stock, active, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`, p.Name, p.UnitPrice, p.Stock, p.Active).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		if _, ok := database.UniqueViolation(err); ok {
			return apperr.Wrap(apperr.AlreadyExists, err, "product "+p.Name)
		}

		return fmt.Errorf("creating product: %w", err)
	}

	return nil
}

func (s *Store) Begin(ctx context.Context) (stay.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning stay tx: %w", err)
	}

	return NewTx(dbTx), nil
}

// Tx extends the reservation transaction with stay and consumption writes. The invoice store embeds it.
type Tx struct {
	*reservationstore.Tx
	tx *sql.Tx
}

func NewTx(tx *sql.Tx) *Tx {
	return &Tx{Tx: reservationstore.NewTx(tx), tx: tx}
}

func (t *Tx) CreateStay(ctx context.Context, s *stay.Stay) error {
	err := t.tx.QueryRowContext(ctx, `
		INSERT INTO stays (guest_id, room_id, reservation_id, check_in, check_out, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at
	`, s.GuestID, s.RoomID, s.ReservationID, s.CheckIn, s.CheckOut, s.Status).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		if _, ok := database.UniqueViolation(err); ok {
			return apperr.Wrap(apperr.RoomNotAvailable, err, "room already hosts an active stay")
		}

		return fmt.Errorf("creating stay: %w", err)
	}

	return nil
}

func (t *Tx) LockStay(ctx context.Context, id uuid.UUID) (*stay.Stay, error) {
	query := `SELECT ` + selectStayColumns + ` FROM stays WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`

	return getStay(ctx, t.tx, query, id)
}

func (t *Tx) UpdateStay(ctx context.Context, s *stay.Stay) error {
	if _, err := t.tx.ExecContext(ctx, `
		UPDATE stays
		SET status = $1, checked_out_at = $2, updated_at = NOW()
		WHERE id = $3 AND deleted_at IS NULL
	`, s.Status, s.CheckedOutAt, s.ID); err != nil {
		return fmt.Errorf("updating stay: %w", err)
	}

	return nil
}

func (t *Tx) DeleteStay(ctx context.Context, id uuid.UUID) error {
	if _, err := t.tx.ExecContext(ctx, `UPDATE stays SET deleted_at = NOW() WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting stay: %w", err)
	}

	return nil
}

func (t *Tx) HasInvoice(ctx context.Context, stayID uuid.UUID) (bool, error) {
	var exists bool

	err := t.tx.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM invoices WHERE stay_id = $1 AND deleted_at IS NULL)
	`, stayID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking stay invoice: %w", err)
	}

	return exists, nil
}

// ConsumeStock decrements in a single conditional UPDATE so concurrent consumers cannot oversell.
func (t *Tx) ConsumeStock(ctx context.Context, productID uuid.UUID, quantity int) (*stay.Product, error) {
	p, err := scanProduct(t.tx.QueryRowContext(ctx, `
		UPDATE products
		SET stock = stock - $2
		WHERE id = $1 AND active AND stock >= $2
		RETURNING `+selectProductColumns,
		productID, quantity,
	))
	if err == nil {
		return p, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("consuming stock: %w", err)
	}

	var (
		stock  int
		active bool
		name   string
	)

	err = t.tx.QueryRowContext(ctx, `SELECT name, stock, active FROM products WHERE id = $1`, productID).Scan(&name, &stock, &active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "product %s", productID)
		}

		return nil, fmt.Errorf("reading product stock: %w", err)
	}

	if !active {
		return nil, apperr.New(apperr.InvalidArgument, "product %s is not for sale", name)
	}

	return nil, apperr.New(apperr.InsufficientStock, "%s: %d requested, %d in stock", name, quantity, stock)
}

func (t *Tx) CreateConsumption(ctx context.Context, c *stay.Consumption) error {
	err := t.tx.QueryRowContext(ctx, `
		INSERT INTO consumptions (stay_id, product_id, quantity, unit_price, total, consumed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, c.StayID, c.ProductID, c.Quantity, c.UnitPrice, c.Total, c.ConsumedAt).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("creating consumption: %w", err)
	}

	return nil
}
