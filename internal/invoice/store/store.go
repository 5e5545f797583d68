package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/innkeeper/internal/database"
	"github.com/MrJamesThe3rd/innkeeper/internal/invoice"
	"github.com/MrJamesThe3rd/innkeeper/internal/pkg/apperr"
	staystore "github.com/MrJamesThe3rd/innkeeper/internal/stay/store"
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

const selectInvoiceColumns = `
	id, stay_id, number, base, extras, discount, total, status, issue_date, due_date,
	created_at, updated_at, deleted_at
`

func scanInvoice(s scanner) (*invoice.Invoice, error) {
	var (
		inv       invoice.Invoice
		statusStr string
	)

	if err := s.Scan(
		&inv.ID, &inv.StayID, &inv.Number, &inv.Base, &inv.Extras, &inv.Discount, &inv.Total, &statusStr,
		&inv.IssueDate, &inv.DueDate, &inv.CreatedAt, &inv.UpdatedAt, &inv.DeletedAt,
	); err != nil {
		return nil, err
	}

	inv.Status = invoice.Status(statusStr)

	return &inv, nil
}

func getInvoice(ctx context.Context, q querier, query string, id uuid.UUID) (*invoice.Invoice, error) {
	inv, err := scanInvoice(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "invoice %s", id)
		}

		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	if inv.Payments, err = listPayments(ctx, q, inv.ID); err != nil {
		return nil, err
	}

	return inv, nil
}

func listPayments(ctx context.Context, q querier, invoiceID uuid.UUID) ([]*invoice.Payment, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, invoice_id, amount, method, transaction_ref, paid_at
		FROM payments
		WHERE invoice_id = $1
		ORDER BY paid_at ASC, id ASC
	`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	var payments []*invoice.Payment

	for rows.Next() {
		var (
			p      invoice.Payment
			method string
			ref    sql.NullString
		)

		if err := rows.Scan(&p.ID, &p.InvoiceID, &p.Amount, &method, &ref, &p.PaidAt); err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}

		p.Method = invoice.Method(method)
		p.TransactionRef = ref.String
		payments = append(payments, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payment rows: %w", err)
	}

	return payments, nil
}

func (s *Store) GetInvoice(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + ` FROM invoices WHERE id = $1 AND deleted_at IS NULL`

	return getInvoice(ctx, s.db, query, id)
}

func (s *Store) ListInvoices(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + ` FROM invoices WHERE deleted_at IS NULL`

	var args []any

	argIdx := 1

	if filter.Year != nil {
		query += fmt.Sprintf(" AND EXTRACT(YEAR FROM issue_date) = $%d", argIdx)

		args = append(args, *filter.Year)
		argIdx++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)

		args = append(args, *filter.Status)
	}

	query += " ORDER BY number ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*invoice.Invoice

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}

		invoices = append(invoices, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoice rows: %w", err)
	}

	for _, inv := range invoices {
		if inv.Payments, err = listPayments(ctx, s.db, inv.ID); err != nil {
			return nil, err
		}
	}

	return invoices, nil
}

func (s *Store) Begin(ctx context.Context) (invoice.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning invoice tx: %w", err)
	}

	return NewTx(dbTx), nil
}

// Tx extends the stay transaction with invoice writes.
type Tx struct {
	*staystore.Tx
	tx *sql.Tx
}

func NewTx(tx *sql.Tx) *Tx {
	return &Tx{Tx: staystore.NewTx(tx), tx: tx}
}

func (t *Tx) RoomNightlyRate(ctx context.Context, roomID uuid.UUID) (decimal.Decimal, error) {
	var rate decimal.Decimal

	err := t.tx.QueryRowContext(ctx, `
		SELECT t.nightly_rate
		FROM rooms r
		JOIN room_types t ON t.id = r.type_id
		WHERE r.id = $1
	`, roomID).Scan(&rate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, apperr.New(apperr.NotFound, "room %s", roomID)
		}

		return decimal.Zero, fmt.Errorf("getting nightly rate: %w", err)
	}

	return rate, nil
}

func (t *Tx) ExtrasTotal(ctx context.Context, stayID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal

	err := t.tx.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total), 0) FROM consumptions WHERE stay_id = $1
	`, stayID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing extras: %w", err)
	}

	return total, nil
}

// NextInvoiceSequence bumps the per-year counter. The first call for a year seeds it from the
// highest number already issued, so invoices imported before the counter existed are respected.
// The row lock taken by the upsert serialises concurrent issuers until commit.
func (t *Tx) NextInvoiceSequence(ctx context.Context, prefix string, year int) (int, error) {
	query := `
		INSERT INTO invoice_sequences (prefix, year, last_value)
		VALUES ($1, $2, COALESCE((
			SELECT MAX(substring(number FROM length($1) + 7)::int)
			FROM invoices
			WHERE number LIKE $1 || '-' || $2::text || '-%'
		), 0) + 1)
		ON CONFLICT (prefix, year) DO UPDATE SET last_value = invoice_sequences.last_value + 1
		RETURNING last_value
	`

	var seq int
	if err := t.tx.QueryRowContext(ctx, query, prefix, year).Scan(&seq); err != nil {
		return 0, fmt.Errorf("incrementing invoice sequence: %w", err)
	}

	return seq, nil
}

func (t *Tx) CreateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	err := t.tx.QueryRowContext(ctx, `
		INSERT INTO invoices (stay_id, number, base, extras, discount, total, status, issue_date, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at
	`, inv.StayID, inv.Number, inv.Base, inv.Extras, inv.Discount, inv.Total, inv.Status, inv.IssueDate, inv.DueDate,
	).Scan(&inv.ID, &inv.CreatedAt)
	if err != nil {
		if constraint, ok := database.UniqueViolation(err); ok {
			return apperr.Wrap(apperr.DuplicateInvoice, err, constraint)
		}

		return fmt.Errorf("creating invoice: %w", err)
	}

	return nil
}

func (t *Tx) LockInvoice(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + ` FROM invoices WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`

	return getInvoice(ctx, t.tx, query, id)
}

func (t *Tx) CreatePayment(ctx context.Context, p *invoice.Payment) error {
	ref := sql.NullString{String: p.TransactionRef, Valid: p.TransactionRef != ""}

	err := t.tx.QueryRowContext(ctx, `
		INSERT INTO payments (invoice_id, amount, method, transaction_ref, paid_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, p.InvoiceID, p.Amount, p.Method, ref, p.PaidAt).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("creating payment: %w", err)
	}

	return nil
}

func (t *Tx) UpdateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	if _, err := t.tx.ExecContext(ctx, `
		UPDATE invoices
		SET extras = $1, discount = $2, total = $3, status = $4, updated_at = NOW()
		WHERE id = $5 AND deleted_at IS NULL
	`, inv.Extras, inv.Discount, inv.Total, inv.Status, inv.ID); err != nil {
		return fmt.Errorf("updating invoice: %w", err)
	}

	return nil
}
