package invoice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/innkeeper/internal/audit"
	"github.com/MrJamesThe3rd/innkeeper/internal/calendar"
	"github.com/MrJamesThe3rd/innkeeper/internal/notify"
	"github.com/MrJamesThe3rd/innkeeper/internal/pkg/apperr"
	"github.com/MrJamesThe3rd/innkeeper/internal/stay"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)
	ListInvoices(ctx context.Context, filter ListFilter) ([]*Invoice, error)

	Begin(ctx context.Context) (Tx, error)
}

type Tx interface {
	stay.ConsumeTx
	LockStay(ctx context.Context, id uuid.UUID) (*stay.Stay, error)
	HasInvoice(ctx context.Context, stayID uuid.UUID) (bool, error)
	// RoomNightlyRate returns the rate of the room's type, including for soft-deleted rooms.
	RoomNightlyRate(ctx context.Context, roomID uuid.UUID) (decimal.Decimal, error)
	ExtrasTotal(ctx context.Context, stayID uuid.UUID) (decimal.Decimal, error)
	// NextInvoiceSequence atomically increments and returns the counter for prefix and year.
	// The increment is undone if the transaction rolls back.
	NextInvoiceSequence(ctx context.Context, prefix string, year int) (int, error)
	CreateInvoice(ctx context.Context, inv *Invoice) error
	// LockInvoice loads a non-deleted invoice with its payments and holds it until the transaction ends.
	LockInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)
	CreatePayment(ctx context.Context, p *Payment) error
	UpdateInvoice(ctx context.Context, inv *Invoice) error
	Commit() error
	Rollback() error
}

type Config struct {
	Prefix      string
	DueDays     int
	Overpayment OverpaymentPolicy
}

type Service struct {
	repo   Repository
	cal    *calendar.Calendar
	audit  audit.Recorder
	notify notify.Sender
	cfg    Config
}

func NewService(repo Repository, cal *calendar.Calendar, rec audit.Recorder, sender notify.Sender, cfg Config) *Service {
	if cfg.Prefix == "" {
		cfg.Prefix = "HPL"
	}

	if cfg.DueDays <= 0 {
		cfg.DueDays = 30
	}

	if !cfg.Overpayment.Valid() {
		cfg.Overpayment = OverpaymentAllow
	}

	return &Service{repo: repo, cal: cal, audit: rec, notify: sender, cfg: cfg}
}

type ListFilter struct {
	Year   *int
	Status *Status
}

type IssueParams struct {
	// Lines are recorded as consumptions before the extras are summed.
	Lines    []stay.Line
	Discount decimal.Decimal
}

type PaymentParams struct {
	Amount         decimal.Decimal
	Method         Method
	TransactionRef string
}

// Receipt is the result of registering a payment.
type Receipt struct {
	Payment     *Payment
	Invoice     *Invoice
	Outstanding decimal.Decimal
}

// Issue bills a stay once, numbering the invoice from the per-year counter.
func (s *Service) Issue(ctx context.Context, stayID uuid.UUID, params IssueParams) (*Invoice, error) {
	for _, line := range params.Lines {
		if err := stay.ValidateLine(line); err != nil {
			return nil, err
		}
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin issue invoice: %w", err)
	}
	defer tx.Rollback()

	st, err := tx.LockStay(ctx, stayID)
	if err != nil {
		return nil, err
	}

	invoiced, err := tx.HasInvoice(ctx, stayID)
	if err != nil {
		return nil, err
	}

	if invoiced {
		return nil, apperr.New(apperr.DuplicateInvoice, "stay %s is already invoiced", stayID)
	}

	nights, err := calendar.Nights(st.CheckIn, st.CheckOut)
	if err != nil {
		return nil, err
	}

	rate, err := tx.RoomNightlyRate(ctx, st.RoomID)
	if err != nil {
		return nil, err
	}

	now := s.cal.Now()

	for _, line := range params.Lines {
		if _, err := stay.Consume(ctx, tx, stayID, line, now); err != nil {
			return nil, err
		}
	}

	extras, err := tx.ExtrasTotal(ctx, stayID)
	if err != nil {
		return nil, err
	}

	base := rate.Mul(decimal.NewFromInt(int64(nights)))

	total, err := Totals(base, extras, params.Discount)
	if err != nil {
		return nil, err
	}

	today := s.cal.Today()

	seq, err := tx.NextInvoiceSequence(ctx, s.cfg.Prefix, today.Year())
	if err != nil {
		return nil, err
	}

	inv := &Invoice{
		StayID:    stayID,
		Number:    FormatNumber(s.cfg.Prefix, today.Year(), seq),
		Base:      base,
		Extras:    extras,
		Discount:  params.Discount,
		Total:     total,
		Status:    StatusIssued,
		IssueDate: today,
		DueDate:   today.AddDate(0, 0, s.cfg.DueDays),
	}
	if err := tx.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit issue invoice: %w", err)
	}

	s.record(ctx, inv.ID, "issue", fmt.Sprintf("invoice %s issued for %s", inv.Number, inv.Total.StringFixed(2)))
	s.notify.Send(ctx, notify.Message{
		Recipient: st.GuestID.String(),
		Subject:   "Invoice issued",
		Content: fmt.Sprintf("Invoice %s: %s due by %s.",
			inv.Number, inv.Total.StringFixed(2), inv.DueDate.Format(time.DateOnly)),
	})

	return inv, nil
}

// RegisterPayment appends a payment to an ISSUED invoice and reports the remaining balance.
func (s *Service) RegisterPayment(ctx context.Context, invoiceID uuid.UUID, params PaymentParams) (*Receipt, error) {
	if !params.Amount.IsPositive() {
		return nil, apperr.New(apperr.InvalidArgument, "payment amount must be positive")
	}

	method := Method(strings.ToUpper(string(params.Method)))
	if !method.Valid() {
		return nil, apperr.New(apperr.InvalidArgument, "unknown payment method %q", params.Method)
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin register payment: %w", err)
	}
	defer tx.Rollback()

	inv, err := tx.LockInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if inv.Status != StatusIssued {
		return nil, apperr.New(apperr.InvalidTransition, "cannot pay a %s invoice", inv.Status)
	}

	if s.cfg.Overpayment == OverpaymentReject && params.Amount.GreaterThan(inv.Outstanding()) {
		return nil, apperr.New(apperr.Overpayment, "payment %s exceeds outstanding balance %s",
			params.Amount.StringFixed(2), inv.Outstanding().StringFixed(2))
	}

	p := &Payment{
		InvoiceID:      inv.ID,
		Amount:         params.Amount,
		Method:         method,
		TransactionRef: strings.TrimSpace(params.TransactionRef),
		PaidAt:         s.cal.Now(),
	}
	if err := tx.CreatePayment(ctx, p); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit register payment: %w", err)
	}

	inv.Payments = append(inv.Payments, p)
	s.record(ctx, inv.ID, "payment", fmt.Sprintf("%s %s paid on invoice %s", p.Amount.StringFixed(2), p.Method, inv.Number))

	return &Receipt{Payment: p, Invoice: inv, Outstanding: inv.Outstanding()}, nil
}

// Void cancels an ISSUED invoice that has no payments.
func (s *Service) Void(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin void invoice: %w", err)
	}
	defer tx.Rollback()

	inv, err := tx.LockInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	if inv.Status != StatusIssued {
		return nil, apperr.New(apperr.InvalidTransition, "cannot void a %s invoice", inv.Status)
	}

	if len(inv.Payments) > 0 {
		return nil, apperr.New(apperr.HasPayments, "invoice %s has %d payments", inv.Number, len(inv.Payments))
	}

	inv.Status = StatusVoid
	if err := tx.UpdateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit void invoice: %w", err)
	}

	s.record(ctx, inv.ID, "void", "invoice "+inv.Number+" voided")

	return inv, nil
}

// Modify replaces the discount of an unpaid invoice and recomputes its total from the current extras.
func (s *Service) Modify(ctx context.Context, id uuid.UUID, discount decimal.Decimal) (*Invoice, error) {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin modify invoice: %w", err)
	}
	defer tx.Rollback()

	inv, err := tx.LockInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	if inv.Status != StatusIssued {
		return nil, apperr.New(apperr.InvalidTransition, "cannot modify a %s invoice", inv.Status)
	}

	if len(inv.Payments) > 0 {
		return nil, apperr.New(apperr.HasPayments, "invoice %s has payments; its total is frozen", inv.Number)
	}

	extras, err := tx.ExtrasTotal(ctx, inv.StayID)
	if err != nil {
		return nil, err
	}

	total, err := Totals(inv.Base, extras, discount)
	if err != nil {
		return nil, err
	}

	previous := inv.Total
	inv.Extras = extras
	inv.Discount = discount
	inv.Total = total

	if err := tx.UpdateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit modify invoice: %w", err)
	}

	s.record(ctx, inv.ID, "modify", fmt.Sprintf("invoice %s total %s -> %s",
		inv.Number, previous.StringFixed(2), total.StringFixed(2)))

	return inv, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return s.repo.GetInvoice(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Invoice, error) {
	return s.repo.ListInvoices(ctx, filter)
}

func (s *Service) record(ctx context.Context, id uuid.UUID, action, description string) {
	s.audit.Record(ctx, audit.Event{
		Entity:      audit.EntityInvoice,
		EntityID:    id,
		Action:      action,
		Description: description,
		At:          s.cal.Now(),
	})
}
