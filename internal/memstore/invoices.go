package memstore

import (
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/innkeeper/internal/invoice"
	"github.com/MrJamesThe3rd/innkeeper/internal/pkg/apperr"
)

// invoiceWithPayments returns a detached copy of inv with its payments in recording order.
func (d *data) invoiceWithPayments(inv *invoice.Invoice) *invoice.Invoice {
	cp := cloneInvoice(inv)

	for _, p := range d.payments {
		if p.InvoiceID == inv.ID {
			pc := *p
			cp.Payments = append(cp.Payments, &pc)
		}
	}

	return cp
}

func (s *Store) GetInvoice(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	var out *invoice.Invoice

	err := s.withLock(ctx, func(d *data) error {
		inv, ok := d.invoices[id]
		if !ok || inv.DeletedAt != nil {
			return apperr.New(apperr.NotFound, "invoice %s", id)
		}

		out = d.invoiceWithPayments(inv)

		return nil
	})

	return out, err
}

func (s *Store) ListInvoices(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error) {
	var out []*invoice.Invoice

	err := s.withLock(ctx, func(d *data) error {
		for _, inv := range d.invoices {
			if inv.DeletedAt != nil {
				continue
			}

			if filter.Year != nil && inv.IssueDate.Year() != *filter.Year {
				continue
			}

			if filter.Status != nil && inv.Status != *filter.Status {
				continue
			}

			out = append(out, d.invoiceWithPayments(inv))
		}

		return nil
	})

	slices.SortFunc(out, func(a, b *invoice.Invoice) int { return strings.Compare(a.Number, b.Number) })

	return out, err
}

func (t *tx) RoomNightlyRate(_ context.Context, roomID uuid.UUID) (decimal.Decimal, error) {
	r, ok := t.d.rooms[roomID]
	if !ok {
		return decimal.Zero, apperr.New(apperr.NotFound, "room %s", roomID)
	}

	rt, ok := t.d.types[r.TypeID]
	if !ok {
		return decimal.Zero, apperr.New(apperr.NotFound, "room type %s", r.TypeID)
	}

	return rt.NightlyRate, nil
}

func (t *tx) ExtrasTotal(_ context.Context, stayID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero

	for _, c := range t.d.consumptions {
		if c.StayID == stayID {
			total = total.Add(c.Total)
		}
	}

	return total, nil
}

// NextInvoiceSequence seeds a new counter from the highest number already issued for the year.
func (t *tx) NextInvoiceSequence(_ context.Context, prefix string, year int) (int, error) {
	key := seqKey{prefix: prefix, year: year}

	last, ok := t.d.sequences[key]
	if !ok {
		for _, inv := range t.d.invoices {
			if seq, ok := invoice.ParseSequence(inv.Number, prefix, year); ok && seq > last {
				last = seq
			}
		}
	}

	t.d.sequences[key] = last + 1

	return last + 1, nil
}

func (t *tx) CreateInvoice(_ context.Context, inv *invoice.Invoice) error {
	for _, existing := range t.d.invoices {
		if existing.StayID == inv.StayID {
			return apperr.New(apperr.DuplicateInvoice, "stay %s is already invoiced", inv.StayID)
		}

		if existing.Number == inv.Number {
			return apperr.New(apperr.DuplicateInvoice, "invoice number %s is taken", inv.Number)
		}
	}

	inv.ID = uuid.New()
	inv.CreatedAt = t.store.now()
	inv.UpdatedAt = new(inv.CreatedAt)
	t.d.invoices[inv.ID] = cloneInvoice(inv)

	return nil
}

func (t *tx) LockInvoice(_ context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	inv, ok := t.d.invoices[id]
	if !ok || inv.DeletedAt != nil {
		return nil, apperr.New(apperr.NotFound, "invoice %s", id)
	}

	return t.d.invoiceWithPayments(inv), nil
}

func (t *tx) CreatePayment(_ context.Context, p *invoice.Payment) error {
	if _, ok := t.d.invoices[p.InvoiceID]; !ok {
		return apperr.New(apperr.NotFound, "invoice %s", p.InvoiceID)
	}

	p.ID = uuid.New()
	cp := *p
	t.d.payments = append(t.d.payments, &cp)

	return nil
}

func (t *tx) UpdateInvoice(_ context.Context, inv *invoice.Invoice) error {
	existing, ok := t.d.invoices[inv.ID]
	if !ok || existing.DeletedAt != nil {
		return apperr.New(apperr.NotFound, "invoice %s", inv.ID)
	}

	existing.Extras = inv.Extras
	existing.Discount = inv.Discount
	existing.Total = inv.Total
	existing.Status = inv.Status
	existing.UpdatedAt = new(t.store.now())

	return nil
}
