package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/innkeeper/internal/invoice"
)

// InvoiceLister is the slice of the invoicing service the register reads from.
type InvoiceLister interface {
	List(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error)
}

// Item is one line of the invoice register.
type Item struct {
	Invoice     *invoice.Invoice
	Paid        decimal.Decimal
	Outstanding decimal.Decimal
}

// Totals aggregates the register. Voided invoices are counted but excluded from the amounts.
type Totals struct {
	Issued      int
	Voided      int
	Billed      decimal.Decimal
	Paid        decimal.Decimal
	Outstanding decimal.Decimal
}

type Service struct {
	invoices InvoiceLister
}

func NewService(invoices InvoiceLister) *Service {
	return &Service{invoices: invoices}
}

// Register lists the invoices matching filter in number order.
func (s *Service) Register(ctx context.Context, filter invoice.ListFilter) ([]Item, error) {
	invoices, err := s.invoices.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}

	items := make([]Item, 0, len(invoices))
	for _, inv := range invoices {
		items = append(items, Item{
			Invoice:     inv,
			Paid:        inv.Paid(),
			Outstanding: inv.Outstanding(),
		})
	}

	return items, nil
}

func Summarize(items []Item) Totals {
	t := Totals{Billed: decimal.Zero, Paid: decimal.Zero, Outstanding: decimal.Zero}

	for _, item := range items {
		if item.Invoice.Status == invoice.StatusVoid {
			t.Voided++
			continue
		}

		t.Issued++
		t.Billed = t.Billed.Add(item.Invoice.Total)
		t.Paid = t.Paid.Add(item.Paid)
		t.Outstanding = t.Outstanding.Add(item.Outstanding)
	}

	return t
}

var csvHeader = []string{
	"number", "issue_date", "due_date", "status", "base", "extras", "discount", "total", "paid", "outstanding",
}

// WriteCSV writes the register with a header row. Amounts use two decimal places.
func WriteCSV(w io.Writer, items []Item) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, item := range items {
		inv := item.Invoice

		record := []string{
			inv.Number,
			inv.IssueDate.Format(time.DateOnly),
			inv.DueDate.Format(time.DateOnly),
			string(inv.Status),
			inv.Base.StringFixed(2),
			inv.Extras.StringFixed(2),
			inv.Discount.StringFixed(2),
			inv.Total.StringFixed(2),
			item.Paid.StringFixed(2),
			item.Outstanding.StringFixed(2),
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing invoice %s: %w", inv.Number, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// Summary renders the register as plain text, one bullet per invoice followed by the totals.
func Summary(items []Item) string {
	var sb strings.Builder

	for _, item := range items {
		inv := item.Invoice

		state := "Settled"

		switch {
		case inv.Status == invoice.StatusVoid:
			state = "Void"
		case item.Outstanding.IsPositive():
			state = "Due " + item.Outstanding.StringFixed(2)
		case item.Outstanding.IsNegative():
			state = "Overpaid " + item.Outstanding.Neg().StringFixed(2)
		}

		fmt.Fprintf(&sb, "* %s | %s | %s € | %s\n",
			inv.IssueDate.Format(time.DateOnly), inv.Number, inv.Total.StringFixed(2), state)
	}

	t := Summarize(items)
	fmt.Fprintf(&sb, "\nIssued: %d  Void: %d  Billed: %s €  Paid: %s €  Outstanding: %s €\n",
		t.Issued, t.Voided, t.Billed.StringFixed(2), t.Paid.StringFixed(2), t.Outstanding.StringFixed(2))

	return sb.String()
}
