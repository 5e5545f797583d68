package export_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/innkeeper/internal/export"
	"github.com/MrJamesThe3rd/innkeeper/internal/invoice"
)

type listerFunc func(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error)

func (f listerFunc) List(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error) {
	return f(ctx, filter)
}

func fixture() []*invoice.Invoice {
	day := time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC)

	return []*invoice.Invoice{
		{
			Number:    "HPL-2025-00001",
			Base:      decimal.NewFromInt(300),
			Extras:    decimal.NewFromInt(16),
			Discount:  decimal.Zero,
			Total:     decimal.NewFromInt(316),
			Status:    invoice.StatusIssued,
			IssueDate: day,
			DueDate:   day.AddDate(0, 0, 30),
			Payments:  []*invoice.Payment{{Amount: decimal.NewFromInt(316)}},
		},
		{
			Number:    "HPL-2025-00002",
			Base:      decimal.NewFromInt(150),
			Extras:    decimal.Zero,
			Discount:  decimal.NewFromInt(10),
			Total:     decimal.NewFromInt(140),
			Status:    invoice.StatusIssued,
			IssueDate: day,
			DueDate:   day.AddDate(0, 0, 30),
			Payments:  []*invoice.Payment{{Amount: decimal.NewFromInt(40)}},
		},
		{
			Number:    "HPL-2025-00003",
			Base:      decimal.NewFromInt(150),
			Extras:    decimal.Zero,
			Discount:  decimal.Zero,
			Total:     decimal.NewFromInt(150),
			Status:    invoice.StatusVoid,
			IssueDate: day,
			DueDate:   day.AddDate(0, 0, 30),
		},
	}
}

func TestService_Register(t *testing.T) {
	year := 2025

	svc := export.NewService(listerFunc(func(_ context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error) {
		require.NotNil(t, filter.Year)
		assert.Equal(t, year, *filter.Year)

		return fixture(), nil
	}))

	items, err := svc.Register(context.Background(), invoice.ListFilter{Year: &year})
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.True(t, items[0].Outstanding.IsZero())
	assert.True(t, items[1].Outstanding.Equal(decimal.NewFromInt(100)))

	totals := export.Summarize(items)
	assert.Equal(t, 2, totals.Issued)
	assert.Equal(t, 1, totals.Voided)
	assert.True(t, totals.Billed.Equal(decimal.NewFromInt(456)), totals.Billed.String())
	assert.True(t, totals.Paid.Equal(decimal.NewFromInt(356)), totals.Paid.String())
	assert.True(t, totals.Outstanding.Equal(decimal.NewFromInt(100)), totals.Outstanding.String())
}

func TestService_RegisterError(t *testing.T) {
	svc := export.NewService(listerFunc(func(context.Context, invoice.ListFilter) ([]*invoice.Invoice, error) {
		return nil, errors.New("connection reset")
	}))

	_, err := svc.Register(context.Background(), invoice.ListFilter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listing invoices")
}

func TestWriteCSV(t *testing.T) {
	svc := export.NewService(listerFunc(func(context.Context, invoice.ListFilter) ([]*invoice.Invoice, error) {
		return fixture(), nil
	}))

	items, err := svc.Register(context.Background(), invoice.ListFilter{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, items))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "number,issue_date,due_date,status,base,extras,discount,total,paid,outstanding", lines[0])
	assert.Equal(t, "HPL-2025-00001,2025-01-12,2025-02-11,ISSUED,300.00,16.00,0.00,316.00,316.00,0.00", lines[1])
	assert.Equal(t, "HPL-2025-00003,2025-01-12,2025-02-11,VOID,150.00,0.00,0.00,150.00,0.00,150.00", lines[3])
}

func TestSummary(t *testing.T) {
	svc := export.NewService(listerFunc(func(context.Context, invoice.ListFilter) ([]*invoice.Invoice, error) {
		return fixture(), nil
	}))

	items, err := svc.Register(context.Background(), invoice.ListFilter{})
	require.NoError(t, err)

	body := export.Summary(items)

	assert.Contains(t, body, "* 2025-01-12 | HPL-2025-00001 | 316.00 € | Settled\n")
	assert.Contains(t, body, "* 2025-01-12 | HPL-2025-00002 | 140.00 € | Due 100.00\n")
	assert.Contains(t, body, "* 2025-01-12 | HPL-2025-00003 | 150.00 € | Void\n")
	assert.Contains(t, body, "Issued: 2  Void: 1  Billed: 456.00 €  Paid: 356.00 €  Outstanding: 100.00 €")
}
