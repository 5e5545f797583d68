package invoice_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/innkeeper/internal/invoice"
	"github.com/MrJamesThe3rd/innkeeper/internal/pkg/apperr"
)

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "HPL-2025-00001", invoice.FormatNumber("HPL", 2025, 1))
	assert.Equal(t, "HPL-2025-12345", invoice.FormatNumber("HPL", 2025, 12345))
	assert.Equal(t, "HPL-2025-123456", invoice.FormatNumber("HPL", 2025, 123456))
}

func TestParseSequence(t *testing.T) {
	tests := []struct {
		name   string
		number string
		want   int
		wantOK bool
	}{
		{name: "Padded", number: "HPL-2025-00042", want: 42, wantOK: true},
		{name: "Overflowed", number: "HPL-2025-100000", want: 100000, wantOK: true},
		{name: "OtherYear", number: "HPL-2024-00042"},
		{name: "OtherPrefix", number: "ABC-2025-00042"},
		{name: "Garbage", number: "HPL-2025-abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := invoice.ParseSequence(tt.number, "HPL", 2025)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTotals(t *testing.T) {
	d := decimal.RequireFromString

	tests := []struct {
		name     string
		base     decimal.Decimal
		extras   decimal.Decimal
		discount decimal.Decimal
		want     decimal.Decimal
		wantErr  bool
	}{
		{name: "NoDiscount", base: d("300"), extras: d("16"), discount: decimal.Zero, want: d("316")},
		{name: "PartialDiscount", base: d("300"), extras: d("16"), discount: d("16.50"), want: d("299.50")},
		{name: "FullDiscount", base: d("300"), extras: d("16"), discount: d("316"), want: decimal.Zero},
		{name: "NegativeDiscount", base: d("300"), extras: d("16"), discount: d("-1"), wantErr: true},
		{name: "DiscountAboveGross", base: d("300"), extras: d("16"), discount: d("316.01"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := invoice.Totals(tt.base, tt.extras, tt.discount)

			if tt.wantErr {
				assert.ErrorIs(t, err, apperr.InvalidDiscount)
				return
			}

			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestInvoice_Outstanding(t *testing.T) {
	inv := &invoice.Invoice{
		Total: decimal.NewFromInt(316),
		Payments: []*invoice.Payment{
			{Amount: decimal.NewFromInt(300)},
			{Amount: decimal.NewFromInt(20)},
		},
	}

	assert.True(t, decimal.NewFromInt(-4).Equal(inv.Outstanding()))
}
