package invoice

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/innkeeper/internal/pkg/apperr"
)

type Status string

const (
	StatusIssued Status = "ISSUED"
	StatusVoid   Status = "VOID"
)

type Method string

const (
	MethodCash     Method = "CASH"
	MethodCard     Method = "CARD"
	MethodTransfer Method = "TRANSFER"
)

func (m Method) Valid() bool {
	switch m {
	case MethodCash, MethodCard, MethodTransfer:
		return true
	}

	return false
}

// OverpaymentPolicy decides whether a payment may exceed the outstanding balance.
type OverpaymentPolicy string

const (
	OverpaymentAllow  OverpaymentPolicy = "ALLOW"
	OverpaymentReject OverpaymentPolicy = "REJECT"
)

func (p OverpaymentPolicy) Valid() bool {
	return p == OverpaymentAllow || p == OverpaymentReject
}

// Invoice bills one stay. Total = Base + Extras - Discount and is frozen once a payment exists.
type Invoice struct {
	ID        uuid.UUID
	StayID    uuid.UUID
	Number    string
	Base      decimal.Decimal
	Extras    decimal.Decimal
	Discount  decimal.Decimal
	Total     decimal.Decimal
	Status    Status
	IssueDate time.Time
	DueDate   time.Time
	Payments  []*Payment
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
}

type Payment struct {
	ID             uuid.UUID
	InvoiceID      uuid.UUID
	Amount         decimal.Decimal
	Method         Method
	TransactionRef string
	PaidAt         time.Time
}

// Paid sums the recorded payments.
func (i *Invoice) Paid() decimal.Decimal {
	paid := decimal.Zero
	for _, p := range i.Payments {
		paid = paid.Add(p.Amount)
	}

	return paid
}

// Outstanding is Total minus payments. It is negative after an overpayment.
func (i *Invoice) Outstanding() decimal.Decimal {
	return i.Total.Sub(i.Paid())
}

// Totals computes base + extras - discount. The discount must lie in [0, base+extras].
func Totals(base, extras, discount decimal.Decimal) (decimal.Decimal, error) {
	gross := base.Add(extras)

	if discount.IsNegative() || discount.GreaterThan(gross) {
		return decimal.Zero, apperr.New(apperr.InvalidDiscount, "discount %s must be between 0 and %s",
			discount.StringFixed(2), gross.StringFixed(2))
	}

	return gross.Sub(discount), nil
}

// FormatNumber renders PREFIX-YEAR-NNNNN.
func FormatNumber(prefix string, year, seq int) string {
	return fmt.Sprintf("%s-%d-%05d", prefix, year, seq)
}

// ParseSequence extracts the sequential part of a number issued with prefix in year.
func ParseSequence(number, prefix string, year int) (int, bool) {
	rest, ok := strings.CutPrefix(number, fmt.Sprintf("%s-%d-", prefix, year))
	if !ok {
		return 0, false
	}

	seq, err := strconv.Atoi(rest)
	if err != nil || seq < 0 {
		return 0, false
	}

	return seq, true
}
