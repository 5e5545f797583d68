package invoice

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/innkeeper/internal/invoice"
)

type paymentResponse struct {
	ID             uuid.UUID       `json:"id"`
	Amount         decimal.Decimal `json:"amount"`
	Method         invoice.Method  `json:"method"`
	TransactionRef string          `json:"transaction_ref,omitempty"`
	PaidAt         time.Time       `json:"paid_at"`
}

type invoiceResponse struct {
	ID          uuid.UUID         `json:"id"`
	StayID      uuid.UUID         `json:"stay_id"`
	Number      string            `json:"number"`
	Base        decimal.Decimal   `json:"base"`
	Extras      decimal.Decimal   `json:"extras"`
	Discount    decimal.Decimal   `json:"discount"`
	Total       decimal.Decimal   `json:"total"`
	Status      invoice.Status    `json:"status"`
	IssueDate   string            `json:"issue_date"`
	DueDate     string            `json:"due_date"`
	Payments    []paymentResponse `json:"payments"`
	Outstanding decimal.Decimal   `json:"outstanding"`
}

type receiptResponse struct {
	Payment     paymentResponse `json:"payment"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

func toPaymentResponse(p *invoice.Payment) paymentResponse {
	return paymentResponse{
		ID:             p.ID,
		Amount:         p.Amount,
		Method:         p.Method,
		TransactionRef: p.TransactionRef,
		PaidAt:         p.PaidAt,
	}
}

func toResponse(inv *invoice.Invoice) invoiceResponse {
	resp := invoiceResponse{
		ID:          inv.ID,
		StayID:      inv.StayID,
		Number:      inv.Number,
		Base:        inv.Base,
		Extras:      inv.Extras,
		Discount:    inv.Discount,
		Total:       inv.Total,
		Status:      inv.Status,
		IssueDate:   inv.IssueDate.Format(time.DateOnly),
		DueDate:     inv.DueDate.Format(time.DateOnly),
		Payments:    make([]paymentResponse, len(inv.Payments)),
		Outstanding: inv.Outstanding(),
	}

	for i, p := range inv.Payments {
		resp.Payments[i] = toPaymentResponse(p)
	}

	return resp
}
