package invoice

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/innkeeper/internal/http/render"
	"github.com/MrJamesThe3rd/innkeeper/internal/invoice"
	"github.com/MrJamesThe3rd/innkeeper/internal/pkg/apperr"
	"github.com/MrJamesThe3rd/innkeeper/internal/stay"
)

type Handler struct {
	svc *invoice.Service
}

func NewHandler(svc *invoice.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.issue)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.modify)
	r.Post("/{id}/payments", h.pay)
	r.Post("/{id}/void", h.void)
}

type lineRequest struct {
	ProductID uuid.UUID        `json:"product_id"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

type issueRequest struct {
	StayID   uuid.UUID       `json:"stay_id"`
	Lines    []lineRequest   `json:"lines,omitempty"`
	Discount decimal.Decimal `json:"discount"`
}

func (h *Handler) issue(w http.ResponseWriter, r *http.Request) {
	var req issueRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	params := invoice.IssueParams{Discount: req.Discount}
	for _, l := range req.Lines {
		params.Lines = append(params.Lines, stay.Line{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}

	inv, err := h.svc.Issue(r.Context(), req.StayID, params)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, toResponse(inv))
}

// ParseFilter reads the optional year and status query parameters.
func ParseFilter(r *http.Request) (invoice.ListFilter, error) {
	var filter invoice.ListFilter

	if v := r.URL.Query().Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return filter, apperr.New(apperr.InvalidArgument, "year must be a number, got %q", v)
		}

		filter.Year = &year
	}

	if v := r.URL.Query().Get("status"); v != "" {
		status := invoice.Status(v)
		if status != invoice.StatusIssued && status != invoice.StatusVoid {
			return filter, apperr.New(apperr.InvalidArgument, "unknown invoice status %q", v)
		}

		filter.Status = &status
	}

	return filter, nil
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := ParseFilter(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	invoices, err := h.svc.List(r.Context(), filter)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	resp := make([]invoiceResponse, len(invoices))
	for i, inv := range invoices {
		resp[i] = toResponse(inv)
	}

	render.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r, "id")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	inv, err := h.svc.Get(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(inv))
}

type modifyRequest struct {
	Discount decimal.Decimal `json:"discount"`
}

func (h *Handler) modify(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r, "id")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	var req modifyRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	inv, err := h.svc.Modify(r.Context(), id, req.Discount)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(inv))
}

type paymentRequest struct {
	Amount         decimal.Decimal `json:"amount"`
	Method         invoice.Method  `json:"method"`
	TransactionRef string          `json:"transaction_ref,omitempty"`
}

func (h *Handler) pay(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r, "id")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	var req paymentRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	receipt, err := h.svc.RegisterPayment(r.Context(), id, invoice.PaymentParams{
		Amount:         req.Amount,
		Method:         req.Method,
		TransactionRef: req.TransactionRef,
	})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, receiptResponse{
		Payment:     toPaymentResponse(receipt.Payment),
		Outstanding: receipt.Outstanding,
	})
}

func (h *Handler) void(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r, "id")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	inv, err := h.svc.Void(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(inv))
}
