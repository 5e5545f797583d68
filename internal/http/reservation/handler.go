package reservation

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/innkeeper/internal/http/render"
	"github.com/MrJamesThe3rd/innkeeper/internal/reservation"
)

type Handler struct {
	svc *reservation.Service
}

func NewHandler(svc *reservation.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Post("/{id}/confirm", h.confirm)
	r.Post("/{id}/cancel", h.cancel)
	r.Delete("/{id}", h.delete)
}

type allocationRequest struct {
	RoomID        uuid.UUID       `json:"room_id"`
	Price         decimal.Decimal `json:"price"`
	Breakfast     bool            `json:"breakfast"`
	Parking       bool            `json:"parking"`
	CoOccupantIDs []uuid.UUID     `json:"co_occupant_ids,omitempty"`
}

type createRequest struct {
	GuestID     uuid.UUID           `json:"guest_id"`
	CheckIn     string              `json:"check_in"`
	CheckOut    string              `json:"check_out"`
	Allocations []allocationRequest `json:"allocations"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	checkIn, err := render.Date("check_in", req.CheckIn)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	checkOut, err := render.Date("check_out", req.CheckOut)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	params := reservation.CreateParams{
		GuestID:  req.GuestID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
	}

	for _, a := range req.Allocations {
		params.Allocations = append(params.Allocations, reservation.AllocationParams{
			RoomID:        a.RoomID,
			Price:         a.Price,
			Breakfast:     a.Breakfast,
			Parking:       a.Parking,
			CoOccupantIDs: a.CoOccupantIDs,
		})
	}

	res, err := h.svc.Create(r.Context(), params)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, toResponse(res))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	h.byID(w, r, http.StatusOK, h.svc.Get)
}

func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	h.byID(w, r, http.StatusOK, h.svc.Confirm)
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	h.byID(w, r, http.StatusOK, h.svc.Cancel)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := render.ID(r, "id")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		render.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) byID(w http.ResponseWriter, r *http.Request, status int,
	op func(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error),
) {
	id, err := render.ID(r, "id")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	res, err := op(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, status, toResponse(res))
}
