package reservation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/innkeeper/internal/reservation"
)

type allocationResponse struct {
	ID            uuid.UUID       `json:"id"`
	RoomID        uuid.UUID       `json:"room_id"`
	Price         decimal.Decimal `json:"price"`
	Breakfast     bool            `json:"breakfast"`
	Parking       bool            `json:"parking"`
	CoOccupantIDs []uuid.UUID     `json:"co_occupant_ids,omitempty"`
}

type reservationResponse struct {
	ID          uuid.UUID            `json:"id"`
	GuestID     uuid.UUID            `json:"guest_id"`
	CheckIn     string               `json:"check_in"`
	CheckOut    string               `json:"check_out"`
	Status      reservation.Status   `json:"status"`
	Allocations []allocationResponse `json:"allocations"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   *time.Time           `json:"updated_at,omitempty"`
}

func toResponse(r *reservation.Reservation) reservationResponse {
	resp := reservationResponse{
		ID:          r.ID,
		GuestID:     r.GuestID,
		CheckIn:     r.CheckIn.Format(time.DateOnly),
		CheckOut:    r.CheckOut.Format(time.DateOnly),
		Status:      r.Status,
		Allocations: make([]allocationResponse, len(r.Allocations)),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}

	for i, a := range r.Allocations {
		resp.Allocations[i] = allocationResponse{
			ID:            a.ID,
			RoomID:        a.RoomID,
			Price:         a.Price,
			Breakfast:     a.Breakfast,
			Parking:       a.Parking,
			CoOccupantIDs: a.CoOccupantIDs,
		}
	}

	return resp
}
