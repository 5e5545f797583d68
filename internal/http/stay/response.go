package stay

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/innkeeper/internal/stay"
)

type consumptionResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
	ConsumedAt  time.Time       `json:"consumed_at"`
}

type stayResponse struct {
	ID            uuid.UUID             `json:"id"`
	GuestID       uuid.UUID             `json:"guest_id"`
	RoomID        uuid.UUID             `json:"room_id"`
	ReservationID *uuid.UUID            `json:"reservation_id,omitempty"`
	CheckIn       string                `json:"check_in"`
	CheckOut      string                `json:"check_out"`
	Status        stay.Status           `json:"status"`
	CheckedOutAt  *time.Time            `json:"checked_out_at,omitempty"`
	Consumptions  []consumptionResponse `json:"consumptions"`
	ExtrasTotal   decimal.Decimal       `json:"extras_total"`
}

type productResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Stock     int             `json:"stock"`
	Active    bool            `json:"active"`
}

func toConsumptionResponse(c *stay.Consumption) consumptionResponse {
	return consumptionResponse{
		ID:          c.ID,
		ProductID:   c.ProductID,
		ProductName: c.ProductName,
		Quantity:    c.Quantity,
		UnitPrice:   c.UnitPrice,
		Total:       c.Total,
		ConsumedAt:  c.ConsumedAt,
	}
}

func toResponse(s *stay.Stay) stayResponse {
	resp := stayResponse{
		ID:            s.ID,
		GuestID:       s.GuestID,
		RoomID:        s.RoomID,
		ReservationID: s.ReservationID,
		CheckIn:       s.CheckIn.Format(time.DateOnly),
		CheckOut:      s.CheckOut.Format(time.DateOnly),
		Status:        s.Status,
		CheckedOutAt:  s.CheckedOutAt,
		Consumptions:  make([]consumptionResponse, len(s.Consumptions)),
		ExtrasTotal:   s.ExtrasTotal(),
	}

	for i, c := range s.Consumptions {
		resp.Consumptions[i] = toConsumptionResponse(c)
	}

	return resp
}

func toResponseList(stays []*stay.Stay) []stayResponse {
	resp := make([]stayResponse, len(stays))
	for i, s := range stays {
		resp[i] = toResponse(s)
	}

	return resp
}

func toProductResponse(p *stay.Product) productResponse {
	return productResponse{
		ID:        p.ID,
		Name:      p.Name,
		UnitPrice: p.UnitPrice,
		Stock:     p.Stock,
		Active:    p.Active,
	}
}
