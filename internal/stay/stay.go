package stay

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusFinished  Status = "FINISHED"
	StatusCancelled Status = "CANCELLED"
)

// Stay is the occupancy of one room by one guest for [CheckIn, CheckOut).
// ReservationID is nil for walk-ins.
type Stay struct {
	ID            uuid.UUID
	GuestID       uuid.UUID
	RoomID        uuid.UUID
	ReservationID *uuid.UUID
	CheckIn       time.Time
	CheckOut      time.Time
	Status        Status
	CheckedOutAt  *time.Time
	Consumptions  []*Consumption
	CreatedAt     time.Time
	UpdatedAt     *time.Time
	DeletedAt     *time.Time
}

// Consumption is a billable extra recorded against a stay.
type Consumption struct {
	ID          uuid.UUID
	StayID      uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
	ConsumedAt  time.Time
}

type Product struct {
	ID        uuid.UUID
	Name      string
	UnitPrice decimal.Decimal
	Stock     int
	Active    bool
	CreatedAt time.Time
}

// Line is a consumption request. A nil UnitPrice charges the product's current price.
type Line struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice *decimal.Decimal
}

// ExtrasTotal sums the line totals of the loaded consumptions.
func (s *Stay) ExtrasTotal() decimal.Decimal {
	total := decimal.Zero
	for _, c := range s.Consumptions {
		total = total.Add(c.Total)
	}

	return total
}
