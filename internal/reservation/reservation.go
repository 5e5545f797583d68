package reservation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

// HoldPolicy decides whether a PENDING reservation already blocks its rooms.
type HoldPolicy string

const (
	HoldOnCreate  HoldPolicy = "HOLD_ON_CREATE"
	HoldOnConfirm HoldPolicy = "HOLD_ON_CONFIRM"
)

func (p HoldPolicy) Valid() bool {
	return p == HoldOnCreate || p == HoldOnConfirm
}

// Holds reports whether a reservation in the given status holds inventory under the policy.
func (p HoldPolicy) Holds(status Status) bool {
	switch status {
	case StatusConfirmed:
		return true
	case StatusPending:
		return p == HoldOnCreate
	default:
		return false
	}
}

// Reservation books one or more rooms for the half-open range [CheckIn, CheckOut).
type Reservation struct {
	ID          uuid.UUID
	GuestID     uuid.UUID
	CheckIn     time.Time
	CheckOut    time.Time
	Status      Status
	Allocations []*Allocation
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
}

// Allocation binds one room to a reservation with its agreed price and add-ons.
type Allocation struct {
	ID            uuid.UUID
	ReservationID uuid.UUID
	RoomID        uuid.UUID
	Price         decimal.Decimal
	Breakfast     bool
	Parking       bool
	CoOccupantIDs []uuid.UUID
}

func (r *Reservation) RoomIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(r.Allocations))
	for i, a := range r.Allocations {
		ids[i] = a.RoomID
	}

	return ids
}

// Allocation returns the allocation for roomID, or nil.
func (r *Reservation) Allocation(roomID uuid.UUID) *Allocation {
	for _, a := range r.Allocations {
		if a.RoomID == roomID {
			return a
		}
	}

	return nil
}
