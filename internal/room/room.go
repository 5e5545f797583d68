package room

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the cached projection of a room's lifecycle state.
type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusOccupied  Status = "OCCUPIED"
	StatusCleaning  Status = "CLEANING"
	StatusReserved  Status = "RESERVED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusOccupied, StatusCleaning, StatusReserved:
		return true
	}

	return false
}

// Type is a room category with its nightly rate.
type Type struct {
	ID          uuid.UUID
	Name        string
	NightlyRate decimal.Decimal
	Capacity    int
	CreatedAt   time.Time
}

// Room is a physical room. Number is unique and immutable.
type Room struct {
	ID        uuid.UUID
	Number    string
	Floor     int
	TypeID    uuid.UUID
	Type      *Type // Loaded via JOIN
	Status    Status
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
}

// Occupancy is the lifecycle truth a room's status is projected from.
type Occupancy struct {
	// ActiveStay is set when an ACTIVE stay occupies the room.
	ActiveStay bool
	// PendingArrival is set when an inventory-holding reservation that has not been
	// checked in yet ends after today.
	PendingArrival bool
}

// Project derives the status a room must have given its occupancy.
// CLEANING is sticky: only an administrative transition leaves it.
func Project(current Status, occ Occupancy) Status {
	switch {
	case occ.ActiveStay:
		return StatusOccupied
	case current == StatusCleaning:
		return StatusCleaning
	case occ.PendingArrival:
		return StatusReserved
	default:
		return StatusAvailable
	}
}
