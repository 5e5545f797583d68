package room

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/innkeeper/internal/room"
)

type typeResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	NightlyRate decimal.Decimal `json:"nightly_rate"`
	Capacity    int             `json:"capacity"`
}

type roomResponse struct {
	ID        uuid.UUID     `json:"id"`
	Number    string        `json:"number"`
	Floor     int           `json:"floor"`
	Status    room.Status   `json:"status"`
	Type      *typeResponse `json:"room_type,omitempty"`
	TypeID    uuid.UUID     `json:"room_type_id"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt *time.Time    `json:"updated_at,omitempty"`
	DeletedAt *time.Time    `json:"deleted_at,omitempty"`
}

func toTypeResponse(t *room.Type) typeResponse {
	return typeResponse{
		ID:          t.ID,
		Name:        t.Name,
		NightlyRate: t.NightlyRate,
		Capacity:    t.Capacity,
	}
}

func toResponse(r *room.Room) roomResponse {
	resp := roomResponse{
		ID:        r.ID,
		Number:    r.Number,
		Floor:     r.Floor,
		Status:    r.Status,
		TypeID:    r.TypeID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		DeletedAt: r.DeletedAt,
	}

	if r.Type != nil {
		resp.Type = new(toTypeResponse(r.Type))
	}

	return resp
}

func toResponseList(rooms []*room.Room) []roomResponse {
	resp := make([]roomResponse, len(rooms))
	for i, r := range rooms {
		resp[i] = toResponse(r)
	}

	return resp
}
