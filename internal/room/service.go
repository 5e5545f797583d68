package room

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/innkeeper/internal/audit"
	"github.com/MrJamesThe3rd/innkeeper/internal/calendar"
	"github.com/MrJamesThe3rd/innkeeper/internal/pkg/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=room
type Repository interface {
	GetRoom(ctx context.Context, id uuid.UUID) (*Room, error)
	ListRooms(ctx context.Context, filter ListFilter) ([]*Room, error)
	ListAvailable(ctx context.Context, q AvailabilityQuery) ([]*Room, error)
	CreateType(ctx context.Context, t *Type) error
	ListTypes(ctx context.Context) ([]*Type, error)

	Begin(ctx context.Context) (Tx, error)
}

// StatusTx is the slice of a transaction the status transitions need. Lifecycle stores
// embed it so that room status changes commit together with the triggering document.
type StatusTx interface {
	// LockRoom loads a non-deleted room and holds it until the transaction ends.
	LockRoom(ctx context.Context, id uuid.UUID) (*Room, error)
	RoomOccupancy(ctx context.Context, id uuid.UUID, today time.Time) (Occupancy, error)
	SetRoomStatus(ctx context.Context, id uuid.UUID, status Status) error
}

type Tx interface {
	StatusTx
	TypeByName(ctx context.Context, name string) (*Type, error)
	CreateRooms(ctx context.Context, rooms []*Room) error
	HasOpenDocuments(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteRoom(ctx context.Context, id uuid.UUID) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo  Repository
	cal   *calendar.Calendar
	audit audit.Recorder
}

func NewService(repo Repository, cal *calendar.Calendar, rec audit.Recorder) *Service {
	return &Service{repo: repo, cal: cal, audit: rec}
}

type ListFilter struct {
	TypeID *uuid.UUID
	Status *Status
	// IncludeDeleted is the administrative path; every other read excludes soft-deleted rooms.
	IncludeDeleted bool
}

type AvailabilityQuery struct {
	TypeID *uuid.UUID
	Start  time.Time
	End    time.Time
	// ExcludeOccupied drops rooms whose cached status is OCCUPIED; set when the range covers today.
	ExcludeOccupied bool
}

type CreateTypeParams struct {
	Name        string
	NightlyRate decimal.Decimal
	Capacity    int
}

type CreateParams struct {
	Number string
	Floor  int
	TypeID uuid.UUID
	// TypeName is resolved inside the transaction when TypeID is not set.
	TypeName string
}

func (s *Service) CreateType(ctx context.Context, params CreateTypeParams) (*Type, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, apperr.New(apperr.InvalidArgument, "room type name is required")
	}

	if params.NightlyRate.IsNegative() {
		return nil, apperr.New(apperr.InvalidArgument, "nightly rate must not be negative")
	}

	t := &Type{
		Name:        name,
		NightlyRate: params.NightlyRate,
		Capacity:    params.Capacity,
	}
	if err := s.repo.CreateType(ctx, t); err != nil {
		return nil, err
	}

	s.record(ctx, audit.EntityRoomType, t.ID, "create", "room type "+t.Name+" created")

	return t, nil
}

func (s *Service) ListTypes(ctx context.Context) ([]*Type, error) {
	return s.repo.ListTypes(ctx)
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Room, error) {
	rooms, err := s.CreateBatch(ctx, []CreateParams{params})
	if err != nil {
		return nil, err
	}

	return rooms[0], nil
}

// CreateBatch creates all rooms or none.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]*Room, error) {
	if len(params) == 0 {
		return nil, nil
	}

	seen := make(map[string]struct{}, len(params))

	for _, p := range params {
		number := strings.TrimSpace(p.Number)
		if number == "" {
			return nil, apperr.New(apperr.InvalidArgument, "room number is required")
		}

		if p.TypeID == uuid.Nil && strings.TrimSpace(p.TypeName) == "" {
			return nil, apperr.New(apperr.InvalidArgument, "room %s has no room type", number)
		}

		if _, dup := seen[number]; dup {
			return nil, apperr.New(apperr.AlreadyExists, "room %s listed twice", number)
		}

		seen[number] = struct{}{}
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin create rooms: %w", err)
	}
	defer tx.Rollback()

	types := make(map[string]uuid.UUID)
	rooms := make([]*Room, len(params))

	for i, p := range params {
		typeID := p.TypeID
		if typeID == uuid.Nil {
			name := strings.TrimSpace(p.TypeName)

			id, ok := types[name]
			if !ok {
				t, err := tx.TypeByName(ctx, name)
				if err != nil {
					return nil, err
				}

				id = t.ID
				types[name] = id
			}

			typeID = id
		}

		rooms[i] = &Room{
			Number: strings.TrimSpace(p.Number),
			Floor:  p.Floor,
			TypeID: typeID,
			Status: StatusAvailable,
		}
	}

	if err := tx.CreateRooms(ctx, rooms); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create rooms: %w", err)
	}

	for _, r := range rooms {
		s.record(ctx, audit.EntityRoom, r.ID, "create", "room "+r.Number+" created")
	}

	return rooms, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Room, error) {
	return s.repo.GetRoom(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Room, error) {
	rooms, err := s.repo.ListRooms(ctx, filter)
	if err != nil {
		return nil, err
	}

	Sort(rooms)

	return rooms, nil
}

// FindAvailable returns the rooms free for the whole of [start, end), ordered by floor then number.
func (s *Service) FindAvailable(ctx context.Context, typeID *uuid.UUID, start, end time.Time) ([]*Room, error) {
	start, end = s.cal.Date(start), s.cal.Date(end)
	if err := calendar.ValidateRange(start, end); err != nil {
		return nil, err
	}

	today := s.cal.Today()

	rooms, err := s.repo.ListAvailable(ctx, AvailabilityQuery{
		TypeID:          typeID,
		Start:           start,
		End:             end,
		ExcludeOccupied: !today.Before(start) && today.Before(end),
	})
	if err != nil {
		return nil, err
	}

	Sort(rooms)

	return rooms, nil
}

// Transition is the administrative status change, e.g. CLEANING -> AVAILABLE once housekeeping is done.
func (s *Service) Transition(ctx context.Context, id uuid.UUID, status Status) (*Room, error) {
	if !status.Valid() {
		return nil, apperr.New(apperr.InvalidArgument, "unknown room status %q", status)
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin room transition: %w", err)
	}
	defer tx.Rollback()

	r, err := tx.LockRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	if status == StatusAvailable {
		occ, err := tx.RoomOccupancy(ctx, id, s.cal.Today())
		if err != nil {
			return nil, err
		}

		if occ.ActiveStay {
			return nil, apperr.New(apperr.InvalidTransition, "room %s has an active stay; check the guest out instead", r.Number)
		}
	}

	previous := r.Status

	if err := tx.SetRoomStatus(ctx, id, status); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit room transition: %w", err)
	}

	r.Status = status
	s.record(ctx, audit.EntityRoom, r.ID, "transition", fmt.Sprintf("room %s: %s -> %s", r.Number, previous, status))

	return r, nil
}

// Delete soft-deletes a room that no open reservation, stay or invoice references.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete room: %w", err)
	}
	defer tx.Rollback()

	r, err := tx.LockRoom(ctx, id)
	if err != nil {
		return err
	}

	open, err := tx.HasOpenDocuments(ctx, id)
	if err != nil {
		return err
	}

	if open {
		return apperr.New(apperr.InvalidTransition, "room %s is referenced by open reservations, stays or invoices", r.Number)
	}

	if err := tx.DeleteRoom(ctx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete room: %w", err)
	}

	s.record(ctx, audit.EntityRoom, r.ID, "delete", "room "+r.Number+" deleted")

	return nil
}

func (s *Service) record(ctx context.Context, entity audit.Entity, id uuid.UUID, action, description string) {
	s.audit.Record(ctx, audit.Event{
		Entity:      entity,
		EntityID:    id,
		Action:      action,
		Description: description,
		At:          s.cal.Now(),
	})
}

// Sort orders rooms by floor, then number. Numeric room numbers compare by value and
// come before alphanumeric ones, which compare lexicographically.
func Sort(rooms []*Room) {
	slices.SortStableFunc(rooms, func(a, b *Room) int {
		if c := cmp.Compare(a.Floor, b.Floor); c != 0 {
			return c
		}

		return CompareNumbers(a.Number, b.Number)
	})
}

func CompareNumbers(a, b string) int {
	an, aErr := strconv.ParseUint(a, 10, 64)
	bn, bErr := strconv.ParseUint(b, 10, 64)

	switch {
	case aErr == nil && bErr == nil:
		if c := cmp.Compare(an, bn); c != 0 {
			return c
		}

		return cmp.Compare(a, b)
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	default:
		return cmp.Compare(a, b)
	}
}
