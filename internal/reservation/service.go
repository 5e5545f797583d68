package reservation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/innkeeper/internal/audit"
	"github.com/MrJamesThe3rd/innkeeper/internal/calendar"
	"github.com/MrJamesThe3rd/innkeeper/internal/pkg/apperr"
	"github.com/MrJamesThe3rd/innkeeper/internal/room"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=reservation
type Repository interface {
	GetReservation(ctx context.Context, id uuid.UUID) (*Reservation, error)
	Begin(ctx context.Context) (Tx, error)
}

type Tx interface {
	room.StatusTx
	// ConflictingRooms returns, sorted, those of roomIDs held for a range overlapping [start, end)
	// by an inventory-holding allocation or an ACTIVE stay that does not belong to exclude.
	ConflictingRooms(ctx context.Context, roomIDs []uuid.UUID, start, end time.Time, exclude uuid.UUID) ([]uuid.UUID, error)
	CreateReservation(ctx context.Context, r *Reservation, holdsInventory bool) error
	// LockReservation loads a non-deleted reservation with its allocations and holds it until the transaction ends.
	LockReservation(ctx context.Context, id uuid.UUID) (*Reservation, error)
	UpdateReservationStatus(ctx context.Context, id uuid.UUID, status Status, holdsInventory bool) error
	HasStays(ctx context.Context, reservationID uuid.UUID) (bool, error)
	DeleteReservation(ctx context.Context, id uuid.UUID) error
	Commit() error
	Rollback() error
}

type Config struct {
	HoldPolicy HoldPolicy
}

type Service struct {
	repo  Repository
	cal   *calendar.Calendar
	audit audit.Recorder
	cfg   Config
}

func NewService(repo Repository, cal *calendar.Calendar, rec audit.Recorder, cfg Config) *Service {
	if !cfg.HoldPolicy.Valid() {
		cfg.HoldPolicy = HoldOnCreate
	}

	return &Service{repo: repo, cal: cal, audit: rec, cfg: cfg}
}

type AllocationParams struct {
	RoomID        uuid.UUID
	Price         decimal.Decimal
	Breakfast     bool
	Parking       bool
	CoOccupantIDs []uuid.UUID
}

type CreateParams struct {
	GuestID     uuid.UUID
	CheckIn     time.Time
	CheckOut    time.Time
	Allocations []AllocationParams
}

func (s *Service) validate(params CreateParams) (time.Time, time.Time, error) {
	start, end := s.cal.Date(params.CheckIn), s.cal.Date(params.CheckOut)
	if err := calendar.ValidateRange(start, end); err != nil {
		return start, end, err
	}

	if s.cal.IsPast(start) {
		return start, end, apperr.New(apperr.InvalidRange, "check-in %s is in the past", start.Format(time.DateOnly))
	}

	if params.GuestID == uuid.Nil {
		return start, end, apperr.New(apperr.InvalidArgument, "guest is required")
	}

	if len(params.Allocations) == 0 {
		return start, end, apperr.New(apperr.InvalidArgument, "at least one room is required")
	}

	seen := make(map[uuid.UUID]struct{}, len(params.Allocations))

	for _, a := range params.Allocations {
		if _, dup := seen[a.RoomID]; dup {
			return start, end, apperr.New(apperr.InvalidArgument, "room %s allocated twice", a.RoomID)
		}

		seen[a.RoomID] = struct{}{}

		if a.Price.IsNegative() {
			return start, end, apperr.New(apperr.InvalidArgument, "price for room %s must not be negative", a.RoomID)
		}
	}

	return start, end, nil
}

// Create books every allocated room or none of them.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Reservation, error) {
	start, end, err := s.validate(params)
	if err != nil {
		return nil, err
	}

	res := &Reservation{
		GuestID:  params.GuestID,
		CheckIn:  start,
		CheckOut: end,
		Status:   StatusPending,
	}

	for _, a := range params.Allocations {
		res.Allocations = append(res.Allocations, &Allocation{
			RoomID:        a.RoomID,
			Price:         a.Price,
			Breakfast:     a.Breakfast,
			Parking:       a.Parking,
			CoOccupantIDs: a.CoOccupantIDs,
		})
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin create reservation: %w", err)
	}
	defer tx.Rollback()

	rooms, err := room.LockInOrder(ctx, tx, res.RoomIDs())
	if err != nil {
		return nil, err
	}

	conflicts, err := tx.ConflictingRooms(ctx, res.RoomIDs(), start, end, uuid.Nil)
	if err != nil {
		return nil, err
	}

	if len(conflicts) > 0 {
		return nil, apperr.Unavailable(conflicts...)
	}

	holds := s.cfg.HoldPolicy.Holds(StatusPending)
	if err := tx.CreateReservation(ctx, res, holds); err != nil {
		return nil, err
	}

	if err := s.refresh(ctx, tx, res.RoomIDs()); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create reservation: %w", err)
	}

	s.record(ctx, res.ID, "create", fmt.Sprintf("reservation %s created for rooms %s, %s to %s",
		res.ID, roomNumbers(rooms), start.Format(time.DateOnly), end.Format(time.DateOnly)))

	return res, nil
}

// Confirm moves a PENDING reservation to CONFIRMED and re-checks its rooms for overlaps.
func (s *Service) Confirm(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin confirm reservation: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.LockReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	if res.Status != StatusPending {
		return nil, apperr.New(apperr.InvalidTransition, "cannot confirm a %s reservation", res.Status)
	}

	if _, err := room.LockInOrder(ctx, tx, res.RoomIDs()); err != nil {
		return nil, err
	}

	conflicts, err := tx.ConflictingRooms(ctx, res.RoomIDs(), res.CheckIn, res.CheckOut, res.ID)
	if err != nil {
		return nil, err
	}

	if len(conflicts) > 0 {
		return nil, apperr.Unavailable(conflicts...)
	}

	if err := tx.UpdateReservationStatus(ctx, id, StatusConfirmed, true); err != nil {
		return nil, err
	}

	if err := s.refresh(ctx, tx, res.RoomIDs()); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit confirm reservation: %w", err)
	}

	res.Status = StatusConfirmed
	s.record(ctx, res.ID, "confirm", "reservation "+res.ID.String()+" confirmed")

	return res, nil
}

// Cancel releases the rooms of a PENDING or CONFIRMED reservation that has not been checked in.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin cancel reservation: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.LockReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	if res.Status == StatusCancelled {
		return nil, apperr.New(apperr.InvalidTransition, "reservation is already cancelled")
	}

	checkedIn, err := tx.HasStays(ctx, id)
	if err != nil {
		return nil, err
	}

	if checkedIn {
		return nil, apperr.New(apperr.InvalidTransition, "reservation has been checked in")
	}

	if _, err := room.LockInOrder(ctx, tx, res.RoomIDs()); err != nil {
		return nil, err
	}

	// A holding reservation that overlaps another holder means the no-double-booking invariant was
	// already broken. A non-holding PENDING reservation may overlap holders freely.
	if s.cfg.HoldPolicy.Holds(res.Status) {
		conflicts, err := tx.ConflictingRooms(ctx, res.RoomIDs(), res.CheckIn, res.CheckOut, res.ID)
		if err != nil {
			return nil, err
		}

		if len(conflicts) > 0 {
			return nil, &apperr.Error{
				Kind:    apperr.InconsistentState,
				Message: "rooms held by another reservation or stay for the same dates",
				RoomIDs: conflicts,
			}
		}
	}

	if err := tx.UpdateReservationStatus(ctx, id, StatusCancelled, false); err != nil {
		return nil, err
	}

	if err := s.release(ctx, tx, res.RoomIDs()); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit cancel reservation: %w", err)
	}

	res.Status = StatusCancelled
	s.record(ctx, res.ID, "cancel", "reservation "+res.ID.String()+" cancelled")

	return res, nil
}

// Delete soft-deletes a reservation that has not been checked in and releases its rooms.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete reservation: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.LockReservation(ctx, id)
	if err != nil {
		return err
	}

	checkedIn, err := tx.HasStays(ctx, id)
	if err != nil {
		return err
	}

	if checkedIn {
		return apperr.New(apperr.InvalidTransition, "reservation has been checked in")
	}

	if _, err := room.LockInOrder(ctx, tx, res.RoomIDs()); err != nil {
		return err
	}

	if err := tx.DeleteReservation(ctx, id); err != nil {
		return err
	}

	if err := s.release(ctx, tx, res.RoomIDs()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete reservation: %w", err)
	}

	s.record(ctx, res.ID, "delete", "reservation "+res.ID.String()+" deleted")

	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	return s.repo.GetReservation(ctx, id)
}

func (s *Service) refresh(ctx context.Context, tx Tx, ids []uuid.UUID) error {
	today := s.cal.Today()

	for _, id := range room.SortedIDs(ids) {
		if _, err := room.Refresh(ctx, tx, id, today); err != nil {
			return err
		}
	}

	return nil
}

func (s *Service) release(ctx context.Context, tx Tx, ids []uuid.UUID) error {
	today := s.cal.Today()

	for _, id := range room.SortedIDs(ids) {
		if _, err := room.FreeIfUnreferenced(ctx, tx, id, today); err != nil {
			return err
		}
	}

	return nil
}

func (s *Service) record(ctx context.Context, id uuid.UUID, action, description string) {
	s.audit.Record(ctx, audit.Event{
		Entity:      audit.EntityReservation,
		EntityID:    id,
		Action:      action,
		Description: description,
		At:          s.cal.Now(),
	})
}

func roomNumbers(rooms []*room.Room) string {
	nums := make([]string, len(rooms))
	for i, r := range rooms {
		nums[i] = r.Number
	}

	return strings.Join(nums, ", ")
}
