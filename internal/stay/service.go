package stay

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/innkeeper/internal/audit"
	"github.com/MrJamesThe3rd/innkeeper/internal/calendar"
	"github.com/MrJamesThe3rd/innkeeper/internal/notify"
	"github.com/MrJamesThe3rd/innkeeper/internal/pkg/apperr"
	"github.com/MrJamesThe3rd/innkeeper/internal/reservation"
	"github.com/MrJamesThe3rd/innkeeper/internal/room"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=stay
type Repository interface {
	GetStay(ctx context.Context, id uuid.UUID) (*Stay, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*Product, error)
	ListProducts(ctx context.Context) ([]*Product, error)
	CreateProduct(ctx context.Context, p *Product) error

	Begin(ctx context.Context) (Tx, error)
}

// ConsumeTx is the part of a transaction that records extras. The invoicing engine shares it.
type ConsumeTx interface {
	// ConsumeStock decrements an active product's stock iff it holds at least quantity units.
	ConsumeStock(ctx context.Context, productID uuid.UUID, quantity int) (*Product, error)
	CreateConsumption(ctx context.Context, c *Consumption) error
}

type Tx interface {
	room.StatusTx
	ConsumeTx
	LockReservation(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	HasStays(ctx context.Context, reservationID uuid.UUID) (bool, error)
	ConflictingRooms(ctx context.Context, roomIDs []uuid.UUID, start, end time.Time, exclude uuid.UUID) ([]uuid.UUID, error)
	CreateStay(ctx context.Context, s *Stay) error
	// LockStay loads a non-deleted stay with its consumptions and holds it until the transaction ends.
	LockStay(ctx context.Context, id uuid.UUID) (*Stay, error)
	UpdateStay(ctx context.Context, s *Stay) error
	DeleteStay(ctx context.Context, id uuid.UUID) error
	HasInvoice(ctx context.Context, stayID uuid.UUID) (bool, error)
	Commit() error
	Rollback() error
}

type Service struct {
	repo   Repository
	cal    *calendar.Calendar
	audit  audit.Recorder
	notify notify.Sender
}

func NewService(repo Repository, cal *calendar.Calendar, rec audit.Recorder, sender notify.Sender) *Service {
	return &Service{repo: repo, cal: cal, audit: rec, notify: sender}
}

type WalkInParams struct {
	GuestID  uuid.UUID
	RoomID   uuid.UUID
	CheckIn  time.Time
	CheckOut time.Time
}

type ProductParams struct {
	Name      string
	UnitPrice decimal.Decimal
	Stock     int
}

// CheckIn opens one ACTIVE stay per room of a CONFIRMED reservation.
func (s *Service) CheckIn(ctx context.Context, reservationID uuid.UUID) ([]*Stay, error) {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin check-in: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.LockReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if res.Status != reservation.StatusConfirmed {
		return nil, apperr.New(apperr.InvalidTransition, "cannot check in a %s reservation", res.Status)
	}

	checkedIn, err := tx.HasStays(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if checkedIn {
		return nil, apperr.New(apperr.InvalidTransition, "reservation is already checked in")
	}

	if _, err := room.LockInOrder(ctx, tx, res.RoomIDs()); err != nil {
		return nil, err
	}

	today := s.cal.Today()
	stays := make([]*Stay, 0, len(res.Allocations))

	for _, roomID := range room.SortedIDs(res.RoomIDs()) {
		if _, err := room.Occupy(ctx, tx, roomID, today); err != nil {
			return nil, err
		}

		st := &Stay{
			GuestID:       res.GuestID,
			RoomID:        roomID,
			ReservationID: &res.ID,
			CheckIn:       res.CheckIn,
			CheckOut:      res.CheckOut,
			Status:        StatusActive,
		}
		if err := tx.CreateStay(ctx, st); err != nil {
			return nil, err
		}

		stays = append(stays, st)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit check-in: %w", err)
	}

	for _, st := range stays {
		s.started(ctx, st)
	}

	return stays, nil
}

// WalkIn opens an ACTIVE stay starting today without a reservation.
func (s *Service) WalkIn(ctx context.Context, params WalkInParams) (*Stay, error) {
	today := s.cal.Today()

	start, end := today, s.cal.Date(params.CheckOut)
	if !params.CheckIn.IsZero() {
		start = s.cal.Date(params.CheckIn)
	}

	if err := calendar.ValidateRange(start, end); err != nil {
		return nil, err
	}

	if !start.Equal(today) {
		return nil, apperr.New(apperr.InvalidRange, "a walk-in starts today, not %s", start.Format(time.DateOnly))
	}

	if params.GuestID == uuid.Nil {
		return nil, apperr.New(apperr.InvalidArgument, "guest is required")
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin walk-in: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.LockRoom(ctx, params.RoomID); err != nil {
		return nil, err
	}

	conflicts, err := tx.ConflictingRooms(ctx, []uuid.UUID{params.RoomID}, start, end, uuid.Nil)
	if err != nil {
		return nil, err
	}

	if len(conflicts) > 0 {
		return nil, apperr.Unavailable(conflicts...)
	}

	if _, err := room.Occupy(ctx, tx, params.RoomID, today); err != nil {
		return nil, err
	}

	st := &Stay{
		GuestID:  params.GuestID,
		RoomID:   params.RoomID,
		CheckIn:  start,
		CheckOut: end,
		Status:   StatusActive,
	}
	if err := tx.CreateStay(ctx, st); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit walk-in: %w", err)
	}

	s.started(ctx, st)

	return st, nil
}

// AddConsumption records an extra against an ACTIVE stay and takes it out of stock.
func (s *Service) AddConsumption(ctx context.Context, stayID uuid.UUID, line Line) (*Consumption, error) {
	if err := ValidateLine(line); err != nil {
		return nil, err
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin add consumption: %w", err)
	}
	defer tx.Rollback()

	st, err := tx.LockStay(ctx, stayID)
	if err != nil {
		return nil, err
	}

	if st.Status != StatusActive {
		return nil, apperr.New(apperr.InvalidTransition, "cannot add consumption to a %s stay", st.Status)
	}

	c, err := Consume(ctx, tx, stayID, line, s.cal.Now())
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit add consumption: %w", err)
	}

	s.record(ctx, audit.EntityStay, stayID, "consume",
		fmt.Sprintf("%d x %s at %s", c.Quantity, c.ProductName, c.UnitPrice.StringFixed(2)))

	return c, nil
}

// CheckOut finishes an ACTIVE stay and sends its room to CLEANING.
func (s *Service) CheckOut(ctx context.Context, id uuid.UUID) (*Stay, error) {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin check-out: %w", err)
	}
	defer tx.Rollback()

	st, err := tx.LockStay(ctx, id)
	if err != nil {
		return nil, err
	}

	if st.Status != StatusActive {
		return nil, apperr.New(apperr.InvalidTransition, "cannot check out a %s stay", st.Status)
	}

	now := s.cal.Now()
	st.Status = StatusFinished
	st.CheckedOutAt = &now

	if err := tx.UpdateStay(ctx, st); err != nil {
		return nil, err
	}

	if _, err := room.Vacate(ctx, tx, st.RoomID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit check-out: %w", err)
	}

	s.record(ctx, audit.EntityStay, st.ID, "check_out", "stay "+st.ID.String()+" finished")
	s.notify.Send(ctx, notify.Message{
		Recipient: st.GuestID.String(),
		Subject:   "Stay finished",
		Content:   fmt.Sprintf("Checked out at %s. Extras: %s.", now.Format(time.RFC3339), st.ExtrasTotal().StringFixed(2)),
	})

	return st, nil
}

// Delete soft-deletes a stay that has not been invoiced. An ACTIVE stay releases its room.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete stay: %w", err)
	}
	defer tx.Rollback()

	st, err := tx.LockStay(ctx, id)
	if err != nil {
		return err
	}

	invoiced, err := tx.HasInvoice(ctx, id)
	if err != nil {
		return err
	}

	if invoiced {
		return apperr.New(apperr.HasInvoice, "stay %s has been invoiced", id)
	}

	if st.Status == StatusActive {
		st.Status = StatusCancelled
		if err := tx.UpdateStay(ctx, st); err != nil {
			return err
		}
	}

	if err := tx.DeleteStay(ctx, id); err != nil {
		return err
	}

	if _, err := room.FreeIfUnreferenced(ctx, tx, st.RoomID, s.cal.Today()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete stay: %w", err)
	}

	s.record(ctx, audit.EntityStay, st.ID, "delete", "stay "+st.ID.String()+" deleted")

	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Stay, error) {
	return s.repo.GetStay(ctx, id)
}

func (s *Service) CreateProduct(ctx context.Context, params ProductParams) (*Product, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, apperr.New(apperr.InvalidArgument, "product name is required")
	}

	if params.UnitPrice.IsNegative() || params.Stock < 0 {
		return nil, apperr.New(apperr.InvalidArgument, "price and stock must not be negative")
	}

	p := &Product{
		Name:      name,
		UnitPrice: params.UnitPrice,
		Stock:     params.Stock,
		Active:    true,
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}

	s.record(ctx, audit.EntityProduct, p.ID, "create", "product "+p.Name+" created")

	return p, nil
}

func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context) ([]*Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *Service) started(ctx context.Context, st *Stay) {
	s.record(ctx, audit.EntityStay, st.ID, "check_in",
		fmt.Sprintf("stay %s started in room %s", st.ID, st.RoomID))
	s.notify.Send(ctx, notify.Message{
		Recipient: st.GuestID.String(),
		Subject:   "Stay started",
		Content: fmt.Sprintf("Welcome! Your stay runs from %s to %s.",
			st.CheckIn.Format(time.DateOnly), st.CheckOut.Format(time.DateOnly)),
	})
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

func ValidateLine(line Line) error {
	if line.Quantity <= 0 {
		return apperr.New(apperr.InvalidArgument, "quantity must be positive")
	}

	if line.UnitPrice != nil && line.UnitPrice.IsNegative() {
		return apperr.New(apperr.InvalidArgument, "unit price must not be negative")
	}

	return nil
}

// Consume takes line.Quantity units out of stock and records the consumption in the same transaction.
func Consume(ctx context.Context, tx ConsumeTx, stayID uuid.UUID, line Line, at time.Time) (*Consumption, error) {
	p, err := tx.ConsumeStock(ctx, line.ProductID, line.Quantity)
	if err != nil {
		return nil, err
	}

	price := p.UnitPrice
	if line.UnitPrice != nil {
		price = *line.UnitPrice
	}

	c := &Consumption{
		StayID:      stayID,
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    line.Quantity,
		UnitPrice:   price,
		Total:       price.Mul(decimal.NewFromInt(int64(line.Quantity))),
		ConsumedAt:  at,
	}
	if err := tx.CreateConsumption(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}
