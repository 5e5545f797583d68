// Package memstore is an in-process backend for every lifecycle repository.
//
// Transactions are serialised: Begin takes the single store lock and snapshots the data,
// Commit releases the lock and Rollback restores the snapshot first. That gives the same
// all-or-nothing and no-lost-update guarantees the PostgreSQL stores get from row locks and
// constraints, which is what the concurrency tests rely on.
package memstore

import (
	"context"
	"errors"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/innkeeper/internal/invoice"
	"github.com/MrJamesThe3rd/innkeeper/internal/reservation"
	"github.com/MrJamesThe3rd/innkeeper/internal/room"
	"github.com/MrJamesThe3rd/innkeeper/internal/stay"
)

var errTxDone = errors.New("memstore: transaction has already been committed or rolled back")

type reservationRow struct {
	res   *reservation.Reservation
	holds bool
}

type seqKey struct {
	prefix string
	year   int
}

type data struct {
	types        map[uuid.UUID]*room.Type
	rooms        map[uuid.UUID]*room.Room
	reservations map[uuid.UUID]*reservationRow
	stays        map[uuid.UUID]*stay.Stay
	consumptions []*stay.Consumption
	products     map[uuid.UUID]*stay.Product
	invoices     map[uuid.UUID]*invoice.Invoice
	payments     []*invoice.Payment
	sequences    map[seqKey]int
}

func newData() *data {
	return &data{
		types:        make(map[uuid.UUID]*room.Type),
		rooms:        make(map[uuid.UUID]*room.Room),
		reservations: make(map[uuid.UUID]*reservationRow),
		stays:        make(map[uuid.UUID]*stay.Stay),
		products:     make(map[uuid.UUID]*stay.Product),
		invoices:     make(map[uuid.UUID]*invoice.Invoice),
		sequences:    make(map[seqKey]int),
	}
}

func (d *data) clone() *data {
	c := &data{
		types:        make(map[uuid.UUID]*room.Type, len(d.types)),
		rooms:        make(map[uuid.UUID]*room.Room, len(d.rooms)),
		reservations: make(map[uuid.UUID]*reservationRow, len(d.reservations)),
		stays:        make(map[uuid.UUID]*stay.Stay, len(d.stays)),
		consumptions: make([]*stay.Consumption, len(d.consumptions)),
		products:     make(map[uuid.UUID]*stay.Product, len(d.products)),
		invoices:     make(map[uuid.UUID]*invoice.Invoice, len(d.invoices)),
		payments:     make([]*invoice.Payment, len(d.payments)),
		sequences:    maps.Clone(d.sequences),
	}

	for id, t := range d.types {
		c.types[id] = cloneType(t)
	}

	for id, r := range d.rooms {
		c.rooms[id] = cloneRoom(r)
	}

	for id, row := range d.reservations {
		c.reservations[id] = &reservationRow{res: cloneReservation(row.res), holds: row.holds}
	}

	for id, s := range d.stays {
		c.stays[id] = cloneStay(s)
	}

	for i, cons := range d.consumptions {
		cp := *cons
		c.consumptions[i] = &cp
	}

	for id, p := range d.products {
		cp := *p
		c.products[id] = &cp
	}

	for id, inv := range d.invoices {
		c.invoices[id] = cloneInvoice(inv)
	}

	for i, p := range d.payments {
		cp := *p
		c.payments[i] = &cp
	}

	return c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}

	return new(*t)
}

func cloneType(t *room.Type) *room.Type {
	cp := *t
	return &cp
}

func cloneRoom(r *room.Room) *room.Room {
	cp := *r
	cp.Type = nil
	cp.UpdatedAt = cloneTime(r.UpdatedAt)
	cp.DeletedAt = cloneTime(r.DeletedAt)

	return &cp
}

func cloneReservation(r *reservation.Reservation) *reservation.Reservation {
	cp := *r
	cp.UpdatedAt = cloneTime(r.UpdatedAt)
	cp.DeletedAt = cloneTime(r.DeletedAt)
	cp.Allocations = make([]*reservation.Allocation, len(r.Allocations))

	for i, a := range r.Allocations {
		ac := *a
		ac.CoOccupantIDs = slices.Clone(a.CoOccupantIDs)
		cp.Allocations[i] = &ac
	}

	return &cp
}

func cloneStay(s *stay.Stay) *stay.Stay {
	cp := *s
	cp.Consumptions = nil
	cp.CheckedOutAt = cloneTime(s.CheckedOutAt)
	cp.UpdatedAt = cloneTime(s.UpdatedAt)
	cp.DeletedAt = cloneTime(s.DeletedAt)

	if s.ReservationID != nil {
		cp.ReservationID = new(*s.ReservationID)
	}

	return &cp
}

func cloneInvoice(inv *invoice.Invoice) *invoice.Invoice {
	cp := *inv
	cp.Payments = nil
	cp.UpdatedAt = cloneTime(inv.UpdatedAt)
	cp.DeletedAt = cloneTime(inv.DeletedAt)

	return &cp
}

// Store holds all lifecycle data in memory.
type Store struct {
	lock chan struct{}
	data *data
	now  func() time.Time
}

func New() *Store {
	return &Store{
		lock: make(chan struct{}, 1),
		data: newData(),
		now:  time.Now,
	}
}

func (s *Store) acquire(ctx context.Context) error {
	select {
	case s.lock <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) release() {
	<-s.lock
}

// withLock runs fn under the store lock, outside any transaction.
func (s *Store) withLock(ctx context.Context, fn func(d *data) error) error {
	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer s.release()

	return fn(s.data)
}

func (s *Store) begin(ctx context.Context) (*tx, error) {
	if err := s.acquire(ctx); err != nil {
		return nil, err
	}

	return &tx{store: s, d: s.data, snapshot: s.data.clone()}, nil
}

// tx implements room.Tx, reservation.Tx, stay.Tx and invoice.Tx.
type tx struct {
	store    *Store
	d        *data
	snapshot *data
	done     bool
}

func (t *tx) Commit() error {
	if t.done {
		return errTxDone
	}

	t.done = true
	t.store.release()

	return nil
}

func (t *tx) Rollback() error {
	if t.done {
		return errTxDone
	}

	t.done = true
	t.store.data = t.snapshot
	t.store.release()

	return nil
}

// Rooms returns the room.Repository view of the store.
func (s *Store) Rooms() room.Repository { return roomRepo{s} }

// Reservations returns the reservation.Repository view of the store.
func (s *Store) Reservations() reservation.Repository { return reservationRepo{s} }

// Stays returns the stay.Repository view of the store.
func (s *Store) Stays() stay.Repository { return stayRepo{s} }

// Invoices returns the invoice.Repository view of the store.
func (s *Store) Invoices() invoice.Repository { return invoiceRepo{s} }

type roomRepo struct{ *Store }

func (r roomRepo) Begin(ctx context.Context) (room.Tx, error) {
	t, err := r.begin(ctx)
	if err != nil {
		return nil, err
	}

	return t, nil
}

type reservationRepo struct{ *Store }

func (r reservationRepo) Begin(ctx context.Context) (reservation.Tx, error) {
	t, err := r.begin(ctx)
	if err != nil {
		return nil, err
	}

	return t, nil
}

type stayRepo struct{ *Store }

func (r stayRepo) Begin(ctx context.Context) (stay.Tx, error) {
	t, err := r.begin(ctx)
	if err != nil {
		return nil, err
	}

	return t, nil
}

type invoiceRepo struct{ *Store }

func (r invoiceRepo) Begin(ctx context.Context) (invoice.Tx, error) {
	t, err := r.begin(ctx)
	if err != nil {
		return nil, err
	}

	return t, nil
}
