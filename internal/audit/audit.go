// Package audit forwards lifecycle events to fire-and-forget sinks.
//
// Events are dispatched after the business transaction commits. A failing or slow sink is
// logged and never reaches the caller of the business operation.
package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entity names the kind of record an event is about.
type Entity string

const (
	EntityRoom        Entity = "room"
	EntityRoomType    Entity = "room_type"
	EntityReservation Entity = "reservation"
	EntityStay        Entity = "stay"
	EntityProduct     Entity = "product"
	EntityInvoice     Entity = "invoice"
)

// Event describes one committed lifecycle transition.
type Event struct {
	Entity      Entity
	EntityID    uuid.UUID
	Action      string
	Description string
	At          time.Time
}

// Sink receives events. Implementations may fail; failures are only logged.
type Sink interface {
	Record(ctx context.Context, e Event) error
}

// Recorder is what the lifecycle services depend on.
type Recorder interface {
	Record(ctx context.Context, e Event)
}

type discard struct{}

func (discard) Record(context.Context, Event) {}

// Discard drops every event.
var Discard Recorder = discard{}

const sinkTimeout = 5 * time.Second

// Dispatcher queues events and delivers them to its sinks from a background worker.
// Delivery is at-most-once: a full buffer drops the event.
type Dispatcher struct {
	sinks  []Sink
	logger *slog.Logger

	mu     sync.RWMutex
	closed bool
	events chan Event
	done   chan struct{}
}

func NewDispatcher(logger *slog.Logger, buffer int, sinks ...Sink) *Dispatcher {
	if buffer <= 0 {
		buffer = 256
	}

	d := &Dispatcher{
		sinks:  sinks,
		logger: logger,
		events: make(chan Event, buffer),
		done:   make(chan struct{}),
	}

	go d.run()

	return d
}

func (d *Dispatcher) Record(_ context.Context, e Event) {
	if e.At.IsZero() {
		e.At = time.Now()
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return
	}

	select {
	case d.events <- e:
	default:
		d.logger.Warn("audit buffer full, dropping event",
			"entity", e.Entity, "entity_id", e.EntityID, "action", e.Action)
	}
}

// Close stops accepting events and waits for queued ones to be delivered.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}

	d.closed = true
	close(d.events)
	d.mu.Unlock()

	<-d.done
}

func (d *Dispatcher) run() {
	defer close(d.done)

	for e := range d.events {
		for _, s := range d.sinks {
			d.deliver(s, e)
		}
	}
}

func (d *Dispatcher) deliver(s Sink, e Event) {
	ctx, cancel := context.WithTimeout(context.Background(), sinkTimeout)
	defer cancel()

	if err := s.Record(ctx, e); err != nil {
		d.logger.Error("audit sink failed",
			"entity", e.Entity, "entity_id", e.EntityID, "action", e.Action, "error", err)
	}
}

// LogSink writes events to a structured logger.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Record(ctx context.Context, e Event) error {
	s.logger.InfoContext(ctx, "audit",
		"entity", e.Entity,
		"entity_id", e.EntityID,
		"action", e.Action,
		"description", e.Description,
		"at", e.At,
	)

	return nil
}
