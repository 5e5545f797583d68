// Package notify is the outbound messaging boundary. Lifecycle services hand messages to a
// Sender after commit and never depend on the delivery outcome.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type Channel string

const (
	ChannelWebhook Channel = "webhook"
	ChannelLog     Channel = "log"
)

// Status is the outcome reported by a Notifier.
type Status string

const (
	StatusDelivered Status = "delivered"
	StatusQueued    Status = "queued"
	StatusFailed    Status = "failed"
)

type Message struct {
	Channel   Channel `json:"channel"`
	Recipient string  `json:"recipient"`
	Subject   string  `json:"subject"`
	Content   string  `json:"content"`
}

// Notifier delivers a message over one channel.
type Notifier interface {
	Notify(ctx context.Context, msg Message) (Status, error)
	Channel() Channel
}

// Sender is what the lifecycle services depend on.
type Sender interface {
	Send(ctx context.Context, msg Message)
}

type discard struct{}

func (discard) Send(context.Context, Message) {}

// Discard drops every message.
var Discard Sender = discard{}

// Observer is told about every delivery attempt.
type Observer interface {
	ObserveNotification(msg Message, status Status)
}

const notifyTimeout = 10 * time.Second

// Dispatcher queues messages and delivers them from a background worker.
type Dispatcher struct {
	notifier  Notifier
	observers []Observer
	logger    *slog.Logger

	mu       sync.RWMutex
	closed   bool
	messages chan Message
	done     chan struct{}
}

func NewDispatcher(notifier Notifier, logger *slog.Logger, buffer int, observers ...Observer) *Dispatcher {
	if buffer <= 0 {
		buffer = 64
	}

	d := &Dispatcher{
		notifier:  notifier,
		observers: observers,
		logger:    logger,
		messages:  make(chan Message, buffer),
		done:      make(chan struct{}),
	}

	go d.run()

	return d
}

// Send queues msg without blocking. Messages without a channel go out on the notifier's.
func (d *Dispatcher) Send(_ context.Context, msg Message) {
	if msg.Channel == "" {
		msg.Channel = d.notifier.Channel()
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return
	}

	select {
	case d.messages <- msg:
	default:
		d.logger.Warn("notification buffer full, dropping message",
			"channel", msg.Channel, "recipient", msg.Recipient, "subject", msg.Subject)
		d.observe(msg, StatusFailed)
	}
}

// Close stops accepting messages and waits for queued ones.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}

	d.closed = true
	close(d.messages)
	d.mu.Unlock()

	<-d.done
}

func (d *Dispatcher) run() {
	defer close(d.done)

	for msg := range d.messages {
		d.deliver(msg)
	}
}

func (d *Dispatcher) deliver(msg Message) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	status, err := d.notifier.Notify(ctx, msg)
	if err != nil {
		status = StatusFailed
		d.logger.Error("notification failed",
			"channel", msg.Channel, "recipient", msg.Recipient, "subject", msg.Subject, "error", err)
	}

	d.observe(msg, status)
}

func (d *Dispatcher) observe(msg Message, status Status) {
	for _, o := range d.observers {
		o.ObserveNotification(msg, status)
	}
}

// LogNotifier writes messages to the log instead of sending them.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Channel() Channel { return ChannelLog }

func (n *LogNotifier) Notify(ctx context.Context, msg Message) (Status, error) {
	n.logger.InfoContext(ctx, "notification",
		"channel", msg.Channel,
		"recipient", msg.Recipient,
		"subject", msg.Subject,
		"content", msg.Content,
	)

	return StatusDelivered, nil
}
