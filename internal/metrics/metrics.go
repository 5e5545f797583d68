package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MrJamesThe3rd/innkeeper/internal/audit"
	"github.com/MrJamesThe3rd/innkeeper/internal/notify"
)

// Metrics counts committed lifecycle events and notification outcomes.
// It is fed as an audit sink and a notification observer, so services never touch it directly.
type Metrics struct {
	LifecycleEvents *prometheus.CounterVec
	Notifications   *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		LifecycleEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "innkeeper",
			Name:      "lifecycle_events_total",
			Help:      "Committed lifecycle transitions by entity and action",
		}, []string{"entity", "action"}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "innkeeper",
			Name:      "notifications_total",
			Help:      "Notification delivery attempts by channel and outcome",
		}, []string{"channel", "status"}),
	}

	reg.MustRegister(m.LifecycleEvents, m.Notifications)

	return m
}

// Record implements audit.Sink.
func (m *Metrics) Record(_ context.Context, e audit.Event) error {
	m.LifecycleEvents.WithLabelValues(string(e.Entity), e.Action).Inc()
	return nil
}

// ObserveNotification implements notify.Observer.
func (m *Metrics) ObserveNotification(msg notify.Message, status notify.Status) {
	m.Notifications.WithLabelValues(string(msg.Channel), string(status)).Inc()
}
