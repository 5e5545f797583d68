package metrics_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/innkeeper/internal/audit"
	"github.com/MrJamesThe3rd/innkeeper/internal/metrics"
	"github.com/MrJamesThe3rd/innkeeper/internal/notify"
)

func TestMetrics_CountsEventsAndNotifications(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	require.NoError(t, m.Record(context.Background(), audit.Event{Entity: audit.EntityInvoice, Action: "issue"}))
	require.NoError(t, m.Record(context.Background(), audit.Event{Entity: audit.EntityInvoice, Action: "issue"}))
	m.ObserveNotification(notify.Message{Channel: notify.ChannelWebhook}, notify.StatusFailed)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.LifecycleEvents.WithLabelValues("invoice", "issue")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("webhook", "failed")))
}
