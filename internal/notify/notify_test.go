package notify_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/innkeeper/internal/notify"
)

type statusRecorder struct {
	mu       sync.Mutex
	statuses []notify.Status
	channels []notify.Channel
}

func (r *statusRecorder) ObserveNotification(msg notify.Message, status notify.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.statuses = append(r.statuses, status)
	r.channels = append(r.channels, msg.Channel)
}

type failingNotifier struct{}

func (failingNotifier) Channel() notify.Channel { return notify.ChannelWebhook }

func (failingNotifier) Notify(context.Context, notify.Message) (notify.Status, error) {
	return notify.StatusFailed, errors.New("smtp unreachable")
}

func TestWebhookNotifier_Delivered(t *testing.T) {
	var got notify.Message

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	n := notify.NewWebhookNotifier(ts.URL, time.Second)

	msg := notify.Message{Channel: notify.ChannelWebhook, Recipient: "guest-1", Subject: "Invoice issued", Content: "HPL-2025-00001"}
	status, err := n.Notify(context.Background(), msg)

	require.NoError(t, err)
	assert.Equal(t, notify.StatusDelivered, status)
	assert.Equal(t, msg, got)
}

func TestWebhookNotifier_Queued(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer ts.Close()

	status, err := notify.NewWebhookNotifier(ts.URL, time.Second).Notify(context.Background(), notify.Message{})

	require.NoError(t, err)
	assert.Equal(t, notify.StatusQueued, status)
}

func TestWebhookNotifier_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	var calls atomic.Int32

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	n := notify.NewWebhookNotifier(ts.URL, time.Second)

	for range 3 {
		status, err := n.Notify(context.Background(), notify.Message{})
		require.Error(t, err)
		assert.Equal(t, notify.StatusFailed, status)
	}

	status, err := n.Notify(context.Background(), notify.Message{})
	require.Error(t, err)
	assert.Equal(t, notify.StatusFailed, status)
	assert.Contains(t, err.Error(), "circuit open")
	assert.Equal(t, int32(3), calls.Load())
}

func TestDispatcher_FailureIsObservedNotPropagated(t *testing.T) {
	rec := &statusRecorder{}

	d := notify.NewDispatcher(failingNotifier{}, slog.New(slog.DiscardHandler), 4, rec)
	d.Send(context.Background(), notify.Message{Subject: "Stay started"})
	d.Close()

	assert.Equal(t, []notify.Status{notify.StatusFailed}, rec.statuses)
}

func TestDispatcher_LogNotifier(t *testing.T) {
	rec := &statusRecorder{}
	logger := slog.New(slog.DiscardHandler)

	d := notify.NewDispatcher(notify.NewLogNotifier(logger), logger, 4, rec)
	d.Send(context.Background(), notify.Message{Subject: "Invoice issued"})
	d.Send(context.Background(), notify.Message{Subject: "Stay finished"})
	d.Close()

	assert.Equal(t, []notify.Status{notify.StatusDelivered, notify.StatusDelivered}, rec.statuses)
	assert.Equal(t, []notify.Channel{notify.ChannelLog, notify.ChannelLog}, rec.channels)
}
