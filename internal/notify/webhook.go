package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// WebhookNotifier posts messages as JSON to a single endpoint. Repeated failures open a
// circuit breaker so a dead endpoint is not hammered.
type WebhookNotifier struct {
	url    string
	client *http.Client
	cb     *gobreaker.CircuitBreaker
}

func NewWebhookNotifier(url string, timeout time.Duration) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: timeout},
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "notify-webhook",
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 3 && failureRatio >= 0.5
			},
		}),
	}
}

func (n *WebhookNotifier) Channel() Channel { return ChannelWebhook }

func (n *WebhookNotifier) Notify(ctx context.Context, msg Message) (Status, error) {
	result, err := n.cb.Execute(func() (any, error) {
		return n.post(ctx, msg)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return StatusFailed, fmt.Errorf("webhook circuit open: %w", err)
		}

		return StatusFailed, err
	}

	return result.(Status), nil
}

func (n *WebhookNotifier) post(ctx context.Context, msg Message) (Status, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return StatusFailed, fmt.Errorf("encoding message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return StatusFailed, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return StatusFailed, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusAccepted:
		return StatusQueued, nil
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return StatusDelivered, nil
	default:
		return StatusFailed, fmt.Errorf("unexpected status code %d from %s", resp.StatusCode, n.url)
	}
}
