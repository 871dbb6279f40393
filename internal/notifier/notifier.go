package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// Event names sent to the webhook endpoint.
const (
	EventRequestCreated  = "borrow.request_created"
	EventRequestApproved = "borrow.request_approved"
	EventRequestRejected = "borrow.request_rejected"
	EventBooksHandedOut  = "borrow.handed_out"
	EventBooksReturned   = "borrow.returned"
	EventFineCreated     = "fine.created"
)

// Event is the webhook payload. Payload carries event-specific fields
// such as the request id, card id or fine amount.
type Event struct {
	Name       string         `json:"event"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// Notifier posts circulation events to a configured webhook. Delivery is
// best effort: failures are logged and never surfaced to the caller.
type Notifier struct {
	webhookURL string
	client     *retryablehttp.Client
	log        *slog.Logger
}

// New returns a notifier posting to webhookURL. An empty URL disables
// delivery entirely.
func New(webhookURL string, log *slog.Logger) *Notifier {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.RetryWaitMin = 500 * time.Millisecond
	client.RetryWaitMax = 5 * time.Second
	client.HTTPClient.Timeout = 10 * time.Second
	client.Logger = nil

	return &Notifier{
		webhookURL: normalizeURL(webhookURL),
		client:     client,
		log:        log,
	}
}

// Notify sends the event in the background. It returns immediately.
func (n *Notifier) Notify(event Event) {
	if n == nil || n.webhookURL == "" {
		return
	}

	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := n.send(ctx, event); err != nil {
			n.log.Error("webhook delivery failed", "event", event.Name, "error", err)
		}
	}()
}

func (n *Notifier) send(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	return nil
}

func normalizeURL(url string) string {
	if url == "" {
		return ""
	}

	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "http://" + url
	}

	return strings.TrimRight(url, "/")
}
