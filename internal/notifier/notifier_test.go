package notifier

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_Notify(t *testing.T) {
	received := make(chan Event, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var event Event
		require.NoError(t, json.NewDecoder(r.Body).Decode(&event))
		received <- event

		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := New(srv.URL, slog.Default())
	n.Notify(Event{
		Name:    EventFineCreated,
		Payload: map[string]any{"amount": 75000},
	})

	select {
	case event := <-received:
		assert.Equal(t, EventFineCreated, event.Name)
		assert.False(t, event.OccurredAt.IsZero())
		assert.EqualValues(t, 75000, event.Payload["amount"])
	case <-time.After(5 * time.Second):
		t.Fatal("webhook was not called")
	}
}

func TestNotifier_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	done := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
		close(done)
	}))
	defer srv.Close()

	n := New(srv.URL, slog.Default())
	n.Notify(Event{Name: EventBooksReturned})

	select {
	case <-done:
		assert.GreaterOrEqual(t, calls.Load(), int32(2))
	case <-time.After(10 * time.Second):
		t.Fatal("delivery was not retried")
	}
}

func TestNotifier_DisabledWithoutURL(t *testing.T) {
	n := New("", slog.Default())

	// Must be a no-op, not a panic.
	n.Notify(Event{Name: EventRequestCreated})
}
