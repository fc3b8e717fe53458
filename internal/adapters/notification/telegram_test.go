package notification_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/pageturn/library_backend/internal/adapters/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTelegramNotifier_DeliversMessage(t *testing.T) {
	type delivery struct {
		path   string
		chatID string
		text   string
	}

	var mu sync.Mutex
	var deliveries []delivery

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		mu.Lock()
		deliveries = append(deliveries, delivery{
			path:   r.URL.Path,
			chatID: r.PostFormValue("chat_id"),
			text:   r.PostFormValue("text"),
		})
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := notification.NewTelegramNotifier(notification.TelegramConfig{
		APIBaseURL: server.URL,
		BotToken:   "test-token",
		ChatID:     "42",
	}, testLogger())

	require.True(t, notifier.IsEnabled())

	notifier.Notify(context.Background(), "A new borrowing has been created on 2026-08-31.\nExpected return date is 2026-09-14.")
	notifier.Close()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, deliveries, 1)
	assert.Equal(t, "/bottest-token/sendMessage", deliveries[0].path)
	assert.Equal(t, "42", deliveries[0].chatID)
	assert.Contains(t, deliveries[0].text, "A new borrowing has been created")
}

func TestTelegramNotifier_DrainsQueueOnClose(t *testing.T) {
	var mu sync.Mutex
	count := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		count++
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := notification.NewTelegramNotifier(notification.TelegramConfig{
		APIBaseURL: server.URL,
		BotToken:   "test-token",
		ChatID:     "42",
	}, testLogger())

	for i := 0; i < 10; i++ {
		notifier.Notify(context.Background(), "message")
	}
	notifier.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 10, count)
}

func TestTelegramNotifier_DisabledWithoutCredentials(t *testing.T) {
	notifier := notification.NewTelegramNotifier(notification.TelegramConfig{}, testLogger())

	assert.False(t, notifier.IsEnabled())

	// Both must be safe no-ops.
	notifier.Notify(context.Background(), "dropped")
	notifier.Close()
}

func TestTelegramNotifier_DeliveryFailureDoesNotPropagate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	notifier := notification.NewTelegramNotifier(notification.TelegramConfig{
		APIBaseURL: server.URL,
		BotToken:   "test-token",
		ChatID:     "42",
	}, testLogger())

	notifier.Notify(context.Background(), "message")
	notifier.Close()
}
