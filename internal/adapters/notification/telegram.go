// Package notification delivers fire-and-forget text messages to an external
// chat channel. Delivery runs on a background worker so callers never block
// and never observe delivery failures.
package notification

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	portssvc "github.com/pageturn/library_backend/internal/core/ports/services"
)

// DefaultTelegramAPIBaseURL is the production Telegram Bot API endpoint.
const DefaultTelegramAPIBaseURL = "https://api.telegram.org"

// queueSize bounds the number of undelivered messages held in memory.
// When the queue is full new messages are dropped, not blocked on.
const queueSize = 64

// TelegramConfig holds the credentials for the Telegram Bot API.
type TelegramConfig struct {
	APIBaseURL string
	BotToken   string
	ChatID     string
}

// TelegramNotifier implements portssvc.NotifierSvc against the Telegram
// sendMessage API. When constructed without credentials it degrades to a
// logged no-op, the same way the analytics client wrapper does.
type TelegramNotifier struct {
	cfg        TelegramConfig
	httpClient *http.Client
	logger     *slog.Logger
	queue      chan string
	done       chan struct{}
}

// Ensure TelegramNotifier implements portssvc.NotifierSvc
var _ portssvc.NotifierSvc = (*TelegramNotifier)(nil)

// NewTelegramNotifier creates the notifier and starts its delivery worker.
func NewTelegramNotifier(cfg TelegramConfig, logger *slog.Logger) *TelegramNotifier {
	if cfg.BotToken == "" || cfg.ChatID == "" {
		logger.Warn("Telegram credentials not set, notifications disabled.")
		return &TelegramNotifier{logger: logger}
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultTelegramAPIBaseURL
	}

	n := &TelegramNotifier{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
		queue:      make(chan string, queueSize),
		done:       make(chan struct{}),
	}
	go n.run()
	return n
}

// IsEnabled reports whether the notifier was constructed with credentials.
func (n *TelegramNotifier) IsEnabled() bool {
	return n.queue != nil
}

// Notify queues a message for asynchronous delivery. It never blocks: when the
// queue is full the message is dropped and logged.
func (n *TelegramNotifier) Notify(ctx context.Context, text string) {
	if n.queue == nil {
		return
	}
	select {
	case n.queue <- text:
	default:
		n.logger.Warn("Notification queue full, dropping message")
	}
}

// Close stops accepting messages and waits for the worker to drain the queue.
func (n *TelegramNotifier) Close() {
	if n.queue == nil {
		return
	}
	close(n.queue)
	<-n.done
}

func (n *TelegramNotifier) run() {
	defer close(n.done)
	for text := range n.queue {
		n.send(text)
	}
}

func (n *TelegramNotifier) send(text string) {
	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.cfg.APIBaseURL, n.cfg.BotToken)
	resp, err := n.httpClient.PostForm(endpoint, url.Values{
		"chat_id": {n.cfg.ChatID},
		"text":    {text},
	})
	if err != nil {
		n.logger.Error("Failed to deliver notification", slog.String("error", err.Error()))
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		n.logger.Warn("Notification delivery rejected", slog.Int("status", resp.StatusCode))
	}
}
