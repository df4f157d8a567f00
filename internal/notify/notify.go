// Package notify delivers shift reports to the operations WhatsApp number.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"rondasapi/internal/config"
)

// ErrDisabled means no gateway is configured; callers still produce the report.
var ErrDisabled = errors.New("whatsapp delivery disabled")

// Message is one outbound text.
type Message struct {
	To   string
	Text string
}

// Notifier sends messages.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// New returns a webhook notifier, or a disabled one when no URL is configured.
func New(cfg config.WhatsAppConfig) Notifier {
	if cfg.APIURL == "" {
		return Disabled{}
	}
	return NewWebhook(cfg.APIURL, cfg.APIToken, cfg.Destino, time.Duration(cfg.TimeoutSec)*time.Second)
}

// Disabled always fails with ErrDisabled.
type Disabled struct{}

func (Disabled) Send(context.Context, Message) error { return ErrDisabled }

// Webhook posts {"number","text"} to an HTTP gateway.
type Webhook struct {
	url     string
	token   string
	destino string
	client  *http.Client
}

// NewWebhook builds a traced client. destino is used when a message has no To.
func NewWebhook(url, token, destino string, timeout time.Duration) *Webhook {
	return &Webhook{
		url:     url,
		token:   token,
		destino: destino,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type webhookPayload struct {
	Number string `json:"number"`
	Text   string `json:"text"`
}

func (w *Webhook) Send(ctx context.Context, msg Message) error {
	to := msg.To
	if to == "" {
		to = w.destino
	}
	if to == "" {
		return fmt.Errorf("whatsapp: no destination number")
	}

	body, err := json.Marshal(webhookPayload{Number: to, Text: msg.Text})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("whatsapp: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if w.token != "" {
		req.Header.Set("Authorization", "Bearer "+w.token)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp: send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("whatsapp: gateway returned %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
