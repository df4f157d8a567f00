package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rondasapi/internal/config"
)

func TestNew_DisabledWithoutURL(t *testing.T) {
	n := New(config.WhatsAppConfig{})
	assert.ErrorIs(t, n.Send(context.Background(), Message{Text: "x"}), ErrDisabled)

	_, ok := New(config.WhatsAppConfig{APIURL: "http://gw", TimeoutSec: 1}).(*Webhook)
	assert.True(t, ok)
}

func TestWebhook_Send(t *testing.T) {
	var got webhookPayload
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	w := NewWebhook(srv.URL, "tok", "5511999990000", time.Second)
	err := w.Send(context.Background(), Message{Text: "relatório"})

	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", auth)
	assert.Equal(t, webhookPayload{Number: "5511999990000", Text: "relatório"}, got)
}

func TestWebhook_SendErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	w := NewWebhook(srv.URL, "", "5511", time.Second)
	err := w.Send(context.Background(), Message{Text: "x"})
	assert.ErrorContains(t, err, "gateway returned 429: quota exceeded")

	noDest := NewWebhook(srv.URL, "", "", time.Second)
	assert.ErrorContains(t, noDest.Send(context.Background(), Message{Text: "x"}), "no destination")
}
