package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wrestling-stats/internal/config"
)

func newTestClient(url string) *WebhookClient {
	return NewWebhookClient(&config.Config{RevalidateWebhookURL: url})
}

func TestWebhookClient_Enabled(t *testing.T) {
	assert.False(t, newTestClient("").Enabled())
	assert.True(t, newTestClient("http://localhost:3000/api/revalidate").Enabled())
}

func TestWebhookClient_Notify(t *testing.T) {
	var (
		gotMethod      string
		gotContentType string
		got            RevalidationEvent
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"revalidated": true, "now": 1700000000}`))
	}))
	defer srv.Close()

	event := RevalidationEvent{
		ID:     "V1StGXR8_Z5jdHi6B-myT",
		Table:  "matches",
		Record: json.RawMessage(`{"slug":"m1"}`),
		Tags:   []string{"matches", "match:m1"},
		SentAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	resp, err := newTestClient(srv.URL).Notify(context.Background(), event)
	require.NoError(t, err)
	assert.True(t, resp.Revalidated)
	assert.Equal(t, int64(1700000000), resp.Now)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, event.ID, got.ID)
	assert.Equal(t, event.Tags, got.Tags)
	assert.JSONEq(t, `{"slug":"m1"}`, string(got.Record))
	assert.True(t, event.SentAt.Equal(got.SentAt))
}

func TestWebhookClient_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	resp, err := newTestClient(srv.URL).Notify(context.Background(), RevalidationEvent{ID: "x", Table: "shows"})
	require.NoError(t, err)
	assert.False(t, resp.Revalidated)
}

func TestWebhookClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid token", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Notify(context.Background(), RevalidationEvent{ID: "x", Table: "shows"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestWebhookClient_Deadline(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newTestClient(srv.URL).Notify(ctx, RevalidationEvent{ID: "x", Table: "shows"})
	require.Error(t, err)
}
