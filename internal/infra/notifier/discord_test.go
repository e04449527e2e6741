package notifier

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiscordTestNotifier(url string) *DiscordNotifier {
	return NewDiscordNotifier(DiscordConfig{
		Enabled:    true,
		WebhookURL: url,
		Timeout:    5 * time.Second,
	})
}

func TestDiscordNotifier_SendDigest(t *testing.T) {
	var payload DiscordWebhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &payload))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := newDiscordTestNotifier(srv.URL).SendDigest(context.Background(), sampleDigest())
	require.NoError(t, err)

	require.Len(t, payload.Embeds, 1)
	embed := payload.Embeds[0]
	assert.Equal(t, "TechPulse digest: 3 articles", embed.Title)
	assert.Contains(t, embed.Description, "New AI breakthrough")
	assert.Contains(t, embed.Description, "https://b.example/2")
	assert.Contains(t, embed.Footer.Text, "2/3 feeds ok")
	assert.Equal(t, discordBlueColor, embed.Color)
	assert.Equal(t, "2026-08-24T09:30:00Z", embed.Timestamp)
}

func TestDiscordNotifier_ClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	err := newDiscordTestNotifier(srv.URL).SendDigest(context.Background(), sampleDigest())
	require.Error(t, err)
	var clientErr *ClientError
	assert.ErrorAs(t, err, &clientErr)
	assert.Equal(t, http.StatusUnauthorized, clientErr.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDiscordNotifier_RateLimitRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"message": "rate limited", "retry_after": 0.01}`))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := newDiscordTestNotifier(srv.URL).SendDigest(context.Background(), sampleDigest())
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestExtractRetryAfter(t *testing.T) {
	t.Run("from json body", func(t *testing.T) {
		resp := &http.Response{Header: http.Header{}}
		got := extractRetryAfter(resp, []byte(`{"retry_after": 2.5}`))
		assert.Equal(t, 2500*time.Millisecond, got)
	})

	t.Run("from header", func(t *testing.T) {
		resp := &http.Response{Header: http.Header{"Retry-After": []string{"3"}}}
		got := extractRetryAfter(resp, []byte("not json"))
		assert.Equal(t, 3*time.Second, got)
	})

	t.Run("default", func(t *testing.T) {
		resp := &http.Response{Header: http.Header{}}
		got := extractRetryAfter(resp, nil)
		assert.Equal(t, 5*time.Second, got)
	})
}

func TestIsRetryableError(t *testing.T) {
	assert.True(t, isRetryableError(&ServerError{StatusCode: 502}))
	assert.False(t, isRetryableError(&ClientError{StatusCode: 400}))
	assert.False(t, isRetryableError(&RateLimitError{RetryAfter: time.Second}))
	assert.True(t, isRetryableError(assert.AnError))
}
