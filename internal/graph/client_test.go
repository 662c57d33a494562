package graph

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noopSleep is a sleep function that returns immediately, for fast tests.
func noopSleep(_ context.Context, _ time.Duration) error {
	return nil
}

// staticToken is a test TokenSource that returns a fixed token.
type staticToken string

func (t staticToken) Token() (string, error) {
	return string(t), nil
}

// failingToken is a test TokenSource that always returns an error.
type failingToken struct{}

func (failingToken) Token() (string, error) {
	return "", errors.New("token error")
}

// newTestClient creates a Client pointing at the given httptest server
// with instant retry sleeps for fast tests.
func newTestClient(t *testing.T, url string) *Client {
	t.Helper()

	c := NewClient(url, http.DefaultClient, staticToken("test-token"), slog.Default())
	c.sleepFunc = noopSleep

	return c
}

func TestDo_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"value":"ok"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	resp, err := client.Do(context.Background(), http.MethodGet, "/test", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDo_ErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"bad request", http.StatusBadRequest, ErrBadRequest},
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"forbidden", http.StatusForbidden, ErrForbidden},
		{"not found", http.StatusNotFound, ErrNotFound},
		{"conflict", http.StatusConflict, ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("request-id", "req-123")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"error":{"code":"testError"}}`))
			}))
			defer srv.Close()

			client := newTestClient(t, srv.URL)

			_, err := client.Do(context.Background(), http.MethodGet, "/test", nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var graphErr *GraphError
			require.ErrorAs(t, err, &graphErr)
			assert.Equal(t, tt.status, graphErr.StatusCode)
			assert.Equal(t, "req-123", graphErr.RequestID)
		})
	}
}

func TestDo_RetriesThrottled(t *testing.T) {
	var calls int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)

			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	resp, err := client.Do(context.Background(), http.MethodGet, "/throttled", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 2, calls)
}

func TestDo_NoRetryOnConflict(t *testing.T) {
	var calls int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":{"code":"nameAlreadyExists"}}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	_, err := client.Do(context.Background(), http.MethodPost, "/children", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, 1, calls)
}

func TestDo_RetryReplaysBody(t *testing.T) {
	// A retried request must carry the complete body again, not the
	// leftovers of a consumed reader.
	var bodies []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		bodies = append(bodies, string(body))

		if len(bodies) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)

			return
		}

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": "folder-1"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	payload := []byte(`{"name": "Reports", "folder": {}}`)

	resp, err := client.Do(context.Background(), http.MethodPost, "/children", payload)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Len(t, bodies, 2)
	assert.Equal(t, string(payload), bodies[0])
	assert.Equal(t, string(payload), bodies[1])
}

func TestDo_TokenError(t *testing.T) {
	client := NewClient("http://localhost", http.DefaultClient, failingToken{}, slog.Default())
	client.sleepFunc = noopSleep

	_, err := client.Do(context.Background(), http.MethodGet, "/test", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token error")
}

func TestRetryBackoff_RetryAfterHeader(t *testing.T) {
	client := newTestClient(t, "http://localhost")

	resp := &http.Response{
		StatusCode: http.StatusTooManyRequests,
		Header:     http.Header{"Retry-After": []string{"7"}},
	}

	assert.Equal(t, 7*time.Second, client.retryBackoff(resp, 0))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, isRetryable(http.StatusTooManyRequests))
	assert.True(t, isRetryable(http.StatusServiceUnavailable))
	assert.True(t, isRetryable(509))
	assert.False(t, isRetryable(http.StatusNotFound))
	assert.False(t, isRetryable(http.StatusConflict))
}
