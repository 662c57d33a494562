package driveops

import (
	"log/slog"
	"net/http"
	"testing"

	"github.com/spupload/spupload/internal/graph"
)

// staticToken is a test TokenSource returning a fixed token.
type staticToken string

func (t staticToken) Token() (string, error) {
	return string(t), nil
}

// newTestSession creates a Session whose clients point at the given fake
// Graph server. Fake handlers must not return retryable statuses (429/5xx)
// unless the test means to exercise client retries with real backoff.
func newTestSession(t *testing.T, url string) *Session {
	t.Helper()

	meta := graph.NewClient(url, http.DefaultClient, staticToken("test-token"), slog.Default())
	transfer := graph.NewClient(url, http.DefaultClient, staticToken("test-token"), slog.Default())

	return NewSession(meta, transfer, slog.Default())
}
