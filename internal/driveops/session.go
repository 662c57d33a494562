package driveops

import (
	"log/slog"

	"github.com/spupload/spupload/internal/graph"
)

// Session bundles the authenticated clients used by one upload run.
// Meta carries a request timeout for metadata operations; Transfer has no
// timeout because large chunk uploads legitimately take minutes.
type Session struct {
	Meta     *graph.Client
	Transfer *graph.Client
	logger   *slog.Logger

	// chunkSize is the byte length of non-final upload chunks. Defaults to
	// uploadChunkSize; tests override it to exercise the chunk loop with
	// small payloads.
	chunkSize int64
}

// NewSession creates a Session from the two Graph clients.
func NewSession(meta, transfer *graph.Client, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}

	return &Session{
		Meta:      meta,
		Transfer:  transfer,
		logger:    logger,
		chunkSize: uploadChunkSize,
	}
}
