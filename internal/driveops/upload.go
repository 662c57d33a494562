package driveops

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spupload/spupload/internal/graph"
)

// uploadChunkSize is the byte length of non-final chunks: 11 × 320 KiB
// (3,604,480 bytes, just under 3.5 MiB). Graph requires chunk sizes to be
// multiples of graph.ChunkAlignment.
const uploadChunkSize = 11 * graph.ChunkAlignment

// ProgressFunc is called after each transferred chunk with cumulative bytes.
type ProgressFunc func(uploaded, total int64)

// UploadFile uploads content under the given parent folder, choosing the
// strategy by size: below graph.SimpleUploadMaxSize a single PUT, otherwise
// a resumable upload session transferred in sequential chunks. A file of
// exactly the boundary size takes the chunked path.
//
// Both strategies request replace-on-conflict, so concurrent writers to the
// same destination name race last-writer-wins. Chunk failures abort the
// session; no resumption is attempted.
func (s *Session) UploadFile(
	ctx context.Context, driveID, parentID, name string,
	r io.Reader, size int64, progress ProgressFunc,
) (*graph.Item, error) {
	if size < graph.SimpleUploadMaxSize {
		item, err := s.Transfer.SimpleUpload(ctx, driveID, parentID, name, r, size)
		if err != nil {
			return nil, err
		}

		if progress != nil {
			progress(size, size)
		}

		return item, nil
	}

	return s.uploadChunked(ctx, driveID, parentID, name, r, size, progress)
}

// uploadChunked uploads a large file through a resumable upload session,
// sending chunks strictly in order, each addressed by its byte-range offset.
// The final chunk's response carries the finished item.
func (s *Session) uploadChunked(
	ctx context.Context, driveID, parentID, name string,
	r io.Reader, size int64, progress ProgressFunc,
) (*graph.Item, error) {
	session, err := s.Transfer.CreateUploadSession(ctx, driveID, parentID, name, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSessionCreate, err)
	}

	if session.UploadURL == "" {
		return nil, fmt.Errorf("%w: no upload URL in session response", ErrSessionCreate)
	}

	s.logger.Info("chunked upload started",
		slog.String("name", name),
		slog.Int64("size", size),
		slog.Int64("chunk_size", s.chunkSize),
	)

	var offset int64

	for offset < size {
		length := s.chunkSize
		if remaining := size - offset; remaining < length {
			length = remaining
		}

		item, err := s.Transfer.UploadChunk(ctx, session, io.LimitReader(r, length), offset, length, size)
		if err != nil {
			return nil, fmt.Errorf("%w: chunk at offset %d: %w", ErrChunkTransfer, offset, err)
		}

		offset += length

		if progress != nil {
			progress(offset, size)
		}

		if item != nil {
			return item, nil // final chunk: upload complete
		}
	}

	return nil, fmt.Errorf("%w: session for %s completed without final item response", ErrChunkTransfer, name)
}
