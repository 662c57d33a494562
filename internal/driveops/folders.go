package driveops

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/spupload/spupload/internal/graph"
)

// SplitFolderPath splits a slash-separated folder path into NFC-normalized
// segments, discarding empty segments. NFC matters because SharePoint stores
// names in NFC while macOS file systems hand out NFD — without normalization
// the same folder name can miss on lookup and then collide on create.
func SplitFolderPath(folderPath string) []string {
	parts := strings.Split(folderPath, "/")

	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}

		segments = append(segments, norm.NFC.String(p))
	}

	return segments
}

// EnsureFolderPath walks the folder path from the drive root, creating every
// segment that does not yet exist, and returns the item ID of the deepest
// folder. onCreated (nil-safe) is invoked once per folder actually created,
// in order.
//
// Creation uses strict "fail on conflict" semantics so a path segment never
// silently merges into an unrelated existing resource. A 409 conflict from
// the create call means another writer won a race to create the same name;
// the segment is then looked up again and its handle adopted. If that second
// lookup also fails, the original creation error is propagated. Any other
// creation failure is fatal.
func (s *Session) EnsureFolderPath(
	ctx context.Context, driveID, folderPath string, onCreated func(name string),
) (string, error) {
	parentID := "root"

	for _, segment := range SplitFolderPath(folderPath) {
		item, err := s.Meta.GetChildByName(ctx, driveID, parentID, segment)
		if err == nil {
			parentID = item.ID

			continue
		}

		if !errors.Is(err, graph.ErrNotFound) {
			return "", err
		}

		created, createErr := s.Meta.CreateFolder(ctx, driveID, parentID, segment)
		if createErr == nil {
			s.logger.Info("created folder",
				slog.String("name", segment),
				slog.String("item_id", created.ID),
			)

			if onCreated != nil {
				onCreated(segment)
			}

			parentID = created.ID

			continue
		}

		if !errors.Is(createErr, graph.ErrConflict) {
			return "", fmt.Errorf("%w: %q: %w", ErrFolderCreate, segment, createErr)
		}

		// Lost a creation race — adopt the concurrently created folder.
		existing, lookupErr := s.Meta.GetChildByName(ctx, driveID, parentID, segment)
		if lookupErr != nil {
			return "", fmt.Errorf("%w: %q: %w", ErrFolderCreate, segment, createErr)
		}

		s.logger.Debug("folder already existed after create conflict, adopting",
			slog.String("name", segment),
			slog.String("item_id", existing.ID),
		)

		parentID = existing.ID
	}

	return parentID, nil
}
