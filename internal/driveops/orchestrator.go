package driveops

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spupload/spupload/internal/config"
)

// Reporter receives user-facing progress events. Console output lives in the
// CLI; the pipeline only emits events.
type Reporter interface {
	FolderCreated(name string)
	Progress(uploaded, total int64)
	Uploaded(name string, size int64)
}

// UploadResult is the terminal value of one upload run.
type UploadResult struct {
	Name      string
	Size      int64
	Succeeded bool
}

// Orchestrator sequences one upload: resolve site, resolve library drive,
// ensure the folder path, upload the file. The first failing stage aborts
// the rest; nothing is retried across stages.
type Orchestrator struct {
	session  *Session
	reporter Reporter
	logger   *slog.Logger
}

// NewOrchestrator creates an Orchestrator. reporter may be nil when no
// user-facing output is wanted.
func NewOrchestrator(session *Session, reporter Reporter, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}

	return &Orchestrator{
		session:  session,
		reporter: reporter,
		logger:   logger,
	}
}

// Run uploads localPath into the configured library and folder path.
// All remote handles are resolved fresh; nothing persists across runs.
// On failure the returned UploadResult still carries the file name and size
// when they are known.
func (o *Orchestrator) Run(ctx context.Context, cfg *config.Config, localPath string) (UploadResult, error) {
	result := UploadResult{Name: filepath.Base(localPath)}

	info, err := os.Stat(localPath)
	if err != nil {
		return result, fmt.Errorf("%w: %w", ErrLocalFile, err)
	}

	if info.IsDir() {
		return result, fmt.Errorf("%w: %s is a directory", ErrLocalFile, localPath)
	}

	result.Size = info.Size()

	f, err := os.Open(localPath)
	if err != nil {
		return result, fmt.Errorf("%w: %w", ErrLocalFile, err)
	}
	defer f.Close()

	ref, err := ParseSiteURL(cfg.SiteURL)
	if err != nil {
		return result, err
	}

	site, err := o.session.ResolveSite(ctx, ref)
	if err != nil {
		return result, o.failStage(err, "resolving site", slog.String("site_url", cfg.SiteURL))
	}

	drive, err := o.session.ResolveDrive(ctx, site.ID, cfg.LibraryName)
	if err != nil {
		return result, o.failStage(err, "resolving library", slog.String("library", cfg.LibraryName))
	}

	folderID, err := o.session.EnsureFolderPath(ctx, drive.ID, cfg.FolderPath, o.folderCreated)
	if err != nil {
		return result, o.failStage(err, "ensuring folder path", slog.String("folder_path", cfg.FolderPath))
	}

	item, err := o.session.UploadFile(ctx, drive.ID, folderID, result.Name, f, result.Size, o.progress)
	if err != nil {
		return result, o.failStage(err, "uploading file", slog.String("name", result.Name))
	}

	o.logger.Info("upload complete",
		slog.String("name", result.Name),
		slog.Int64("size", result.Size),
		slog.String("item_id", item.ID),
	)

	if o.reporter != nil {
		o.reporter.Uploaded(result.Name, result.Size)
	}

	result.Succeeded = true

	return result, nil
}

// failStage logs a stage failure and returns the error unchanged.
func (o *Orchestrator) failStage(err error, stage string, attrs ...any) error {
	args := append([]any{slog.String("error", err.Error())}, attrs...)
	o.logger.Error(stage+" failed", args...)

	return err
}

func (o *Orchestrator) folderCreated(name string) {
	if o.reporter != nil {
		o.reporter.FolderCreated(name)
	}
}

func (o *Orchestrator) progress(uploaded, total int64) {
	if o.reporter != nil {
		o.reporter.Progress(uploaded, total)
	}
}
