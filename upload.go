package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/spupload/spupload/internal/config"
	"github.com/spupload/spupload/internal/driveops"
	"github.com/spupload/spupload/internal/graph"
)

// errMissingFile is returned when no positional argument is given.
var errMissingFile = errors.New("missing file argument")

// runUpload is the root RunE: load config, build authenticated clients, and
// drive the upload pipeline for the single positional file argument.
func runUpload(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		// Usage goes to stdout; the error still produces exit code 1.
		cmd.SetOut(os.Stdout)
		_ = cmd.Help()

		return errMissingFile
	}

	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		return err
	}

	logger := buildLogger()
	ctx := cmd.Context()

	if ctx == nil {
		ctx = context.Background()
	}

	ts := graph.ClientCredentialsTokenSource(ctx, graph.AppCredentials{
		TenantID:     cfg.TenantID,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
	}, logger)

	meta := graph.NewClient(graph.DefaultBaseURL, newMetaHTTPClient(), ts, logger)
	transfer := graph.NewClient(graph.DefaultBaseURL, newTransferHTTPClient(), ts, logger)

	session := driveops.NewSession(meta, transfer, logger)
	reporter := newConsoleReporter(flagQuiet)
	orch := driveops.NewOrchestrator(session, reporter, logger)

	result, err := orch.Run(ctx, cfg, args[0])
	if err != nil {
		return fmt.Errorf("uploading %s: %w", result.Name, err)
	}

	return nil
}

// consoleReporter prints progress events to the terminal. Per-chunk progress
// lines only appear on an interactive terminal — in pipes and CI logs they
// would just be noise.
type consoleReporter struct {
	quiet bool
	tty   bool
}

func newConsoleReporter(quiet bool) *consoleReporter {
	return &consoleReporter{
		quiet: quiet,
		tty:   isatty.IsTerminal(os.Stderr.Fd()),
	}
}

func (r *consoleReporter) FolderCreated(name string) {
	statusf(r.quiet, "Created folder %s\n", name)
}

func (r *consoleReporter) Progress(uploaded, total int64) {
	if !r.tty || r.quiet {
		return
	}

	fmt.Fprintf(os.Stderr, "\rUploading... %s / %s", formatSize(uploaded), formatSize(total))

	if uploaded == total {
		fmt.Fprint(os.Stderr, "\n")
	}
}

func (r *consoleReporter) Uploaded(name string, size int64) {
	if !r.quiet {
		fmt.Printf("Uploaded %s (%s)\n", name, formatSize(size))
	}
}
