package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// version is set at build time via ldflags.
var version = "dev"

// Flags, bound in newRootCmd().
var (
	flagConfigPath string
	flagVerbose    bool
	flagQuiet      bool
)

// defaultConfigPath is used when --config is not given.
const defaultConfigPath = "spupload.json"

// metaHTTPTimeout bounds metadata requests. Transfer requests get no timeout
// because large chunk uploads legitimately take minutes.
const metaHTTPTimeout = 30 * time.Second

func newMetaHTTPClient() *http.Client {
	return &http.Client{Timeout: metaHTTPTimeout}
}

func newTransferHTTPClient() *http.Client {
	return &http.Client{}
}

// newRootCmd builds the root command. The tool has exactly one operation, so
// the upload runs directly on the root command with one positional argument.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "spupload <file>",
		Short:   "Upload a file to a SharePoint Online document library",
		Long: "spupload uploads a single local file to a folder in a SharePoint Online\n" +
			"document library, authenticating as an Azure AD application and creating\n" +
			"intermediate folders as needed.",
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		// Silence cobra's default error/usage printing — we handle it ourselves.
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          runUpload,
	}

	cmd.Flags().StringVar(&flagConfigPath, "config", defaultConfigPath, "config file path")
	cmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	cmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress informational output")

	return cmd
}

// buildLogger creates an slog.Logger configured by the CLI flags.
func buildLogger() *slog.Logger {
	level := slog.LevelWarn

	if flagVerbose {
		level = slog.LevelDebug
	}

	if flagQuiet {
		level = slog.LevelError
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// exitOnError prints a user-friendly error message to stderr and exits.
func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
