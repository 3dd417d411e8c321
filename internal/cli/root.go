package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// This is typically called by the main package during initialization with
// values injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the congregate CLI and returns an error if any command fails.
//
// The function sets up the root command with all subcommands (serve, init,
// user), configures logging based on the --verbose flag, and executes the
// command tree under ctx so signal cancellation reaches the server.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "congregate",
		Short:        "Congregate runs a congregation's site and shared calendar",
		Long:         `Congregate serves a small congregation web site: announcement posts, a shared month calendar with per-auxiliary events, and an iCalendar feed, backed by a single SQLite file.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("congregate %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the TOML config file")

	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newInitCmd(&configPath))
	root.AddCommand(newUserCmd(&configPath))

	return root.ExecuteContext(ctx)
}
