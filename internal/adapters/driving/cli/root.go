// Package cli implements the command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/tapestry-io/tapestry/internal/core/ports/driving"
	"github.com/tapestry-io/tapestry/internal/logger"
)

// version is set via Execute from the main package.
var version = "dev"

// Services injected by the composition root. Commands guard against nil so
// the package stays testable without a full wiring.
var (
	sourceService     driving.SourceManager
	syncService       driving.SyncRunner
	connectorRegistry driving.ConnectorRegistry
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "tapestry",
	Short: "Pull entities from external data sources",
	Long: `Tapestry connects to external systems (Redmine, GitLab) and pulls
their projects, issues, comments and wiki pages as a typed entity stream.

Configure a source once, then sync it whenever you need fresh data.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Config carries the services the CLI commands depend on.
type Config struct {
	SourceService     driving.SourceManager
	SyncService       driving.SyncRunner
	ConnectorRegistry driving.ConnectorRegistry
}

// SetServices injects the service implementations used by the commands.
func SetServices(cfg Config) {
	sourceService = cfg.SourceService
	syncService = cfg.SyncService
	connectorRegistry = cfg.ConnectorRegistry
}

// Execute runs the root command.
func Execute(v string) error {
	if v != "" {
		version = v
	}
	return rootCmd.Execute()
}
