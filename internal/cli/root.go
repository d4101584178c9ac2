// Package cli provides the command-line interface for taskgraph.
package cli

import (
	"github.com/runoshun/taskgraph/internal/app"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command for taskgraph.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "taskgraph",
		Short: "Build task graphs from declarative documents",
		Long: `taskgraph turns a document of named tasks and their dependencies into
a resolved task graph: every task gets a unique numeric id and its "after"
references are replaced by the ids of its precursors.

Documents are YAML or HCL. Tasks live under a root key (default "dagrs").`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil || c.AppConfig == nil {
				return nil
			}
			for _, w := range c.AppConfig.Warnings {
				c.Logger.Warn("config", "warning", w)
			}
			return nil
		},
	}

	root.AddCommand(
		newBuildCommand(c),
		newConfigCommand(c),
		newLogsCommand(c),
	)

	return root
}
