package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/runoshun/taskgraph/internal/app"
	"github.com/runoshun/taskgraph/internal/domain"
	"github.com/runoshun/taskgraph/internal/usecase"
	"github.com/spf13/cobra"
)

// newLogsCommand creates the logs command.
func newLogsCommand(c *app.Container) *cobra.Command {
	var lines int
	var lastRun bool

	cmd := &cobra.Command{
		Use:   "logs [task-id]",
		Short: "Show build logs",
		Long: `Show the log written by previous builds.

Without an argument the global log is shown. With a task id the log of
that task is shown. Requires [log] dir to be set in the configuration.

Task ids restart at 1 in every run, so each run starts its section of a
log file with a "===== run" separator line. --last-run keeps only the
most recent section.

Examples:
  # Show the global log
  taskgraph logs

  # Show the last 20 lines of task 3
  taskgraph logs 3 -n 20

  # Show what the latest build logged for task 1
  taskgraph logs 1 --last-run`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var taskID domain.TaskID
			if len(args) > 0 {
				id, err := parseTaskID(args[0])
				if err != nil {
					return fmt.Errorf("invalid task ID: %w", err)
				}
				taskID = id
			}

			uc := c.ShowLogsUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ShowLogsInput{
				TaskID:  taskID,
				Lines:   lines,
				LastRun: lastRun,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprint(cmd.OutOrStdout(), out.Content)
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 0, "Number of lines to show from the end (0 = all)")
	cmd.Flags().BoolVar(&lastRun, "last-run", false, "Show only the section written by the most recent run")

	return cmd
}

// parseTaskID parses a task ID, allowing a leading "#".
func parseTaskID(s string) (domain.TaskID, error) {
	s = strings.TrimPrefix(s, "#")
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, fmt.Errorf("task ID must be positive")
	}
	return domain.TaskID(id), nil
}
