package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/runoshun/taskgraph/internal/app"
	"github.com/runoshun/taskgraph/internal/domain"
	"github.com/runoshun/taskgraph/internal/usecase"
	"github.com/spf13/cobra"
)

// buildOptions holds options for the build command.
type buildOptions struct {
	Format    string
	RootKey   string
	Overrides []string
	JSON      bool
	Verbose   bool
}

// newBuildCommand creates the build command.
func newBuildCommand(c *app.Container) *cobra.Command {
	var opts buildOptions

	cmd := &cobra.Command{
		Use:   "build <file>",
		Short: "Resolve a task document into a task graph",
		Long: `Resolve a task document into a task graph.

Every entry under the root key becomes a task with a unique numeric id.
The "after" lists are resolved to precursor ids. Any invalid entry or
unknown reference fails the whole build; no partial graph is printed.

Use "-" as file to read the document from stdin.

Examples:
  # Build from a YAML file
  taskgraph build tasks.yaml

  # Build from an HCL file with a custom root key
  taskgraph build pipeline.hcl --root-key pipeline

  # Replace the command of task "deploy"
  taskgraph build tasks.yaml --override deploy='echo skipped'

  # Output in JSON format
  cat tasks.yaml | taskgraph build - --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides, err := parseOverrides(c, opts.Overrides)
			if err != nil {
				return err
			}

			if opts.Verbose {
				if mirrored, ok := c.TaskLogger.(interface{ SetMirror(io.Writer) }); ok {
					mirrored.SetMirror(cmd.ErrOrStderr())
				}
			}

			uc := c.BuildGraphUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.BuildGraphInput{
				Source:    args[0],
				Format:    opts.Format,
				RootKey:   opts.RootKey,
				Overrides: overrides,
			})
			if err != nil {
				return err
			}

			if opts.JSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(toJSONGraph(out))
			}

			printGraph(cmd.OutOrStdout(), out, DefaultStyles())
			for _, key := range out.UnusedOverrides {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: override %q matched no task\n", key)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", "", "Document format (yaml, hcl); default picks by file extension")
	cmd.Flags().StringVar(&opts.RootKey, "root-key", "", "Key the tasks live under (default from config, else \"dagrs\")")
	cmd.Flags().StringArrayVar(&opts.Overrides, "override", nil, "Replace a task command as id=command (can specify multiple)")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output in JSON format")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Mirror log entries to stderr")

	return cmd
}

// parseOverrides turns id=command pairs into command actions keyed by document id.
func parseOverrides(c *app.Container, pairs []string) (map[string]domain.Action, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	overrides := make(map[string]domain.Action, len(pairs))
	for _, pair := range pairs {
		id, command, ok := strings.Cut(pair, "=")
		id = strings.TrimSpace(id)
		if !ok || id == "" {
			return nil, fmt.Errorf("invalid override %q: expected id=command", pair)
		}
		if _, dup := overrides[id]; dup {
			return nil, fmt.Errorf("override for %q given more than once", id)
		}
		overrides[id] = c.CommandAction(command)
	}
	return overrides, nil
}

type jsonTask struct {
	Command    *string         `json:"command"`
	DocumentID string          `json:"document_id"`
	Name       string          `json:"name"`
	Precursors []domain.TaskID `json:"precursors"`
	ID         domain.TaskID   `json:"id"`
}

type jsonGraph struct {
	Source          string          `json:"source"`
	RootKey         string          `json:"root_key"`
	Tasks           []jsonTask      `json:"tasks"`
	Roots           []domain.TaskID `json:"roots"`
	UnusedOverrides []string        `json:"unused_overrides"`
}

func toJSONGraph(out *usecase.BuildGraphOutput) jsonGraph {
	g := jsonGraph{
		Source:          out.Source,
		RootKey:         out.RootKey,
		Tasks:           make([]jsonTask, len(out.Tasks)),
		Roots:           out.Roots,
		UnusedOverrides: out.UnusedOverrides,
	}
	if g.Roots == nil {
		g.Roots = []domain.TaskID{}
	}
	if g.UnusedOverrides == nil {
		g.UnusedOverrides = []string{}
	}
	for i, t := range out.Tasks {
		jt := jsonTask{
			ID:         t.ID(),
			DocumentID: t.DocumentID(),
			Name:       t.Name(),
			Precursors: t.Precursors(),
		}
		if jt.Precursors == nil {
			jt.Precursors = []domain.TaskID{}
		}
		// Custom actions have no command text and encode as null.
		if ca, ok := t.Action().(*domain.CommandAction); ok {
			command := ca.Command()
			jt.Command = &command
		}
		g.Tasks[i] = jt
	}
	return g
}

// printGraph prints the resolved graph in a human-readable form.
func printGraph(w io.Writer, out *usecase.BuildGraphOutput, styles Styles) {
	source := out.Source
	if source == "-" {
		source = "stdin"
	}
	_, _ = fmt.Fprintln(w, styles.Header.Render(fmt.Sprintf("%s [%s]", source, out.RootKey)))

	for _, t := range out.Tasks {
		var action string
		if ca, ok := t.Action().(*domain.CommandAction); ok {
			action = styles.Command.Render("$ " + ca.Command())
		} else {
			action = styles.Custom.Render("(custom action)")
		}

		var deps string
		if t.IsRoot() {
			deps = styles.Root.Render("root")
		} else {
			ids := make([]string, 0, len(t.Precursors()))
			for _, id := range t.Precursors() {
				ids = append(ids, "#"+id.String())
			}
			deps = styles.After.Render("after " + strings.Join(ids, ", "))
		}

		_, _ = fmt.Fprintf(w, "%s%s %s  %s  %s\n",
			styles.TaskID.Render("#"+t.ID().String()),
			styles.TaskName.Render(t.Name()),
			styles.DocID.Render("("+t.DocumentID()+")"),
			deps,
			action,
		)
	}

	_, _ = fmt.Fprintln(w, styles.Summary.Render(
		fmt.Sprintf("%d tasks, %d roots", len(out.Tasks), len(out.Roots))))
}
