// Package usecase contains application use cases.
package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/runoshun/taskgraph/internal/domain"
)

// BuildGraphInput contains the parameters for building a task graph.
type BuildGraphInput struct {
	Overrides map[string]domain.Action // Actions replacing cmd, keyed by document id (consumed)
	Source    string                   // Path of the document, or "-" for stdin
	Format    string                   // Document format; empty uses config, then the file extension
	RootKey   string                   // Root key; empty uses config
}

// BuildGraphOutput contains the resolved task graph.
type BuildGraphOutput struct {
	Tasks           []*domain.Task  // Resolved tasks in document order
	Roots           []domain.TaskID // Ids of tasks without precursors
	UnusedOverrides []string        // Override keys that matched no entry, sorted
	Source          string
	RootKey         string
}

// BuildGraph is the use case for turning a task document into a resolved graph.
type BuildGraph struct {
	source       domain.DocumentSource
	decoder      domain.DocumentDecoder
	builder      *domain.GraphBuilder
	configLoader domain.ConfigLoader
	logger       domain.Logger
}

// NewBuildGraph creates a new BuildGraph use case.
func NewBuildGraph(
	source domain.DocumentSource,
	decoder domain.DocumentDecoder,
	builder *domain.GraphBuilder,
	configLoader domain.ConfigLoader,
	logger domain.Logger,
) *BuildGraph {
	return &BuildGraph{
		source:       source,
		decoder:      decoder,
		builder:      builder,
		configLoader: configLoader,
		logger:       logger,
	}
}

// Execute loads, decodes and resolves the document. It returns either the
// complete graph or an error; never a partial task set.
func (uc *BuildGraph) Execute(_ context.Context, in BuildGraphInput) (*BuildGraphOutput, error) {
	format, rootKey := in.Format, in.RootKey
	if uc.configLoader != nil && (format == "" || rootKey == "") {
		cfg, err := uc.configLoader.Load()
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		if format == "" {
			format = cfg.Document.Format
		}
		if rootKey == "" {
			rootKey = cfg.Document.RootKey
		}
	}
	if rootKey == "" {
		rootKey = domain.DefaultRootKey
	}

	text, err := uc.source.Load(in.Source)
	if err != nil {
		uc.logError(err)
		return nil, err
	}

	doc, err := uc.decoder.Decode(in.Source, text, format, rootKey)
	if err != nil {
		uc.logError(err)
		return nil, err
	}
	uc.log(func(l domain.Logger) {
		l.Info(0, "build", fmt.Sprintf("decoded %s: %d entries under %q", in.Source, doc.Len(), rootKey))
	})

	tasks, err := uc.builder.Build(doc, in.Overrides)
	if err != nil {
		uc.logError(err)
		return nil, err
	}

	out := &BuildGraphOutput{
		Tasks:   tasks,
		Source:  in.Source,
		RootKey: rootKey,
	}
	for _, t := range tasks {
		if t.IsRoot() {
			out.Roots = append(out.Roots, t.ID())
		}
		uc.log(func(l domain.Logger) {
			l.Info(t.ID(), "graph", fmt.Sprintf("resolved %q (%s) from %s after [%s]",
				t.Name(), t.DocumentID(), in.Source, joinIDs(t.Precursors())))
		})
	}

	for key := range in.Overrides {
		out.UnusedOverrides = append(out.UnusedOverrides, key)
	}
	sort.Strings(out.UnusedOverrides)
	if len(out.UnusedOverrides) > 0 {
		uc.log(func(l domain.Logger) {
			l.Warn(0, "build", fmt.Sprintf("overrides matched no task: %s", strings.Join(out.UnusedOverrides, ", ")))
		})
	}

	uc.log(func(l domain.Logger) {
		l.Info(0, "build", fmt.Sprintf("built %d tasks (%d roots)", len(out.Tasks), len(out.Roots)))
	})
	return out, nil
}

func (uc *BuildGraph) log(fn func(domain.Logger)) {
	if uc.logger != nil {
		fn(uc.logger)
	}
}

func (uc *BuildGraph) logError(err error) {
	uc.log(func(l domain.Logger) {
		l.Error(0, "build", err.Error())
	})
}

func joinIDs(ids []domain.TaskID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ", ")
}
