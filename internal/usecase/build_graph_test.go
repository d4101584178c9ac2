package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/runoshun/taskgraph/internal/domain"
	"github.com/runoshun/taskgraph/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoTaskDocument() *domain.Document {
	return &domain.Document{RootKey: domain.DefaultRootKey, Entries: []domain.RawEntry{
		{ID: "A", Fields: map[string]any{"name": "A", "cmd": "echo a"}},
		{ID: "B", Fields: map[string]any{"name": "B", "after": []any{"A"}, "cmd": "echo b"}},
	}}
}

func newBuildGraph(
	source *testutil.MockDocumentSource,
	decoder *testutil.MockDocumentDecoder,
	configLoader domain.ConfigLoader,
	logger domain.Logger,
) *BuildGraph {
	builder := domain.NewGraphBuilder(domain.NewIDAllocator(), testutil.NewMockExecutor(), "")
	return NewBuildGraph(source, decoder, builder, configLoader, logger)
}

func TestBuildGraph_Execute(t *testing.T) {
	// Setup
	source := testutil.NewMockDocumentSource(map[string]string{"tasks.yaml": "text"})
	decoder := &testutil.MockDocumentDecoder{Document: twoTaskDocument()}
	logger := &testutil.MockLogger{}
	uc := newBuildGraph(source, decoder, testutil.NewMockConfigLoader(), logger)

	// Execute
	out, err := uc.Execute(context.Background(), BuildGraphInput{Source: "tasks.yaml"})

	// Assert
	require.NoError(t, err)
	require.Len(t, out.Tasks, 2)
	a, b := out.Tasks[0], out.Tasks[1]
	assert.Equal(t, []domain.TaskID{a.ID()}, b.Precursors())
	assert.Empty(t, a.Precursors())
	assert.Equal(t, []domain.TaskID{a.ID()}, out.Roots)
	assert.Equal(t, "tasks.yaml", out.Source)
	assert.Equal(t, domain.DefaultRootKey, out.RootKey)
	assert.Empty(t, out.UnusedOverrides)

	// Decoder received the loaded text and config defaults
	assert.Equal(t, "text", decoder.Text)
	assert.Equal(t, domain.FormatAuto, decoder.Format)
	assert.Equal(t, domain.DefaultRootKey, decoder.RootKey)

	// Every task is logged under its own id, naming its source
	var perTask []testutil.LogEntry
	for _, e := range logger.ByLevel("INFO") {
		if e.TaskID > 0 {
			perTask = append(perTask, e)
		}
	}
	require.Len(t, perTask, 2)
	assert.Equal(t, a.ID(), perTask[0].TaskID)
	assert.Equal(t, b.ID(), perTask[1].TaskID)
	assert.Contains(t, perTask[1].Msg, `"B"`)
	assert.Contains(t, perTask[1].Msg, "from tasks.yaml")
	assert.Contains(t, perTask[1].Msg, a.ID().String())
}

func TestBuildGraph_Execute_InputOverridesConfig(t *testing.T) {
	source := testutil.NewMockDocumentSource(map[string]string{"tasks": "text"})
	decoder := &testutil.MockDocumentDecoder{Document: twoTaskDocument()}
	configLoader := testutil.NewMockConfigLoader()
	configLoader.Config.Document.RootKey = "from_config"
	configLoader.Config.Document.Format = domain.FormatHCL

	uc := newBuildGraph(source, decoder, configLoader, nil)
	out, err := uc.Execute(context.Background(), BuildGraphInput{
		Source:  "tasks",
		Format:  domain.FormatYAML,
		RootKey: "from_flag",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.FormatYAML, decoder.Format)
	assert.Equal(t, "from_flag", decoder.RootKey)
	assert.Equal(t, "from_flag", out.RootKey)
}

func TestBuildGraph_Execute_ConfigValues(t *testing.T) {
	source := testutil.NewMockDocumentSource(map[string]string{"tasks": "text"})
	decoder := &testutil.MockDocumentDecoder{Document: twoTaskDocument()}
	configLoader := testutil.NewMockConfigLoader()
	configLoader.Config.Document.RootKey = "pipeline"
	configLoader.Config.Document.Format = domain.FormatHCL

	uc := newBuildGraph(source, decoder, configLoader, nil)
	_, err := uc.Execute(context.Background(), BuildGraphInput{Source: "tasks"})
	require.NoError(t, err)
	assert.Equal(t, domain.FormatHCL, decoder.Format)
	assert.Equal(t, "pipeline", decoder.RootKey)
}

func TestBuildGraph_Execute_Overrides(t *testing.T) {
	source := testutil.NewMockDocumentSource(map[string]string{"tasks": "text"})
	decoder := &testutil.MockDocumentDecoder{Document: twoTaskDocument()}
	logger := &testutil.MockLogger{}
	uc := newBuildGraph(source, decoder, nil, logger)

	overrides := map[string]domain.Action{
		"A":    testutil.StaticAction("custom"),
		"zeta": testutil.StaticAction(nil),
		"beta": testutil.StaticAction(nil),
	}
	out, err := uc.Execute(context.Background(), BuildGraphInput{Source: "tasks", Overrides: overrides})
	require.NoError(t, err)

	res, err := out.Tasks[0].Action().Run(context.Background(), domain.NewInput(), domain.NewEnv())
	require.NoError(t, err)
	assert.Equal(t, "custom", res.Value())
	_, isCmd := out.Tasks[1].Action().(*domain.CommandAction)
	assert.True(t, isCmd)

	assert.Equal(t, []string{"beta", "zeta"}, out.UnusedOverrides)
	warnings := logger.ByLevel("WARN")
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Msg, "beta, zeta")
}

func TestBuildGraph_Execute_Errors(t *testing.T) {
	decodeErr := &domain.DecodeError{Err: domain.ErrIllegalDocument, Source: "tasks"}

	tests := []struct {
		wantErr      error
		source       *testutil.MockDocumentSource
		decoder      *testutil.MockDocumentDecoder
		configLoader *testutil.MockConfigLoader
		name         string
	}{
		{
			name:    "document not found",
			source:  testutil.NewMockDocumentSource(nil),
			decoder: &testutil.MockDocumentDecoder{Document: twoTaskDocument()},
			wantErr: domain.ErrDocumentNotFound,
		},
		{
			name: "document unreadable",
			source: &testutil.MockDocumentSource{
				LoadErr: domain.ErrDocumentUnreadable,
			},
			decoder: &testutil.MockDocumentDecoder{Document: twoTaskDocument()},
			wantErr: domain.ErrDocumentUnreadable,
		},
		{
			name:    "illegal content",
			source:  testutil.NewMockDocumentSource(map[string]string{"tasks": "text"}),
			decoder: &testutil.MockDocumentDecoder{DecodeErr: decodeErr},
			wantErr: domain.ErrIllegalDocument,
		},
		{
			name:    "empty document",
			source:  testutil.NewMockDocumentSource(map[string]string{"tasks": "text"}),
			decoder: &testutil.MockDocumentDecoder{Document: &domain.Document{}},
			wantErr: domain.ErrEmptyDocument,
		},
		{
			name:   "unresolved precursor",
			source: testutil.NewMockDocumentSource(map[string]string{"tasks": "text"}),
			decoder: &testutil.MockDocumentDecoder{Document: &domain.Document{Entries: []domain.RawEntry{
				{ID: "A", Fields: map[string]any{"name": "A", "after": []any{"Z"}, "cmd": "echo a"}},
			}}},
			wantErr: domain.ErrUnresolvedPrecursor,
		},
		{
			name:         "config error",
			source:       testutil.NewMockDocumentSource(map[string]string{"tasks": "text"}),
			decoder:      &testutil.MockDocumentDecoder{Document: twoTaskDocument()},
			configLoader: &testutil.MockConfigLoader{LoadErr: errors.New("bad config")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &testutil.MockLogger{}
			var loader domain.ConfigLoader = testutil.NewMockConfigLoader()
			if tt.configLoader != nil {
				loader = tt.configLoader
			}
			uc := newBuildGraph(tt.source, tt.decoder, loader, logger)

			out, err := uc.Execute(context.Background(), BuildGraphInput{Source: "tasks"})
			require.Error(t, err)
			assert.Nil(t, out)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Len(t, logger.ByLevel("ERROR"), 1)
			}
		})
	}
}
