// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/runoshun/taskgraph/internal/domain"
)

// MockDocumentSource is a test double for domain.DocumentSource.
// Fields are ordered to minimize memory padding.
type MockDocumentSource struct {
	Documents map[string]string
	LoadErr   error
	Loaded    []string
}

// NewMockDocumentSource creates a MockDocumentSource serving docs.
func NewMockDocumentSource(docs map[string]string) *MockDocumentSource {
	if docs == nil {
		docs = make(map[string]string)
	}
	return &MockDocumentSource{Documents: docs}
}

// Ensure MockDocumentSource implements domain.DocumentSource interface.
var _ domain.DocumentSource = (*MockDocumentSource)(nil)

// Load returns the configured document, or ErrDocumentNotFound.
func (m *MockDocumentSource) Load(source string) (string, error) {
	m.Loaded = append(m.Loaded, source)
	if m.LoadErr != nil {
		return "", m.LoadErr
	}
	text, ok := m.Documents[source]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, source)
	}
	return text, nil
}

// MockDocumentDecoder is a test double for domain.DocumentDecoder.
// It returns Document as is and records the arguments it was called with.
type MockDocumentDecoder struct {
	Document  *domain.Document
	DecodeErr error
	Source    string
	Text      string
	Format    string
	RootKey   string
}

// Ensure MockDocumentDecoder implements domain.DocumentDecoder interface.
var _ domain.DocumentDecoder = (*MockDocumentDecoder)(nil)

// Decode records its arguments and returns the configured document or error.
func (m *MockDocumentDecoder) Decode(source, text, format, rootKey string) (*domain.Document, error) {
	m.Source, m.Text, m.Format, m.RootKey = source, text, format, rootKey
	if m.DecodeErr != nil {
		return nil, m.DecodeErr
	}
	return m.Document, nil
}

// MockExecutor is a test double for domain.CommandExecutor.
// Results are looked up by the script passed to the shell ("-c <script>").
type MockExecutor struct {
	Results  map[string]*domain.ExecResult
	Errs     map[string]error
	Commands []*domain.ExecCommand
	mu       sync.Mutex
}

// NewMockExecutor creates a MockExecutor that succeeds with empty output by default.
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{
		Results: make(map[string]*domain.ExecResult),
		Errs:    make(map[string]error),
	}
}

// Ensure MockExecutor implements domain.CommandExecutor interface.
var _ domain.CommandExecutor = (*MockExecutor)(nil)

// Execute records cmd and replays the configured result.
func (m *MockExecutor) Execute(_ context.Context, cmd *domain.ExecCommand) (*domain.ExecResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Commands = append(m.Commands, cmd)

	script := ""
	if len(cmd.Args) == 2 && cmd.Args[0] == "-c" {
		script = cmd.Args[1]
	}
	res, ok := m.Results[script]
	if !ok {
		res = &domain.ExecResult{}
	}
	return res, m.Errs[script]
}

// LogEntry is one call recorded by MockLogger.
type LogEntry struct {
	Level    string
	Category string
	Msg      string
	TaskID   domain.TaskID
}

// MockLogger is a test double for domain.Logger that records every entry.
type MockLogger struct {
	Entries []LogEntry
	mu      sync.Mutex
}

// Ensure MockLogger implements domain.Logger interface.
var _ domain.Logger = (*MockLogger)(nil)

func (m *MockLogger) record(level string, taskID domain.TaskID, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, LogEntry{Level: level, TaskID: taskID, Category: category, Msg: msg})
}

// Debug records a debug entry.
func (m *MockLogger) Debug(taskID domain.TaskID, category, msg string) {
	m.record("DEBUG", taskID, category, msg)
}

// Info records an info entry.
func (m *MockLogger) Info(taskID domain.TaskID, category, msg string) {
	m.record("INFO", taskID, category, msg)
}

// Warn records a warning entry.
func (m *MockLogger) Warn(taskID domain.TaskID, category, msg string) {
	m.record("WARN", taskID, category, msg)
}

// Error records an error entry.
func (m *MockLogger) Error(taskID domain.TaskID, category, msg string) {
	m.record("ERROR", taskID, category, msg)
}

// ByLevel returns the recorded entries with the given level.
func (m *MockLogger) ByLevel(level string) []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []LogEntry
	for _, e := range m.Entries {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config       *domain.Config
	GlobalConfig *domain.Config
	LoadErr      error
	GlobalErr    error
	Paths        []domain.ConfigSource
}

// NewMockConfigLoader creates a new MockConfigLoader with default config.
func NewMockConfigLoader() *MockConfigLoader {
	return &MockConfigLoader{
		Config: domain.NewDefaultConfig(),
	}
}

// Ensure MockConfigLoader implements domain.ConfigLoader interface.
var _ domain.ConfigLoader = (*MockConfigLoader)(nil)

// Load returns the configured config or error.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Config, nil
}

// LoadGlobal returns the configured config or error.
func (m *MockConfigLoader) LoadGlobal() (*domain.Config, error) {
	if m.GlobalErr != nil {
		return nil, m.GlobalErr
	}
	if m.GlobalConfig != nil {
		return m.GlobalConfig, nil
	}
	return m.Config, nil
}

// Sources returns the configured sources.
func (m *MockConfigLoader) Sources() []domain.ConfigSource {
	return m.Paths
}

// StaticAction returns an action that always succeeds with value.
func StaticAction(value any) domain.Action {
	return domain.ActionFunc(func(context.Context, domain.Input, *domain.Env) (domain.Output, error) {
		return domain.NewOutput(value), nil
	})
}
