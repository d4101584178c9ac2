// Package app provides the dependency injection container for the application.
package app

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/runoshun/taskgraph/internal/domain"
	"github.com/runoshun/taskgraph/internal/infra/config"
	"github.com/runoshun/taskgraph/internal/infra/document"
	"github.com/runoshun/taskgraph/internal/infra/executor"
	"github.com/runoshun/taskgraph/internal/infra/filestore"
	"github.com/runoshun/taskgraph/internal/infra/logging"
	"github.com/runoshun/taskgraph/internal/usecase"
)

// Config holds the application paths and settings resolved at startup.
type Config struct {
	ProjectDir string // Directory searched for .taskgraph.toml
	LogDir     string // Directory for log files; empty disables file logging
	Shell      string // Program cmd strings are run with
}

// newConfig resolves paths from the project directory and the loaded app config.
func newConfig(projectDir string, appConfig *domain.Config) Config {
	logDir := appConfig.Log.Dir
	if logDir != "" && !filepath.IsAbs(logDir) {
		logDir = filepath.Join(projectDir, logDir)
	}
	return Config{
		ProjectDir: projectDir,
		LogDir:     logDir,
		Shell:      appConfig.Command.Shell,
	}
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Documents    domain.DocumentSource
	Decoder      domain.DocumentDecoder
	Executor     domain.CommandExecutor
	ConfigLoader domain.ConfigLoader
	TaskLogger   domain.Logger

	// Pointer fields
	IDs       *domain.IDAllocator
	AppConfig *domain.Config
	Logger    *slog.Logger // Process diagnostics on stderr (config warnings, shutdown errors)

	// Configuration
	Config Config
}

// New creates a new Container rooted at the given project directory.
// stdin backs the "-" document source.
func New(dir string, stdin io.Reader) (*Container, error) {
	projectDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	configLoader := config.NewLoader(projectDir)
	appConfig, err := configLoader.Load()
	if err != nil {
		return nil, err
	}
	cfg := newConfig(projectDir, appConfig)

	level := logging.ParseLevel(appConfig.Log.Level)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	return &Container{
		Documents:    filestore.New(stdin),
		Decoder:      document.NewDecoder(),
		Executor:     executor.NewClient(),
		ConfigLoader: configLoader,
		TaskLogger:   logging.New(cfg.LogDir, level),
		IDs:          domain.NewIDAllocator(),
		AppConfig:    appConfig,
		Logger:       logger,
		Config:       cfg,
	}, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(
	cfg Config,
	documents domain.DocumentSource,
	decoder domain.DocumentDecoder,
	exec domain.CommandExecutor,
	configLoader domain.ConfigLoader,
	taskLogger domain.Logger,
	logger *slog.Logger,
) *Container {
	if logger == nil {
		logger = slog.Default()
	}
	appConfig := domain.NewDefaultConfig()
	if configLoader != nil {
		if loaded, err := configLoader.Load(); err == nil {
			appConfig = loaded
		}
	}
	return &Container{
		Documents:    documents,
		Decoder:      decoder,
		Executor:     exec,
		ConfigLoader: configLoader,
		TaskLogger:   taskLogger,
		IDs:          domain.NewIDAllocator(),
		AppConfig:    appConfig,
		Logger:       logger,
		Config:       cfg,
	}
}

// Close releases the open log files.
func (c *Container) Close() error {
	if closer, ok := c.TaskLogger.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// GraphBuilder returns a GraphBuilder sharing the container's id allocator,
// so ids stay unique across every graph built by this process.
func (c *Container) GraphBuilder() *domain.GraphBuilder {
	return domain.NewGraphBuilder(c.IDs, c.Executor, c.Config.Shell)
}

// CommandAction returns a command action run through the configured shell.
func (c *Container) CommandAction(command string) *domain.CommandAction {
	return domain.NewCommandAction(command, c.Executor, c.Config.Shell)
}

// UseCase factory methods

// BuildGraphUseCase returns a new BuildGraph use case.
func (c *Container) BuildGraphUseCase() *usecase.BuildGraph {
	return usecase.NewBuildGraph(c.Documents, c.Decoder, c.GraphBuilder(), c.ConfigLoader, c.TaskLogger)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigLoader)
}

// ShowLogsUseCase returns a new ShowLogs use case.
func (c *Container) ShowLogsUseCase() *usecase.ShowLogs {
	return usecase.NewShowLogs(c.Config.LogDir)
}
