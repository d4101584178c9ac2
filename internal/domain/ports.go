package domain

import "context"

// DocumentSource reads configuration text from a named source.
// It does not interpret the content.
type DocumentSource interface {
	// Load returns the full text of source. Errors wrap
	// ErrDocumentNotFound or ErrDocumentUnreadable.
	Load(source string) (string, error)
}

// DocumentDecoder turns configuration text into a Document.
type DocumentDecoder interface {
	// Decode parses text read from source. format is FormatYAML, FormatHCL,
	// or FormatAuto to choose by the extension of source.
	Decode(source, text, format, rootKey string) (*Document, error)
}

// CommandExecutor runs external commands.
type CommandExecutor interface {
	// Execute runs cmd to completion. The result is non-nil whenever the
	// process started; err is non-nil on start failure or non-zero exit.
	Execute(ctx context.Context, cmd *ExecCommand) (*ExecResult, error)
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (global + project).
	Load() (*Config, error)

	// LoadGlobal returns only the global configuration.
	LoadGlobal() (*Config, error)

	// Sources lists the config files consulted by Load, lowest precedence first.
	Sources() []ConfigSource
}

// Logger writes task-scoped log entries.
// A taskID of 0 logs to the global log only.
type Logger interface {
	Debug(taskID TaskID, category, msg string)
	Info(taskID TaskID, category, msg string)
	Warn(taskID TaskID, category, msg string)
	Error(taskID TaskID, category, msg string)
}
