package domain

import (
	"bytes"
	"path/filepath"
	"text/template"
)

// Config represents the application configuration.
type Config struct {
	Document DocumentConfig // [document] settings
	Command  CommandConfig  // [command] settings
	Log      LogConfig      // [log] settings
	Warnings []string       // Unknown keys found while loading
}

// DocumentConfig holds settings from the [document] section.
type DocumentConfig struct {
	RootKey string // Key the task mapping lives under
	Format  string // yaml, hcl, or empty to pick by file extension
}

// CommandConfig holds settings from the [command] section.
type CommandConfig struct {
	Shell string // Program cmd strings are passed to with -c
}

// LogConfig holds logging settings from the [log] section.
type LogConfig struct {
	Level string // Log level: debug, info, warn, error
	Dir   string // Directory for log files; empty disables file logging
}

// Default configuration values.
const (
	DefaultLogLevel = "info"
)

// Directory and file names for taskgraph.
const (
	AppDirName         = "taskgraph"       // Directory name under the config home
	ConfigFileName     = "config.toml"     // Global config file name
	RootConfigFileName = ".taskgraph.toml" // Config file name in the project directory
)

// ConfigSource describes one config file location.
type ConfigSource struct {
	Path   string
	Exists bool
}

// GlobalAppDir returns the global config directory path.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalAppDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// GlobalConfigPath returns the global config path.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalConfigPath(configHome string) string {
	return filepath.Join(GlobalAppDir(configHome), ConfigFileName)
}

// ProjectConfigPath returns the project config path.
func ProjectConfigPath(projectDir string) string {
	return filepath.Join(projectDir, RootConfigFileName)
}

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Document: DocumentConfig{
			RootKey: DefaultRootKey,
			Format:  FormatAuto,
		},
		Command: CommandConfig{
			Shell: DefaultShell,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

var configTemplate = template.Must(template.New("config").Parse(`# taskgraph configuration

[document]
# Key the task mapping lives under.
root_key = "{{.Document.RootKey}}"
# Document format: "yaml" or "hcl". Empty picks by file extension.
format = "{{.Document.Format}}"

[command]
# Program cmd strings are run with (as: <shell> -c <cmd>).
shell = "{{.Command.Shell}}"

[log]
# Log level: debug, info, warn, error
level = "{{.Log.Level}}"
# Directory for log files. Empty disables file logging.
dir = "{{.Log.Dir}}"
`))

// RenderConfigTemplate renders a commented config file holding the values of cfg.
func RenderConfigTemplate(cfg *Config) string {
	var buf bytes.Buffer
	// The template only reads plain string fields, so it cannot fail.
	_ = configTemplate.Execute(&buf, cfg)
	return buf.String()
}
