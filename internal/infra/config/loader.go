// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/taskgraph/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	projectDir    string // Directory holding .taskgraph.toml
	globalConfDir string // Path to global config directory (e.g., ~/.config/taskgraph)
}

// NewLoader creates a new Loader.
func NewLoader(projectDir string) *Loader {
	return &Loader{
		projectDir:    projectDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(projectDir, globalConfDir string) *Loader {
	return &Loader{
		projectDir:    projectDir,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalAppDir(configHome)
}

// Load returns the merged configuration (global + project).
// Project config takes precedence over global config.
func (l *Loader) Load() (*domain.Config, error) {
	global, err := l.LoadGlobal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	project, err := l.LoadProject()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	// Merge: default <- global <- project (later takes precedence)
	base := domain.NewDefaultConfig()
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if project != nil {
		base = mergeConfigs(base, project)
	}
	return base, nil
}

// LoadGlobal returns only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
}

// LoadProject returns only the project configuration.
func (l *Loader) LoadProject() (*domain.Config, error) {
	if l.projectDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(domain.ProjectConfigPath(l.projectDir))
}

// Sources returns the global and project config file locations.
func (l *Loader) Sources() []domain.ConfigSource {
	var sources []domain.ConfigSource
	if l.globalConfDir != "" {
		sources = append(sources, source(filepath.Join(l.globalConfDir, domain.ConfigFileName)))
	}
	if l.projectDir != "" {
		sources = append(sources, source(domain.ProjectConfigPath(l.projectDir)))
	}
	return sources
}

func source(path string) domain.ConfigSource {
	_, err := os.Stat(path)
	return domain.ConfigSource{Path: path, Exists: err == nil}
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return convertRawToDomainConfig(raw), nil
}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
// Values are not defaulted here; mergeConfigs only copies fields that are set.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{}
	var warnings []string

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
			continue
		}
		switch section {
		case "document":
			for k, v := range m {
				switch k {
				case "root_key":
					res.Document.RootKey = stringValue(v)
				case "format":
					res.Document.Format = stringValue(v)
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [document]: %s", k))
				}
			}
		case "command":
			for k, v := range m {
				switch k {
				case "shell":
					res.Command.Shell = stringValue(v)
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [command]: %s", k))
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					res.Log.Level = stringValue(v)
				case "dir":
					res.Log.Dir = stringValue(v)
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

func stringValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// mergeConfigs merges two configs, with override taking precedence.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := &domain.Config{
		Document: base.Document,
		Command:  base.Command,
		Log:      base.Log,
		Warnings: append([]string{}, base.Warnings...),
	}
	result.Warnings = append(result.Warnings, override.Warnings...)

	if override.Document.RootKey != "" {
		result.Document.RootKey = override.Document.RootKey
	}
	if override.Document.Format != "" {
		result.Document.Format = override.Document.Format
	}
	if override.Command.Shell != "" {
		result.Command.Shell = override.Command.Shell
	}
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}
	if override.Log.Dir != "" {
		result.Log.Dir = override.Log.Dir
	}
	return result
}

// Marshal renders cfg as TOML in the layout the loader reads.
func Marshal(cfg *domain.Config) ([]byte, error) {
	return toml.Marshal(fileConfig{
		Document: fileDocument{RootKey: cfg.Document.RootKey, Format: cfg.Document.Format},
		Command:  fileCommand{Shell: cfg.Command.Shell},
		Log:      fileLog{Level: cfg.Log.Level, Dir: cfg.Log.Dir},
	})
}

type fileConfig struct {
	Document fileDocument `toml:"document"`
	Command  fileCommand  `toml:"command"`
	Log      fileLog      `toml:"log"`
}

type fileDocument struct {
	RootKey string `toml:"root_key"`
	Format  string `toml:"format"`
}

type fileCommand struct {
	Shell string `toml:"shell"`
}

type fileLog struct {
	Level string `toml:"level"`
	Dir   string `toml:"dir"`
}
