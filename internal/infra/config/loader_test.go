package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/taskgraph/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Load_Defaults(t *testing.T) {
	loader := NewLoaderWithGlobalDir(t.TempDir(), t.TempDir())
	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, domain.NewDefaultConfig(), cfg)
}

func TestLoader_Load_ProjectConfigOnly(t *testing.T) {
	// Setup: create temp directories
	projectDir := t.TempDir()
	globalDir := t.TempDir()

	projectConfig := `
[document]
root_key = "pipeline"
format = "hcl"

[command]
shell = "bash"

[log]
level = "debug"
dir = "/tmp/taskgraph-logs"
`
	err := os.WriteFile(domain.ProjectConfigPath(projectDir), []byte(projectConfig), 0o644)
	require.NoError(t, err)

	// Load config
	loader := NewLoaderWithGlobalDir(projectDir, globalDir)
	cfg, err := loader.Load()
	require.NoError(t, err)

	// Verify
	assert.Equal(t, "pipeline", cfg.Document.RootKey)
	assert.Equal(t, "hcl", cfg.Document.Format)
	assert.Equal(t, "bash", cfg.Command.Shell)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/taskgraph-logs", cfg.Log.Dir)
	assert.Empty(t, cfg.Warnings)
}

func TestLoader_Load_GlobalConfigOnly(t *testing.T) {
	projectDir := t.TempDir()
	globalDir := t.TempDir()

	globalConfig := `
[log]
level = "warn"
`
	err := os.WriteFile(filepath.Join(globalDir, domain.ConfigFileName), []byte(globalConfig), 0o644)
	require.NoError(t, err)

	loader := NewLoaderWithGlobalDir(projectDir, globalDir)
	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, domain.DefaultRootKey, cfg.Document.RootKey, "unset values keep defaults")
	assert.Equal(t, domain.DefaultShell, cfg.Command.Shell)
}

func TestLoader_Load_ProjectOverridesGlobal(t *testing.T) {
	projectDir := t.TempDir()
	globalDir := t.TempDir()

	globalConfig := `
[document]
root_key = "global_root"

[log]
level = "error"
dir = "/var/log/global"
`
	projectConfig := `
[document]
root_key = "project_root"
`
	require.NoError(t, os.WriteFile(filepath.Join(globalDir, domain.ConfigFileName), []byte(globalConfig), 0o644))
	require.NoError(t, os.WriteFile(domain.ProjectConfigPath(projectDir), []byte(projectConfig), 0o644))

	cfg, err := NewLoaderWithGlobalDir(projectDir, globalDir).Load()
	require.NoError(t, err)

	assert.Equal(t, "project_root", cfg.Document.RootKey)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, "/var/log/global", cfg.Log.Dir)
}

func TestLoader_Load_Warnings(t *testing.T) {
	projectDir := t.TempDir()
	content := `
[document]
root_key = "dagrs"
extra = 1

[storage]
kind = "s3"

[log]
colour = true
`
	require.NoError(t, os.WriteFile(domain.ProjectConfigPath(projectDir), []byte(content), 0o644))

	cfg, err := NewLoaderWithGlobalDir(projectDir, "").Load()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"unknown key in [document]: extra",
		"unknown key in [log]: colour",
		"unknown section: storage",
	}, cfg.Warnings)
}

func TestLoader_Load_InvalidTOML(t *testing.T) {
	projectDir := t.TempDir()
	require.NoError(t, os.WriteFile(domain.ProjectConfigPath(projectDir), []byte("[document\nroot_key = "), 0o644))

	_, err := NewLoaderWithGlobalDir(projectDir, "").Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.RootConfigFileName)
}

func TestLoader_LoadGlobal_NoDir(t *testing.T) {
	_, err := NewLoaderWithGlobalDir(t.TempDir(), "").LoadGlobal()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMarshal_RoundTrip(t *testing.T) {
	cfg := domain.NewDefaultConfig()
	cfg.Log.Dir = "/tmp/logs"

	data, err := Marshal(cfg)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, toml.Unmarshal(data, &raw))
	got := convertRawToDomainConfig(raw)
	assert.Equal(t, cfg.Document, got.Document)
	assert.Equal(t, cfg.Command, got.Command)
	assert.Equal(t, cfg.Log, got.Log)
	assert.Empty(t, got.Warnings)
}

func TestLoader_Sources(t *testing.T) {
	projectDir := t.TempDir()
	globalDir := t.TempDir()
	require.NoError(t, os.WriteFile(domain.ProjectConfigPath(projectDir), []byte(""), 0o644))

	sources := NewLoaderWithGlobalDir(projectDir, globalDir).Sources()
	require.Len(t, sources, 2)
	assert.Equal(t, filepath.Join(globalDir, domain.ConfigFileName), sources[0].Path)
	assert.False(t, sources[0].Exists)
	assert.Equal(t, domain.ProjectConfigPath(projectDir), sources[1].Path)
	assert.True(t, sources[1].Exists)

	assert.Len(t, NewLoaderWithGlobalDir(projectDir, "").Sources(), 1)
}
