package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigs_Defaults(t *testing.T) {
	cwd := t.TempDir()

	cfg, err := LoadConfigs(nil, cwd)
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig.Theme, cfg.Theme)
	assert.Equal(t, "text", cfg.OutputFormat)
	assert.Equal(t, "auto", cfg.Language)
	assert.Equal(t, "intermediate", cfg.ExplanationLevel)
	assert.True(t, cfg.EnableCache)
	assert.Equal(t, filepath.Join(cwd, ".cache"), cfg.CacheDir)
	assert.Equal(t, 512, cfg.MemoryCacheSize)
	assert.Equal(t, int64(100*1024), cfg.MaxFileSize)
	assert.Empty(t, cfg.ConfigFile)
}

func TestLoadConfigs_ConfigFile(t *testing.T) {
	cwd := t.TempDir()
	content := "theme: monokai\nlog_level: DEBUG\nenable_cache: false\ncache_dir: /var/tmp/codesense\n"
	require.NoError(t, os.WriteFile(filepath.Join(cwd, "codesense-config.yml"), []byte(content), 0644))

	cfg, err := LoadConfigs(nil, cwd)
	require.NoError(t, err)

	assert.Equal(t, "monokai", cfg.Theme)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.EnableCache)
	assert.Equal(t, "/var/tmp/codesense", cfg.CacheDir)
	assert.Equal(t, filepath.Join(cwd, "codesense-config.yml"), cfg.ConfigFile)
}

func TestLoadConfigs_EnvOverridesFile(t *testing.T) {
	cwd := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(cwd, "codesense-config.json"), []byte(`{"output_format": "yaml", "workers": 2}`), 0644))
	t.Setenv("CODESENSE_OUTPUT_FORMAT", "json")
	t.Setenv("CODESENSE_WORKERS", "8")

	cfg, err := LoadConfigs(nil, cwd)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, 8, cfg.Workers)
}

func TestLoadConfigs_DotEnv(t *testing.T) {
	cwd := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(cwd, ".env"), []byte("CODESENSE_MAX_PROMPT_TOKENS=1234\n"), 0644))
	t.Cleanup(func() { _ = os.Unsetenv("CODESENSE_MAX_PROMPT_TOKENS") })

	cfg, err := LoadConfigs(nil, cwd)
	require.NoError(t, err)

	assert.Equal(t, 1234, cfg.MaxPromptTokens)
}

func TestLoadConfigs_FlagsOverrideEnv(t *testing.T) {
	cwd := t.TempDir()
	t.Setenv("CODESENSE_OUTPUT_FORMAT", "json")

	rootCmd := &cobra.Command{Use: "codesense"}
	InitFlags(rootCmd)
	require.NoError(t, rootCmd.PersistentFlags().Set("format", "yaml"))

	cfg, err := LoadConfigs(rootCmd, cwd)
	require.NoError(t, err)

	assert.Equal(t, "yaml", cfg.OutputFormat)
}

func TestLoadConfigs_Invalid(t *testing.T) {
	cwd := t.TempDir()

	t.Setenv("CODESENSE_OUTPUT_FORMAT", "xml")
	_, err := LoadConfigs(nil, cwd)
	assert.ErrorIs(t, err, ErrInvalidOutputFormat)

	t.Setenv("CODESENSE_OUTPUT_FORMAT", "text")
	t.Setenv("CODESENSE_EXPLANATION_LEVEL", "expert")
	_, err = LoadConfigs(nil, cwd)
	assert.ErrorIs(t, err, ErrInvalidLevel)

	t.Setenv("CODESENSE_EXPLANATION_LEVEL", "beginner")
	t.Setenv("CODESENSE_LOG_LEVEL", "loud")
	_, err = LoadConfigs(nil, cwd)
	assert.ErrorIs(t, err, ErrInvalidLogLevel)
}

func TestLoadConfigs_ExplicitFile(t *testing.T) {
	cwd := t.TempDir()
	t.Cleanup(func() { SetConfigFile("") })

	SetConfigFile(filepath.Join(cwd, "missing.yml"))
	_, err := LoadConfigs(nil, cwd)
	assert.Error(t, err)

	path := filepath.Join(cwd, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("language: go\n"), 0644))
	SetConfigFile(path)

	cfg, err := LoadConfigs(nil, cwd)
	require.NoError(t, err)
	assert.Equal(t, "go", cfg.Language)
	assert.Equal(t, path, cfg.ConfigFile)
}
