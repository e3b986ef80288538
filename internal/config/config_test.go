package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NotNil(t, cfg)
	assert.Equal(t, "text", cfg.Format)
	assert.False(t, cfg.NoColor)
	assert.False(t, cfg.Quiet)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, 10*time.Second, cfg.Collect.Timeout)
	assert.False(t, cfg.Collect.Parallel)
	assert.Equal(t, 30*time.Second, cfg.Fix.Timeout)
	assert.Empty(t, cfg.Export.Path)
	assert.Equal(t, 30*time.Second, cfg.Watch.Interval)
	assert.False(t, cfg.Watch.Tmux)

	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	t.Run("rejects unknown format", func(t *testing.T) {
		cfg := Default()
		cfg.Format = "xml"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid format")
	})

	t.Run("rejects non-positive timeouts", func(t *testing.T) {
		cfg := Default()
		cfg.Collect.Timeout = 0
		assert.Error(t, cfg.Validate())

		cfg = Default()
		cfg.Fix.Timeout = -time.Second
		assert.Error(t, cfg.Validate())

		cfg = Default()
		cfg.Watch.Interval = 0
		assert.Error(t, cfg.Validate())
	})
}

func TestLoad(t *testing.T) {
	t.Run("returns defaults when no config file exists", func(t *testing.T) {
		tmpDir := t.TempDir()
		origDir, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(tmpDir))
		t.Cleanup(func() {
			require.NoError(t, os.Chdir(origDir))
		})
		t.Setenv("HOME", tmpDir)
		t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, ".config"))

		cfg, err := Load()
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, "text", cfg.Format)
		assert.Equal(t, 10*time.Second, cfg.Collect.Timeout)
	})

	t.Run("loads config from current directory", func(t *testing.T) {
		tmpDir := t.TempDir()
		origDir, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(tmpDir))
		t.Cleanup(func() {
			require.NoError(t, os.Chdir(origDir))
		})
		t.Setenv("HOME", tmpDir)
		t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, ".config"))

		configContent := `
format: json
verbose: true
collect:
  timeout: 5s
  parallel: true
`
		configPath := filepath.Join(tmpDir, ".avdoctor.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "json", cfg.Format)
		assert.True(t, cfg.Verbose)
		assert.Equal(t, 5*time.Second, cfg.Collect.Timeout)
		assert.True(t, cfg.Collect.Parallel)
		// Untouched sections keep their defaults.
		assert.Equal(t, 30*time.Second, cfg.Fix.Timeout)
	})
}

func TestLoadFromFile(t *testing.T) {
	t.Run("returns error for non-existent file", func(t *testing.T) {
		cfg, err := LoadFromFile("/nonexistent/path/config.yaml")
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "bad.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("invalid: yaml: content: ["), 0644))

		cfg, err := LoadFromFile(configPath)
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("returns error for invalid values", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "avdoctor.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("format: csv"), 0644))

		cfg, err := LoadFromFile(configPath)
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("parses all config fields", func(t *testing.T) {
		tmpDir := t.TempDir()
		configContent := `
format: yaml
no_color: true
quiet: true
verbose: true
collect:
  timeout: 7s
  parallel: true
fix:
  timeout: 90s
export:
  path: /var/tmp/fixes.sh
watch:
  interval: 10s
  tmux: true
`
		configPath := filepath.Join(tmpDir, "avdoctor.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

		cfg, err := LoadFromFile(configPath)
		require.NoError(t, err)

		assert.Equal(t, "yaml", cfg.Format)
		assert.True(t, cfg.NoColor)
		assert.True(t, cfg.Quiet)
		assert.True(t, cfg.Verbose)
		assert.Equal(t, 7*time.Second, cfg.Collect.Timeout)
		assert.True(t, cfg.Collect.Parallel)
		assert.Equal(t, 90*time.Second, cfg.Fix.Timeout)
		assert.Equal(t, "/var/tmp/fixes.sh", cfg.Export.Path)
		assert.Equal(t, 10*time.Second, cfg.Watch.Interval)
		assert.True(t, cfg.Watch.Tmux)
	})

	t.Run("sample config parses and validates", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "avdoctor.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte(Sample), 0644))

		cfg, err := LoadFromFile(configPath)
		require.NoError(t, err)
		assert.Equal(t, *Default(), *cfg)
	})
}

func TestConfigEnvironmentVariables(t *testing.T) {
	tmpDir := t.TempDir()
	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(origDir))
	})
	t.Setenv("HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, ".config"))

	t.Run("format and quiet override from env", func(t *testing.T) {
		t.Setenv("AVDOCTOR_FORMAT", "json")
		t.Setenv("AVDOCTOR_QUIET", "1")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "json", cfg.Format)
		assert.True(t, cfg.Quiet)
	})

	t.Run("durations override from env", func(t *testing.T) {
		t.Setenv("AVDOCTOR_COLLECT_TIMEOUT", "3s")
		t.Setenv("AVDOCTOR_FIX_TIMEOUT", "1m")
		t.Setenv("AVDOCTOR_WATCH_INTERVAL", "5s")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 3*time.Second, cfg.Collect.Timeout)
		assert.Equal(t, time.Minute, cfg.Fix.Timeout)
		assert.Equal(t, 5*time.Second, cfg.Watch.Interval)
	})

	t.Run("unparseable duration keeps default", func(t *testing.T) {
		t.Setenv("AVDOCTOR_FIX_TIMEOUT", "soon")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 30*time.Second, cfg.Fix.Timeout)
	})

	t.Run("export path and tmux override from env", func(t *testing.T) {
		t.Setenv("AVDOCTOR_EXPORT_PATH", "/srv/fixes.sh")
		t.Setenv("AVDOCTOR_WATCH_TMUX", "true")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "/srv/fixes.sh", cfg.Export.Path)
		assert.True(t, cfg.Watch.Tmux)
	})
}

func TestFindConfigFile(t *testing.T) {
	setupDir := func(t *testing.T) string {
		t.Helper()
		tmpDir := t.TempDir()
		origDir, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(tmpDir))
		t.Cleanup(func() {
			require.NoError(t, os.Chdir(origDir))
		})
		t.Setenv("HOME", tmpDir)
		t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, ".config"))
		return tmpDir
	}

	t.Run("finds .avdoctor.yaml in current directory", func(t *testing.T) {
		tmpDir := setupDir(t)

		configPath := filepath.Join(tmpDir, ".avdoctor.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("format: text"), 0644))

		found := findConfigFile()
		expectedPath, err := filepath.EvalSymlinks(configPath)
		require.NoError(t, err)
		foundPath, err := filepath.EvalSymlinks(found)
		require.NoError(t, err)
		assert.Equal(t, expectedPath, foundPath)
	})

	t.Run("prefers .avdoctor.yaml over .avdoctor.yml", func(t *testing.T) {
		tmpDir := setupDir(t)

		yamlPath := filepath.Join(tmpDir, ".avdoctor.yaml")
		ymlPath := filepath.Join(tmpDir, ".avdoctor.yml")
		require.NoError(t, os.WriteFile(yamlPath, []byte("format: text"), 0644))
		require.NoError(t, os.WriteFile(ymlPath, []byte("format: json"), 0644))

		found := findConfigFile()
		expectedPath, err := filepath.EvalSymlinks(yamlPath)
		require.NoError(t, err)
		foundPath, err := filepath.EvalSymlinks(found)
		require.NoError(t, err)
		assert.Equal(t, expectedPath, foundPath)
	})

	t.Run("falls back to XDG config dir", func(t *testing.T) {
		tmpDir := setupDir(t)

		xdgDir := filepath.Join(tmpDir, ".config", "avdoctor")
		require.NoError(t, os.MkdirAll(xdgDir, 0755))
		configPath := filepath.Join(xdgDir, "config.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("format: text"), 0644))

		found := findConfigFile()
		expectedPath, err := filepath.EvalSymlinks(configPath)
		require.NoError(t, err)
		foundPath, err := filepath.EvalSymlinks(found)
		require.NoError(t, err)
		assert.Equal(t, expectedPath, foundPath)
	})

	t.Run("returns empty string when no config found", func(t *testing.T) {
		setupDir(t)

		found := findConfigFile()
		assert.Empty(t, found)
	})
}
