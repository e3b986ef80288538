package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Global settings
	Format  string `mapstructure:"format" json:"format" yaml:"format"`
	NoColor bool   `mapstructure:"no_color" json:"no_color" yaml:"no_color"`
	Quiet   bool   `mapstructure:"quiet" json:"quiet" yaml:"quiet"`
	Verbose bool   `mapstructure:"verbose" json:"verbose" yaml:"verbose"`

	Collect CollectConfig `mapstructure:"collect" json:"collect" yaml:"collect"`
	Fix     FixConfig     `mapstructure:"fix" json:"fix" yaml:"fix"`
	Export  ExportConfig  `mapstructure:"export" json:"export" yaml:"export"`
	Watch   WatchConfig   `mapstructure:"watch" json:"watch" yaml:"watch"`
}

// CollectConfig holds settings for snapshot collection
type CollectConfig struct {
	// Timeout applies per external tool invocation
	Timeout  time.Duration `mapstructure:"timeout" json:"timeout" yaml:"timeout"`
	Parallel bool          `mapstructure:"parallel" json:"parallel" yaml:"parallel"`
}

// FixConfig holds settings for fix execution
type FixConfig struct {
	// Timeout applies per fix command
	Timeout time.Duration `mapstructure:"timeout" json:"timeout" yaml:"timeout"`
}

// ExportConfig holds settings for the fix script export
type ExportConfig struct {
	// Path overrides the default script location when non-empty
	Path string `mapstructure:"path" json:"path" yaml:"path"`
}

// WatchConfig holds settings for the watch loop
type WatchConfig struct {
	Interval time.Duration `mapstructure:"interval" json:"interval" yaml:"interval"`
	Tmux     bool          `mapstructure:"tmux" json:"tmux" yaml:"tmux"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Format:  "text",
		NoColor: false,
		Quiet:   false,
		Verbose: false,
		Collect: CollectConfig{
			Timeout:  10 * time.Second,
			Parallel: false,
		},
		Fix: FixConfig{
			Timeout: 30 * time.Second,
		},
		Watch: WatchConfig{
			Interval: 30 * time.Second,
			Tmux:     false,
		},
	}
}

// Validate checks that the configuration values are usable
func (c *Config) Validate() error {
	switch c.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("invalid format %q (want text, json or yaml)", c.Format)
	}
	if c.Collect.Timeout <= 0 {
		return fmt.Errorf("collect.timeout must be positive, got %s", c.Collect.Timeout)
	}
	if c.Fix.Timeout <= 0 {
		return fmt.Errorf("fix.timeout must be positive, got %s", c.Fix.Timeout)
	}
	if c.Watch.Interval <= 0 {
		return fmt.Errorf("watch.interval must be positive, got %s", c.Watch.Interval)
	}
	return nil
}

// Load loads configuration from files and environment
// Config file search order (highest precedence first):
// 1. ./.avdoctor.yaml or ./.avdoctor.yml
// 2. ~/.avdoctor.yaml or ~/.avdoctor.yml
// 3. $XDG_CONFIG_HOME/avdoctor/config.yaml (or ~/.config/avdoctor/config.yaml)
// 4. /etc/avdoctor/config.yaml
func Load() (*Config, error) {
	cfg := Default()

	configFile := findConfigFile()
	if configFile != "" {
		v := viper.New()
		v.SetConfigFile(configFile)

		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}

		if err := v.Unmarshal(cfg); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// findConfigFile searches for config file in standard locations
func findConfigFile() string {
	// Config file names to search for (in order)
	names := []string{".avdoctor.yaml", ".avdoctor.yml", "avdoctor.yaml", "avdoctor.yml"}

	home, homeErr := os.UserHomeDir()

	// XDG_CONFIG_HOME or ~/.config
	configDir, configDirErr := os.UserConfigDir()

	// Search locations in order of precedence (highest first)
	var searchPaths []string

	// 1. Current directory
	cwd, err := os.Getwd()
	if err == nil {
		searchPaths = append(searchPaths, cwd)
	}

	// 2. Home directory
	if homeErr == nil {
		searchPaths = append(searchPaths, home)
	}

	// 3. Config directory (e.g., ~/.config/avdoctor/)
	if configDirErr == nil {
		searchPaths = append(searchPaths, filepath.Join(configDir, "avdoctor"))
	}

	// 4. System config
	searchPaths = append(searchPaths, "/etc/avdoctor")

	for _, dir := range searchPaths {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
		// Also check for config.yaml in subdirs
		path := filepath.Join(dir, "config.yaml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("AVDOCTOR_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("AVDOCTOR_NO_COLOR"); v == "true" || v == "1" {
		cfg.NoColor = true
	}
	if v := os.Getenv("AVDOCTOR_QUIET"); v == "true" || v == "1" {
		cfg.Quiet = true
	}
	if v := os.Getenv("AVDOCTOR_VERBOSE"); v == "true" || v == "1" {
		cfg.Verbose = true
	}
	if d, ok := envDuration("AVDOCTOR_COLLECT_TIMEOUT"); ok {
		cfg.Collect.Timeout = d
	}
	if v := os.Getenv("AVDOCTOR_COLLECT_PARALLEL"); v == "true" || v == "1" {
		cfg.Collect.Parallel = true
	}
	if d, ok := envDuration("AVDOCTOR_FIX_TIMEOUT"); ok {
		cfg.Fix.Timeout = d
	}
	if v := os.Getenv("AVDOCTOR_EXPORT_PATH"); v != "" {
		cfg.Export.Path = v
	}
	if d, ok := envDuration("AVDOCTOR_WATCH_INTERVAL"); ok {
		cfg.Watch.Interval = d
	}
	if v := os.Getenv("AVDOCTOR_WATCH_TMUX"); v == "true" || v == "1" {
		cfg.Watch.Tmux = true
	}
}

func envDuration(key string) (time.Duration, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, false
	}
	return d, true
}

// LoadFromFile loads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConfigFile returns the path to the config file that would be loaded
func ConfigFile() string {
	return findConfigFile()
}

// Sample is a commented starter config written by `avdoctor config generate`.
const Sample = `# avdoctor configuration
#
# Search order: ./.avdoctor.yaml, ~/.avdoctor.yaml,
# $XDG_CONFIG_HOME/avdoctor/config.yaml, /etc/avdoctor/config.yaml.
# Every key can also be set via AVDOCTOR_* environment variables,
# e.g. AVDOCTOR_FORMAT=json or AVDOCTOR_FIX_TIMEOUT=1m.

# Output format: text, json or yaml.
format: text

# Disable colored output even on a terminal.
no_color: false

# Suppress progress and notices (findings are always printed).
quiet: false

# Show fix commands in the report.
verbose: false

collect:
  # Per-tool timeout for snapshot collection.
  timeout: 10s
  # Collect subsystems concurrently.
  parallel: false

fix:
  # Per-command timeout when applying fixes.
  timeout: 30s

export:
  # Fix script location. Empty means /tmp/avdoctor-fixes.sh.
  # path: /tmp/avdoctor-fixes.sh

watch:
  # Delay between diagnostic runs.
  interval: 30s
  # Mirror the report into a tmux session.
  tmux: false
`
