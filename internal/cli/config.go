package cli

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/avdoctor/avdoctor/internal/config"
)

// ConfigCmd shows or manages configuration
type ConfigCmd struct {
	Show     ConfigShowCmd     `cmd:"" default:"withargs" help:"Show current configuration"`
	Path     ConfigPathCmd     `cmd:"" help:"Show configuration file path"`
	Generate ConfigGenerateCmd `cmd:"" help:"Generate sample configuration file"`
}

// ConfigShowCmd shows current configuration
type ConfigShowCmd struct{}

// Run executes the config show command
func (c *ConfigShowCmd) Run(globals *Globals) error {
	cfg := globals.Config
	if cfg == nil {
		cfg = config.Default()
	}

	switch globals.Format {
	case "json":
		enc := json.NewEncoder(globals.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	case "yaml":
		enc := yaml.NewEncoder(globals.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	}

	fmt.Fprintln(globals.Stdout, "Current Configuration:")
	fmt.Fprintln(globals.Stdout, "")
	fmt.Fprintf(globals.Stdout, "  format:   %s\n", cfg.Format)
	fmt.Fprintf(globals.Stdout, "  no_color: %v\n", cfg.NoColor)
	fmt.Fprintf(globals.Stdout, "  quiet:    %v\n", cfg.Quiet)
	fmt.Fprintf(globals.Stdout, "  verbose:  %v\n", cfg.Verbose)
	fmt.Fprintln(globals.Stdout, "")
	fmt.Fprintln(globals.Stdout, "Collect:")
	fmt.Fprintf(globals.Stdout, "  timeout:  %s\n", cfg.Collect.Timeout)
	fmt.Fprintf(globals.Stdout, "  parallel: %v\n", cfg.Collect.Parallel)
	fmt.Fprintln(globals.Stdout, "")
	fmt.Fprintln(globals.Stdout, "Fix:")
	fmt.Fprintf(globals.Stdout, "  timeout:  %s\n", cfg.Fix.Timeout)
	fmt.Fprintln(globals.Stdout, "")
	fmt.Fprintln(globals.Stdout, "Export:")
	path := cfg.Export.Path
	if path == "" {
		path = "(default)"
	}
	fmt.Fprintf(globals.Stdout, "  path:     %s\n", path)
	fmt.Fprintln(globals.Stdout, "")
	fmt.Fprintln(globals.Stdout, "Watch:")
	fmt.Fprintf(globals.Stdout, "  interval: %s\n", cfg.Watch.Interval)
	fmt.Fprintf(globals.Stdout, "  tmux:     %v\n", cfg.Watch.Tmux)

	if path := config.ConfigFile(); path != "" {
		fmt.Fprintln(globals.Stdout, "")
		fmt.Fprintf(globals.Stdout, "Loaded from: %s\n", path)
	}

	return nil
}

// ConfigPathCmd shows config file path
type ConfigPathCmd struct{}

// Run executes the config path command
func (c *ConfigPathCmd) Run(globals *Globals) error {
	path := config.ConfigFile()

	switch globals.Format {
	case "json":
		enc := json.NewEncoder(globals.Stdout)
		return enc.Encode(map[string]string{"path": path})
	case "yaml":
		enc := yaml.NewEncoder(globals.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(map[string]string{"path": path}); err != nil {
			return err
		}
		return enc.Close()
	}

	if path == "" {
		fmt.Fprintln(globals.Stdout, "No configuration file found")
		fmt.Fprintln(globals.Stdout, "")
		fmt.Fprintln(globals.Stdout, "Create one at:")
		fmt.Fprintln(globals.Stdout, "  ~/.avdoctor.yaml")
		fmt.Fprintln(globals.Stdout, "  ~/.config/avdoctor/config.yaml")
		fmt.Fprintln(globals.Stdout, "  /etc/avdoctor/config.yaml")
	} else {
		fmt.Fprintf(globals.Stdout, "Config file: %s\n", path)
	}

	return nil
}

// ConfigGenerateCmd generates a sample configuration file
type ConfigGenerateCmd struct{}

// Run executes the config generate command
func (c *ConfigGenerateCmd) Run(globals *Globals) error {
	fmt.Fprint(globals.Stdout, config.Sample)
	return nil
}
