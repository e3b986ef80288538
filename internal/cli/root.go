package cli

import (
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/avdoctor/avdoctor/internal/config"
)

// CLI is the root command structure for avdoctor
type CLI struct {
	// Global flags
	Format  string `short:"f" enum:"text,json,yaml" default:"${config_format}" help:"Output format"`
	Quiet   bool   `short:"q" help:"Suppress progress and notices (findings are always printed)"`
	Verbose bool   `short:"v" help:"Show fix commands in the report and debug logging"`
	NoColor bool   `help:"Disable colored output"`

	// Commands
	Diagnose   DiagnoseCmd   `cmd:"" default:"1" help:"Run all diagnostics and print the report"`
	Fix        FixCmd        `cmd:"" help:"Run diagnostics and apply fix commands"`
	Export     ExportCmd     `cmd:"" help:"Write fix commands to an executable script"`
	Info       InfoCmd       `cmd:"" help:"Show host system information"`
	Watch      WatchCmd      `cmd:"" help:"Re-run diagnostics on an interval"`
	Config     ConfigCmd     `cmd:"" help:"Show or manage configuration"`
	Version    VersionCmd    `cmd:"" help:"Show version information"`
	Completion CompletionCmd `cmd:"" help:"Generate shell completions"`
}

// Globals holds shared state for all commands
type Globals struct {
	Format  string
	Quiet   bool
	Verbose bool
	NoColor bool
	Stdout  io.Writer
	Stderr  io.Writer
	Config  *config.Config
	Logger  *zap.Logger
}

// NewGlobals creates a new Globals instance from CLI flags
func NewGlobals(cli *CLI) *Globals {
	return NewGlobalsWithConfig(cli, config.Default(), zap.NewNop())
}

// NewGlobalsWithConfig creates a new Globals instance with config fallbacks
func NewGlobalsWithConfig(cli *CLI, cfg *config.Config, logger *zap.Logger) *Globals {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	g := &Globals{
		Format:  cli.Format,
		Quiet:   cli.Quiet,
		Verbose: cli.Verbose,
		NoColor: cli.NoColor,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Config:  cfg,
		Logger:  logger,
	}

	// Config supplies values that weren't set via CLI flags
	if !cli.Quiet && cfg.Quiet {
		g.Quiet = true
	}
	if !cli.Verbose && cfg.Verbose {
		g.Verbose = true
	}
	if !cli.NoColor && cfg.NoColor {
		g.NoColor = true
	}

	return g
}

// Debug logs a debug message if verbose mode is enabled
func (g *Globals) Debug(format string, args ...interface{}) {
	if g.Verbose {
		g.Logger.Sugar().Debugf(format, args...)
	}
}

// VersionCmd shows version information
type VersionCmd struct{}

// Run executes the version command
func (v *VersionCmd) Run(globals *Globals) error {
	if globals.Format == "json" || globals.Format == "yaml" {
		_, err := io.WriteString(globals.Stdout, `{"version":"`+Version+`","commit":"`+Commit+`"}`+"\n")
		return err
	}
	_, err := io.WriteString(globals.Stdout, "avdoctor version "+Version+" ("+Commit+")\n")
	return err
}

// Version information (set at build time)
var (
	Version = "dev"
	Commit  = "none"
)
