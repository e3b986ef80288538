package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/avdoctor/avdoctor/internal/cli"
	"github.com/avdoctor/avdoctor/internal/config"
	"github.com/avdoctor/avdoctor/internal/remedy"
	"github.com/avdoctor/avdoctor/internal/tmux"
)

func main() {
	// A local .env can supply AVDOCTOR_* overrides before config loading.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.Default()
	}

	var c cli.CLI

	// Config supplies flag defaults; explicit flags win
	vars := kong.Vars{
		"config_format":         cfg.Format,
		"config_parallel":       strconv.FormatBool(cfg.Collect.Parallel),
		"config_fix_timeout":    cfg.Fix.Timeout.String(),
		"config_watch_interval": cfg.Watch.Interval.String(),
		"config_watch_tmux":     strconv.FormatBool(cfg.Watch.Tmux),
		"config_export_path":    cfg.Export.Path,
		"default_export_path":   remedy.DefaultScriptPath,
		"default_tmux_session":  tmux.DefaultSessionName,
	}

	ctx := kong.Parse(&c,
		kong.Name("avdoctor"),
		kong.Description("Diagnose and fix audio/video issues on Linux AV workstations\n\nRunning avdoctor with no arguments prints the full diagnostic report"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		vars,
	)

	logger := newLogger(c.Verbose || cfg.Verbose)
	defer func() { _ = logger.Sync() }()

	globals := cli.NewGlobalsWithConfig(&c, cfg, logger)
	if err := ctx.Run(globals); err != nil {
		os.Exit(1)
	}
}

// newLogger builds the stderr console logger. The human report owns stdout,
// so diagnostics stay on stderr at warn level unless verbose is set.
func newLogger(verbose bool) *zap.Logger {
	level := zap.WarnLevel
	if verbose {
		level = zap.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		level,
	)
	return zap.New(core)
}
