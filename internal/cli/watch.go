package cli

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/avdoctor/avdoctor/internal/report"
	"github.com/avdoctor/avdoctor/internal/tmux"
)

// WatchCmd re-runs diagnostics on an interval
type WatchCmd struct {
	Interval time.Duration `short:"i" default:"${config_watch_interval}" help:"Delay between diagnostic runs"`
	Parallel bool          `default:"${config_parallel}" help:"Collect subsystems concurrently"`
	Tmux     bool          `default:"${config_watch_tmux}" help:"Mirror the report into a tmux session"`
	Session  string        `help:"Custom tmux session name (default ${default_tmux_session})"`

	clk clock.Clock
}

// Run executes the watch command
func (c *WatchCmd) Run(globals *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return c.watch(ctx, globals)
}

func (c *WatchCmd) watch(ctx context.Context, globals *Globals) error {
	if globals.Format != "text" {
		return outputErrorCommon(globals, "INVALID_FLAGS", "watch supports text output only",
			"use `avdoctor diagnose --format json` for machine-readable runs")
	}

	interval := c.Interval
	if interval <= 0 {
		interval = globals.Config.Watch.Interval
	}

	clk := c.clk
	if clk == nil {
		clk = clock.New()
	}

	sessionName := tmux.DefaultSessionName
	if c.Session != "" {
		sessionName = tmux.SanitizeSessionName(c.Session)
	}

	om, err := tmux.NewOutputManager(c.Tmux, globals.Stdout, &tmux.Config{SessionName: sessionName})
	if err != nil {
		return outputErrorCommon(globals, "TMUX_FAILED", err.Error())
	}
	defer om.Cleanup()

	if c.Tmux && !om.IsTmuxMode() {
		notice(globals, "tmux unavailable, writing to stdout")
	}
	if om.IsTmuxMode() {
		notice(globals, "Mirroring into %s", om.ModeString())
		notice(globals, "Attach with: %s", om.AttachCommand())
	}
	notice(globals, "Running diagnostics every %s, press Ctrl+C to stop", interval)

	// Styling goes through tmux echo untouched, so only color direct output.
	color := false
	if !om.IsTmuxMode() {
		color = !globals.NoColor && report.ColorEnabled(globals.Stdout)
	}
	renderer := report.NewRenderer(om.Writer(), color, globals.Verbose)

	ticker := clk.Ticker(interval)
	defer ticker.Stop()

	for run := 1; ; run++ {
		results, info := runDiagnosis(ctx, globals, c.Parallel)
		if ctx.Err() != nil {
			return nil
		}

		if om.IsTmuxMode() {
			if err := om.TmuxManager().ClearPaneWithBanner(fmt.Sprintf("diagnostic run %d", run)); err != nil {
				notice(globals, "tmux pane clear failed: %v", err)
			}
		} else if run > 1 {
			fmt.Fprintln(om.Writer(), strings.Repeat("─", 44))
		}

		if err := renderer.Render(info, results); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
