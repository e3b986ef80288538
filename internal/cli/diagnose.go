package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/avdoctor/avdoctor/internal/diagnose"
	"github.com/avdoctor/avdoctor/internal/domain"
	"github.com/avdoctor/avdoctor/internal/remedy"
	"github.com/avdoctor/avdoctor/internal/report"
	"github.com/avdoctor/avdoctor/internal/toolexec"
)

// DiagnoseCmd runs all diagnostics and prints the report
type DiagnoseCmd struct {
	Parallel bool `short:"p" default:"${config_parallel}" help:"Collect subsystems concurrently"`
	Export   bool `short:"e" help:"Also write the fix script"`
}

// Run executes the diagnose command
func (c *DiagnoseCmd) Run(globals *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	results, info := runDiagnosis(ctx, globals, c.Parallel)

	if err := renderReport(globals, info, results); err != nil {
		return outputErrorCommon(globals, "RENDER_FAILED", err.Error())
	}

	if c.Export {
		exporter := remedy.NewExporter(globals.Config.Export.Path)
		path, err := exporter.Export(results)
		if err != nil {
			return outputErrorCommon(globals, "EXPORT_FAILED", err.Error(),
				"check that the script path is writable, or set export.path in the config")
		}
		notice(globals, "Fix script written to %s", path)
	}

	// Findings are report content, not process failures: exit 0 either way.
	return nil
}

// newRunner builds the shared external tool runner from global settings.
func newRunner(globals *Globals) *toolexec.Runner {
	return toolexec.NewRunner(globals.Logger, globals.Config.Collect.Timeout)
}

// runDiagnosis collects and diagnoses every subsystem. It never fails:
// subsystem errors surface as critical findings in the result list.
func runDiagnosis(ctx context.Context, globals *Globals, parallel bool) ([]domain.Result, domain.SystemInfo) {
	agg := diagnose.NewAggregator(newRunner(globals), globals.Logger)
	agg.Parallel = parallel
	results := agg.Run(ctx)
	return results, agg.Info()
}

// renderReport writes findings in the selected output format.
func renderReport(globals *Globals, info domain.SystemInfo, results []domain.Result) error {
	switch globals.Format {
	case "json", "yaml":
		return report.Encode(globals.Stdout, globals.Format, report.NewEnvelope(info, results))
	default:
		color := !globals.NoColor && report.ColorEnabled(globals.Stdout)
		return report.NewRenderer(globals.Stdout, color, globals.Verbose).Render(info, results)
	}
}
