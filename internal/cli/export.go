package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/avdoctor/avdoctor/internal/remedy"
)

// ExportCmd writes fix commands to an executable script
type ExportCmd struct {
	Output   string `short:"o" default:"${config_export_path}" help:"Script path (default ${default_export_path})"`
	Parallel bool   `default:"${config_parallel}" help:"Collect subsystems concurrently"`
}

// Run executes the export command
func (c *ExportCmd) Run(globals *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	results, _ := runDiagnosis(ctx, globals, c.Parallel)

	exporter := remedy.NewExporter(c.Output)
	path, err := exporter.Export(results)
	if err != nil {
		return outputErrorCommon(globals, "EXPORT_FAILED", err.Error(),
			"check that the script path is writable, or pass --output")
	}

	commands := 0
	for _, r := range results {
		if r.HasCommand() {
			commands++
		}
	}

	switch globals.Format {
	case "json":
		enc := json.NewEncoder(globals.Stdout)
		return enc.Encode(map[string]interface{}{
			"path":     path,
			"commands": commands,
		})
	case "yaml":
		enc := yaml.NewEncoder(globals.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(map[string]interface{}{
			"path":     path,
			"commands": commands,
		}); err != nil {
			return err
		}
		return enc.Close()
	}

	// Text output is just the path, for piping into an editor or shell.
	if _, err := fmt.Fprintln(globals.Stdout, path); err != nil {
		return err
	}
	notice(globals, "%d fix command(s) exported; review before running.", commands)
	return nil
}
