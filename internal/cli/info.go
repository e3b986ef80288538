package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/avdoctor/avdoctor/internal/diagnose"
)

// InfoCmd shows host system information
type InfoCmd struct{}

// Run executes the info command
func (c *InfoCmd) Run(globals *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	info := diagnose.HostInfo(ctx, newRunner(globals))

	switch globals.Format {
	case "json":
		enc := json.NewEncoder(globals.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	case "yaml":
		enc := yaml.NewEncoder(globals.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(info); err != nil {
			return err
		}
		return enc.Close()
	}

	writeInfoField(globals, "Kernel", info.Kernel)
	writeInfoField(globals, "Distro", info.Distro)
	writeInfoField(globals, "Desktop", info.Desktop)
	writeInfoField(globals, "Audio server", info.AudioServer)
	if info.GPUDriver != "" {
		writeInfoField(globals, "GPU driver", info.GPUDriver)
	}
	return nil
}

func writeInfoField(globals *Globals, label, value string) {
	if value == "" {
		value = "unknown"
	}
	fmt.Fprintf(globals.Stdout, "%-13s %s\n", label+":", value)
}
