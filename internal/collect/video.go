package collect

import (
	"context"
	"strings"

	"github.com/avdoctor/avdoctor/internal/toolexec"
)

// VideoSnapshot is the raw video subsystem state: hardware acceleration,
// capture devices and the OBS install.
type VideoSnapshot struct {
	VainfoPresent  bool
	VAAPIWorking   bool
	VADriver       string
	VAProfileCount int
	V4L2Present    bool
	CaptureDevices []string
	OBSPresent     bool
	OBSVersion     string
}

// VideoCollector probes vainfo, v4l2-ctl and obs.
type VideoCollector struct {
	runner *toolexec.Runner
}

func NewVideoCollector(runner *toolexec.Runner) *VideoCollector {
	return &VideoCollector{runner: runner}
}

func (c *VideoCollector) Collect(ctx context.Context) (VideoSnapshot, error) {
	var snap VideoSnapshot

	if _, err := c.runner.Look("vainfo"); err == nil {
		snap.VainfoPresent = true
		out, err := c.runner.Run(ctx, "vainfo")
		snap.VAAPIWorking = err == nil
		for _, line := range strings.Split(out.Stdout, "\n") {
			if i := strings.Index(line, "Driver version: "); i >= 0 {
				snap.VADriver = strings.TrimSpace(line[i+len("Driver version: "):])
			}
			if strings.Contains(line, "VAProfile") {
				snap.VAProfileCount++
			}
		}
	}

	if _, err := c.runner.Look("v4l2-ctl"); err == nil {
		snap.V4L2Present = true
		if out, err := c.runner.Run(ctx, "v4l2-ctl", "--list-devices"); err == nil {
			snap.CaptureDevices = parseV4L2Devices(out.Stdout)
		}
	}

	if _, err := c.runner.Look("obs"); err == nil {
		snap.OBSPresent = true
		if out, err := c.runner.Run(ctx, "obs", "--version"); err == nil {
			snap.OBSVersion = firstNonEmptyLine(out.Stdout)
		}
	}

	return snap, nil
}

// parseV4L2Devices extracts device titles from `v4l2-ctl --list-devices`.
// Titles are the unindented lines; the indented /dev/video* paths under
// each title are skipped.
func parseV4L2Devices(out string) []string {
	var devices []string
	for _, line := range strings.Split(out, "\n") {
		if line == "" || line[0] == '\t' || line[0] == ' ' {
			continue
		}
		devices = append(devices, strings.TrimSuffix(strings.TrimSpace(line), ":"))
	}
	return devices
}

func firstNonEmptyLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
