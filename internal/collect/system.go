package collect

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/avdoctor/avdoctor/internal/domain"
	"github.com/avdoctor/avdoctor/internal/toolexec"
)

// SystemSnapshot is the raw host state: identity plus the resource levels
// the system rules threshold against.
type SystemSnapshot struct {
	Kernel  string
	Distro  string
	Desktop string
	// AudioServer is "PipeWire", "PulseAudio" or "Unknown".
	AudioServer     string
	NumCPU          int
	MemTotalKiB     int64
	MemAvailableKiB int64
	Load1           float64
	// DiskFreePercent is for the root filesystem; -1 when df was unusable.
	DiskFreePercent int
}

// Info converts the snapshot into the report header identity block.
// GPUDriver is filled in by the caller from the gpu snapshot.
func (s SystemSnapshot) Info() domain.SystemInfo {
	return domain.SystemInfo{
		Kernel:      s.Kernel,
		Distro:      s.Distro,
		Desktop:     s.Desktop,
		AudioServer: s.AudioServer,
	}
}

// SystemCollector probes host identity and resource levels. The proc and
// os-release paths are fields so tests can point them at fixtures.
type SystemCollector struct {
	runner        *toolexec.Runner
	procPath      string
	osReleasePath string
}

func NewSystemCollector(runner *toolexec.Runner) *SystemCollector {
	return &SystemCollector{
		runner:        runner,
		procPath:      "/proc",
		osReleasePath: "/etc/os-release",
	}
}

func (c *SystemCollector) Collect(ctx context.Context) (SystemSnapshot, error) {
	snap := SystemSnapshot{
		Kernel:          "unknown",
		Distro:          "unknown",
		Desktop:         desktopFromEnv(),
		AudioServer:     c.audioServer(ctx),
		NumCPU:          runtime.NumCPU(),
		DiskFreePercent: -1,
	}

	if out, err := c.runner.Run(ctx, "uname", "-r"); err == nil && out.Stdout != "" {
		snap.Kernel = out.Stdout
	}

	if out, err := c.runner.Run(ctx, "lsb_release", "-ds"); err == nil && out.Stdout != "" {
		snap.Distro = strings.Trim(out.Stdout, `"`)
	} else if pretty := prettyNameFromOSRelease(c.osReleasePath); pretty != "" {
		snap.Distro = pretty
	}

	snap.MemTotalKiB, snap.MemAvailableKiB = readMeminfo(filepath.Join(c.procPath, "meminfo"))
	snap.Load1 = readLoad1(filepath.Join(c.procPath, "loadavg"))

	if out, err := c.runner.Run(ctx, "df", "-P", "/"); err == nil {
		snap.DiskFreePercent = parseDFFreePercent(out.Stdout)
	}

	return snap, nil
}

// audioServer identifies the running audio server. pactl reports PipeWire
// through its PulseAudio compatibility layer; without pactl, an active
// pipewire user unit is still conclusive.
func (c *SystemCollector) audioServer(ctx context.Context) string {
	if out, err := c.runner.Run(ctx, "pactl", "info"); err == nil {
		for _, line := range strings.Split(out.Stdout, "\n") {
			name, ok := strings.CutPrefix(line, "Server Name: ")
			if !ok {
				continue
			}
			if strings.Contains(name, "PipeWire") {
				return "PipeWire"
			}
			if strings.Contains(name, "PulseAudio") {
				return "PulseAudio"
			}
			return strings.TrimSpace(name)
		}
	}
	if active := unitActive(ctx, c.runner, "pipewire", true); active != nil && *active {
		return "PipeWire"
	}
	return "Unknown"
}

func desktopFromEnv() string {
	if v := os.Getenv("XDG_CURRENT_DESKTOP"); v != "" {
		return v
	}
	if v := os.Getenv("DESKTOP_SESSION"); v != "" {
		return v
	}
	return "unknown"
}

func prettyNameFromOSRelease(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(data), "\n") {
		if v, ok := strings.CutPrefix(line, "PRETTY_NAME="); ok {
			return strings.Trim(v, `"`)
		}
	}
	return ""
}

func readMeminfo(path string) (totalKiB, availableKiB int64) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, 0
	}
	for _, line := range strings.Split(string(data), "\n") {
		switch {
		case strings.HasPrefix(line, "MemTotal:"):
			totalKiB = meminfoKiB(line)
		case strings.HasPrefix(line, "MemAvailable:"):
			availableKiB = meminfoKiB(line)
		}
	}
	return totalKiB, availableKiB
}

// meminfoKiB parses a "MemTotal:       32694952 kB" line.
func meminfoKiB(line string) int64 {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0
	}
	n, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func readLoad1(path string) float64 {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return 0
	}
	load, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0
	}
	return load
}

// parseDFFreePercent reads the Capacity column of POSIX `df -P /` output.
func parseDFFreePercent(out string) int {
	lines := strings.Split(out, "\n")
	if len(lines) < 2 {
		return -1
	}
	fields := strings.Fields(lines[1])
	if len(fields) < 5 {
		return -1
	}
	used, err := strconv.Atoi(strings.TrimSuffix(fields[4], "%"))
	if err != nil {
		return -1
	}
	return 100 - used
}
