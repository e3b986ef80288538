package collect

import (
	"context"
	"strconv"
	"strings"

	"github.com/avdoctor/avdoctor/internal/toolexec"
)

// GPU is one display controller from the PCI bus.
type GPU struct {
	Address     string
	Description string
	Driver      string
}

// GPUSnapshot is the raw GPU subsystem state. The nvidia-smi fields are only
// meaningful when SMIWorking is true.
type GPUSnapshot struct {
	LspciPresent   bool
	GPUs           []GPU
	NvidiaPresent  bool
	DriverInUse    string
	SMIPresent     bool
	SMIWorking     bool
	DriverVersion  string
	TemperatureC   int
	MemUsedMiB     int
	MemTotalMiB    int
	UtilizationPct int
}

// GPUCollector probes lspci and nvidia-smi.
type GPUCollector struct {
	runner *toolexec.Runner
}

func NewGPUCollector(runner *toolexec.Runner) *GPUCollector {
	return &GPUCollector{runner: runner}
}

func (c *GPUCollector) Collect(ctx context.Context) (GPUSnapshot, error) {
	var snap GPUSnapshot

	if out, err := c.runner.Run(ctx, "lspci", "-nnk"); err == nil {
		snap.LspciPresent = true
		snap.GPUs = parseLspciGPUs(out.Stdout)
	} else if !toolexec.IsNotFound(err) {
		snap.LspciPresent = true
	}

	for _, gpu := range snap.GPUs {
		if strings.Contains(gpu.Description, "NVIDIA") {
			snap.NvidiaPresent = true
			snap.DriverInUse = gpu.Driver
			break
		}
	}
	if snap.DriverInUse == "" && len(snap.GPUs) > 0 {
		snap.DriverInUse = snap.GPUs[0].Driver
	}

	if _, err := c.runner.Look("nvidia-smi"); err == nil {
		snap.SMIPresent = true
		c.collectSMI(ctx, &snap)
	}

	return snap, nil
}

// collectSMI queries driver version and utilization in one CSV row.
// nvidia-smi exits non-zero on a driver/library mismatch; that run failure
// is recorded as SMIWorking=false rather than treated as a collect error.
func (c *GPUCollector) collectSMI(ctx context.Context, snap *GPUSnapshot) {
	out, err := c.runner.Run(ctx, "nvidia-smi",
		"--query-gpu=driver_version,temperature.gpu,memory.used,memory.total,utilization.gpu",
		"--format=csv,noheader,nounits")
	if err != nil {
		return
	}

	fields := strings.Split(firstNonEmptyLine(out.Stdout), ",")
	if len(fields) < 5 {
		return
	}
	snap.SMIWorking = true
	snap.DriverVersion = strings.TrimSpace(fields[0])
	snap.TemperatureC = atoiSafe(fields[1])
	snap.MemUsedMiB = atoiSafe(fields[2])
	snap.MemTotalMiB = atoiSafe(fields[3])
	snap.UtilizationPct = atoiSafe(fields[4])
}

// parseLspciGPUs extracts display controllers from `lspci -nnk`. A device
// line is unindented; its properties (Subsystem, Kernel driver in use,
// Kernel modules) follow indented until the next device line.
func parseLspciGPUs(out string) []GPU {
	var gpus []GPU
	current := -1
	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}
		indented := line[0] == '\t' || line[0] == ' '
		if !indented {
			current = -1
			if !isDisplayController(line) {
				continue
			}
			addr, rest, ok := strings.Cut(line, " ")
			if !ok {
				continue
			}
			desc := rest
			if _, after, ok := strings.Cut(rest, "]: "); ok {
				desc = after
			}
			gpus = append(gpus, GPU{Address: addr, Description: desc})
			current = len(gpus) - 1
			continue
		}
		if current < 0 {
			continue
		}
		if v, ok := strings.CutPrefix(strings.TrimSpace(line), "Kernel driver in use: "); ok {
			gpus[current].Driver = strings.TrimSpace(v)
		}
	}
	return gpus
}

func isDisplayController(line string) bool {
	return strings.Contains(line, "VGA compatible controller") ||
		strings.Contains(line, "3D controller") ||
		strings.Contains(line, "Display controller")
}

func atoiSafe(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
