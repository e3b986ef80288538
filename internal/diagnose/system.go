package diagnose

import (
	"fmt"

	"github.com/avdoctor/avdoctor/internal/collect"
	"github.com/avdoctor/avdoctor/internal/domain"
)

const (
	// lowDiskFreePercent is the root filesystem threshold below which
	// recordings start failing mid-session.
	lowDiskFreePercent = 10
	// lowMemAvailableKiB is 1 GiB.
	lowMemAvailableKiB = 1 << 20
)

// System evaluates host identity and resource headroom.
func System(snap collect.SystemSnapshot) []domain.Result {
	results := []domain.Result{
		domain.Must(domain.CategorySystem, domain.SeverityInfo,
			fmt.Sprintf("Linux %s on %s (%s)", snap.Kernel, snap.Distro, snap.Desktop)),
	}

	if snap.AudioServer == "Unknown" {
		results = append(results,
			domain.Must(domain.CategorySystem, domain.SeverityWarning, "Audio server could not be identified").
				WithFix("Install PipeWire", "sudo apt-get install -y pipewire pipewire-pulse wireplumber"))
	}

	if snap.DiskFreePercent >= 0 && snap.DiskFreePercent < lowDiskFreePercent {
		results = append(results,
			domain.Must(domain.CategorySystem, domain.SeverityWarning,
				fmt.Sprintf("Low disk space on / (%d%% free)", snap.DiskFreePercent)).
				WithFix("Clear the package cache", "sudo apt-get clean"))
	}

	if snap.MemAvailableKiB > 0 && snap.MemAvailableKiB < lowMemAvailableKiB {
		results = append(results,
			domain.Must(domain.CategorySystem, domain.SeverityWarning,
				fmt.Sprintf("Low available memory (%d MiB)", snap.MemAvailableKiB/1024)).
				WithFix("Close unused applications before recording", ""))
	}

	return results
}
