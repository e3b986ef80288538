package diagnose

import (
	"fmt"

	"github.com/avdoctor/avdoctor/internal/collect"
	"github.com/avdoctor/avdoctor/internal/domain"
)

// GPU evaluates the GPU snapshot. NVIDIA driver state gets the most
// attention: nouveau and a driver/library mismatch are the two states that
// break NVENC recording outright.
func GPU(snap collect.GPUSnapshot) []domain.Result {
	if !snap.LspciPresent {
		return []domain.Result{
			domain.Must(domain.CategoryGPU, domain.SeverityWarning, "lspci not found; GPU hardware cannot be enumerated").
				WithFix("Install the PCI utilities", "sudo apt-get install -y pciutils"),
		}
	}

	var results []domain.Result

	if !snap.NvidiaPresent {
		if len(snap.GPUs) == 0 {
			results = append(results,
				domain.Must(domain.CategoryGPU, domain.SeverityInfo, "No display controllers found"))
		} else {
			results = append(results,
				domain.Must(domain.CategoryGPU, domain.SeverityInfo,
					fmt.Sprintf("No discrete NVIDIA GPU detected (%s)", snap.GPUs[0].Description)))
		}
		return results
	}

	if snap.DriverInUse == "nouveau" {
		results = append(results,
			domain.Must(domain.CategoryGPU, domain.SeverityWarning, "NVIDIA GPU is using the nouveau driver; NVENC is unavailable").
				WithFix("Install the proprietary NVIDIA driver", "sudo ubuntu-drivers autoinstall"))
		return results
	}

	switch {
	case !snap.SMIPresent:
		results = append(results,
			domain.Must(domain.CategoryGPU, domain.SeverityCritical, "NVIDIA GPU detected but nvidia-smi is missing").
				WithFix("Install the NVIDIA driver and utilities", "sudo ubuntu-drivers autoinstall"))
	case !snap.SMIWorking:
		// Typical after a driver upgrade without a reboot: userspace and
		// kernel module versions no longer match.
		results = append(results,
			domain.Must(domain.CategoryGPU, domain.SeverityCritical, "nvidia-smi is failing (driver/library version mismatch)").
				WithFix("Reboot to load the updated NVIDIA kernel module", ""))
	default:
		results = append(results,
			domain.Must(domain.CategoryGPU, domain.SeveritySuccess,
				fmt.Sprintf("NVIDIA driver %s healthy", snap.DriverVersion)),
			domain.Must(domain.CategoryGPU, domain.SeverityInfo,
				fmt.Sprintf("GPU at %d%% utilization, %d/%d MiB memory, %d°C",
					snap.UtilizationPct, snap.MemUsedMiB, snap.MemTotalMiB, snap.TemperatureC)))
	}

	return results
}
