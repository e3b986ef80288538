package diagnose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdoctor/avdoctor/internal/collect"
	"github.com/avdoctor/avdoctor/internal/domain"
)

func healthySystem() collect.SystemSnapshot {
	return collect.SystemSnapshot{
		Kernel:          "6.8.0-45-generic",
		Distro:          "Ubuntu 24.04.1 LTS",
		Desktop:         "GNOME",
		AudioServer:     "PipeWire",
		NumCPU:          16,
		MemTotalKiB:     32 << 20,
		MemAvailableKiB: 16 << 20,
		Load1:           0.5,
		DiskFreePercent: 45,
	}
}

func TestSystemHealthy(t *testing.T) {
	results := System(healthySystem())
	require.Len(t, results, 1)
	assert.Equal(t, domain.SeverityInfo, results[0].Severity)
	assert.Equal(t, "Linux 6.8.0-45-generic on Ubuntu 24.04.1 LTS (GNOME)", results[0].Message)
}

func TestSystemLowDisk(t *testing.T) {
	snap := healthySystem()
	snap.DiskFreePercent = 4

	results := System(snap)
	require.Len(t, results, 2)
	assert.Equal(t, domain.SeverityWarning, results[1].Severity)
	assert.Equal(t, "Low disk space on / (4% free)", results[1].Message)
	assert.Equal(t, "sudo apt-get clean", results[1].Command)
}

func TestSystemUnknownDiskNotFlagged(t *testing.T) {
	snap := healthySystem()
	snap.DiskFreePercent = -1

	results := System(snap)
	assert.Len(t, results, 1)
}

func TestSystemLowMemory(t *testing.T) {
	snap := healthySystem()
	snap.MemAvailableKiB = 512 << 10 // 512 MiB

	results := System(snap)
	require.Len(t, results, 2)
	assert.Equal(t, domain.SeverityWarning, results[1].Severity)
	assert.Equal(t, "Low available memory (512 MiB)", results[1].Message)
	assert.NotEmpty(t, results[1].Fix)
	assert.False(t, results[1].HasCommand())
}

func TestSystemUnknownAudioServer(t *testing.T) {
	snap := healthySystem()
	snap.AudioServer = "Unknown"

	results := System(snap)
	require.Len(t, results, 2)
	assert.Equal(t, domain.SeverityWarning, results[1].Severity)
	assert.Equal(t, "Audio server could not be identified", results[1].Message)
	assert.Contains(t, results[1].Command, "pipewire")
}
