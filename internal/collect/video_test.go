package collect

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoCollect(t *testing.T) {
	stubDir := t.TempDir()
	stubTool(t, stubDir, "vainfo", `#!/bin/sh
echo 'vainfo: VA-API version: 1.20 (libva 2.20.0)
vainfo: Driver version: Intel iHD driver for Intel(R) Gen Graphics - 23.4.3 ()
vainfo: Supported profile and entrypoints
      VAProfileH264Main               : VAEntrypointVLD
      VAProfileH264Main               : VAEntrypointEncSlice
      VAProfileHEVCMain               : VAEntrypointVLD'
`)
	stubTool(t, stubDir, "v4l2-ctl", `#!/bin/sh
echo 'Integrated Camera: Integrated C (usb-0000:00:14.0-8):
	/dev/video0
	/dev/video1
	/dev/media0

Elgato Cam Link 4K (usb-0000:0a:00.3-2):
	/dev/video2'
`)
	stubTool(t, stubDir, "obs", `#!/bin/sh
echo 'OBS Studio - 30.2.3 (linux)'
`)
	t.Setenv("PATH", stubDir)

	snap, err := NewVideoCollector(newTestRunner()).Collect(context.Background())
	require.NoError(t, err)

	assert.True(t, snap.VainfoPresent)
	assert.True(t, snap.VAAPIWorking)
	assert.Equal(t, "Intel iHD driver for Intel(R) Gen Graphics - 23.4.3 ()", snap.VADriver)
	assert.Equal(t, 3, snap.VAProfileCount)

	assert.True(t, snap.V4L2Present)
	assert.Equal(t, []string{
		"Integrated Camera: Integrated C (usb-0000:00:14.0-8)",
		"Elgato Cam Link 4K (usb-0000:0a:00.3-2)",
	}, snap.CaptureDevices)

	assert.True(t, snap.OBSPresent)
	assert.Equal(t, "OBS Studio - 30.2.3 (linux)", snap.OBSVersion)
}

func TestVideoCollectVainfoBroken(t *testing.T) {
	stubDir := t.TempDir()
	stubTool(t, stubDir, "vainfo", `#!/bin/sh
echo 'libva error: vaGetDriverNames() failed with unknown libva error' >&2
exit 1
`)
	t.Setenv("PATH", stubDir)

	snap, err := NewVideoCollector(newTestRunner()).Collect(context.Background())
	require.NoError(t, err)

	assert.True(t, snap.VainfoPresent)
	assert.False(t, snap.VAAPIWorking)
	assert.Zero(t, snap.VAProfileCount)
	assert.False(t, snap.V4L2Present)
	assert.False(t, snap.OBSPresent)
}

func TestParseV4L2Devices(t *testing.T) {
	assert.Empty(t, parseV4L2Devices(""))

	devices := parseV4L2Devices("Cam (usb-1):\n\t/dev/video0\n")
	assert.Equal(t, []string{"Cam (usb-1)"}, devices)
}
