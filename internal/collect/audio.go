// Package collect probes the host for raw subsystem state. Collectors are
// read-only and degrade instead of failing: a missing tool leaves zero
// values and presence flags for the diagnosis rules to interpret.
package collect

import (
	"context"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/avdoctor/avdoctor/internal/toolexec"
)

// Sink is the state of one PulseAudio/PipeWire output device.
type Sink struct {
	Name          string
	Muted         bool
	VolumePercent int
	State         string
}

// Source is the state of one input device. Sink monitors are excluded.
type Source struct {
	Name          string
	Muted         bool
	VolumePercent int
}

// AudioSnapshot is the raw audio subsystem state.
type AudioSnapshot struct {
	PactlPresent  bool
	ServerName    string
	ServerVersion string
	// PipeWireServiceActive is nil when systemctl is unavailable.
	PipeWireServiceActive *bool
	DefaultSink           Sink
	DefaultSource         Source
	SinkCount             int
	SourceCount           int
}

// PipeWire reports whether the audio server is PipeWire (typically exposed
// through its PulseAudio compatibility layer).
func (s AudioSnapshot) PipeWire() bool {
	return strings.Contains(s.ServerName, "PipeWire")
}

// AudioCollector probes pactl and the user-session PipeWire unit.
type AudioCollector struct {
	runner *toolexec.Runner
}

func NewAudioCollector(runner *toolexec.Runner) *AudioCollector {
	return &AudioCollector{runner: runner}
}

func (c *AudioCollector) Collect(ctx context.Context) (AudioSnapshot, error) {
	snap := AudioSnapshot{ServerName: "Unknown"}

	snap.PipeWireServiceActive = unitActive(ctx, c.runner, "pipewire", true)

	if _, err := c.runner.Look("pactl"); err != nil {
		return snap, nil
	}
	snap.PactlPresent = true

	if out, err := c.runner.Run(ctx, "pactl", "info"); err == nil {
		for _, line := range strings.Split(out.Stdout, "\n") {
			if v, ok := strings.CutPrefix(line, "Server Name: "); ok {
				snap.ServerName = strings.TrimSpace(v)
			}
			if v, ok := strings.CutPrefix(line, "Server Version: "); ok {
				snap.ServerVersion = strings.TrimSpace(v)
			}
		}
	}

	defaultSink := ""
	if out, err := c.runner.Run(ctx, "pactl", "get-default-sink"); err == nil {
		defaultSink = strings.TrimSpace(out.Stdout)
	}
	defaultSource := ""
	if out, err := c.runner.Run(ctx, "pactl", "get-default-source"); err == nil {
		defaultSource = strings.TrimSpace(out.Stdout)
	}

	if out, err := c.runner.Run(ctx, "pactl", "--format=json", "list", "sinks"); err == nil {
		gjson.Parse(out.Stdout).ForEach(func(_, sink gjson.Result) bool {
			snap.SinkCount++
			name := sink.Get("name").String()
			// Fall back to the first sink when get-default-sink gave nothing.
			if name == defaultSink || (defaultSink == "" && snap.SinkCount == 1) {
				snap.DefaultSink = Sink{
					Name:          name,
					Muted:         sink.Get("mute").Bool(),
					VolumePercent: volumePercent(sink),
					State:         sink.Get("state").String(),
				}
			}
			return true
		})
	}

	if out, err := c.runner.Run(ctx, "pactl", "--format=json", "list", "sources"); err == nil {
		gjson.Parse(out.Stdout).ForEach(func(_, src gjson.Result) bool {
			name := src.Get("name").String()
			// Sink monitors are loopbacks, not microphones.
			if strings.HasSuffix(name, ".monitor") {
				return true
			}
			snap.SourceCount++
			if name == defaultSource || (defaultSource == "" && snap.SourceCount == 1) {
				snap.DefaultSource = Source{
					Name:          name,
					Muted:         src.Get("mute").Bool(),
					VolumePercent: volumePercent(src),
				}
			}
			return true
		})
	}

	return snap, nil
}

// volumePercent reads the first channel's value_percent, e.g. "100%".
func volumePercent(device gjson.Result) int {
	pct := -1
	device.Get("volume").ForEach(func(_, channel gjson.Result) bool {
		v := strings.TrimSuffix(strings.TrimSpace(channel.Get("value_percent").String()), "%")
		if n, err := strconv.Atoi(v); err == nil {
			pct = n
		}
		return false
	})
	return pct
}
