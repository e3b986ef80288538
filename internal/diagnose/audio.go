// Package diagnose turns collected snapshots into classified findings.
// Rule functions are pure: same snapshot in, same results out, emission
// order preserved end to end.
package diagnose

import (
	"fmt"

	"github.com/avdoctor/avdoctor/internal/collect"
	"github.com/avdoctor/avdoctor/internal/domain"
)

// Audio evaluates the audio snapshot. A muted or silent default sink is the
// most common "no sound in OBS" cause, so those findings lead.
func Audio(snap collect.AudioSnapshot) []domain.Result {
	var results []domain.Result
	clear := true

	if snap.PipeWireServiceActive != nil && !*snap.PipeWireServiceActive {
		clear = false
		results = append(results,
			domain.Must(domain.CategoryAudio, domain.SeverityCritical, "PipeWire service is not running").
				WithFix("Restart the PipeWire user services", "systemctl --user restart pipewire pipewire-pulse"))
	}

	if !snap.PactlPresent {
		results = append(results,
			domain.Must(domain.CategoryAudio, domain.SeverityWarning, "pactl not found; audio devices cannot be inspected").
				WithFix("Install the PulseAudio command line utilities", "sudo apt-get install -y pulseaudio-utils"))
		return results
	}

	if snap.SinkCount == 0 {
		clear = false
		results = append(results,
			domain.Must(domain.CategoryAudio, domain.SeverityCritical, "No audio output devices detected").
				WithFix("Restart PipeWire to rescan audio devices", "systemctl --user restart pipewire pipewire-pulse"))
	} else {
		if snap.DefaultSink.Muted {
			clear = false
			results = append(results,
				domain.Must(domain.CategoryAudio, domain.SeverityCritical, "Audio muted").
					WithFix("Unmute audio", "pactl set-sink-mute @DEFAULT_SINK@ 0"))
		}
		if snap.DefaultSink.VolumePercent == 0 {
			clear = false
			results = append(results,
				domain.Must(domain.CategoryAudio, domain.SeverityWarning, "Output volume is at 0%").
					WithFix("Raise the output volume", "pactl set-sink-volume @DEFAULT_SINK@ 70%"))
		}
	}

	if snap.SourceCount > 0 && snap.DefaultSource.Muted {
		clear = false
		results = append(results,
			domain.Must(domain.CategoryAudio, domain.SeverityWarning, "Microphone muted").
				WithFix("Unmute the default microphone", "pactl set-source-mute @DEFAULT_SOURCE@ 0"))
	}

	if clear {
		results = append(results,
			domain.Must(domain.CategoryAudio, domain.SeveritySuccess,
				fmt.Sprintf("Audio server %s running", snap.ServerName)))
	}
	return results
}
