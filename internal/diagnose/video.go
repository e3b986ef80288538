package diagnose

import (
	"fmt"

	"github.com/avdoctor/avdoctor/internal/collect"
	"github.com/avdoctor/avdoctor/internal/domain"
)

// Video evaluates hardware acceleration, capture devices and the OBS
// install. Everything here is advisory for recording quality rather than
// fatal, so severities stay at warning and below.
func Video(snap collect.VideoSnapshot) []domain.Result {
	var results []domain.Result

	switch {
	case !snap.VainfoPresent:
		results = append(results,
			domain.Must(domain.CategoryVideo, domain.SeverityWarning, "vainfo not found; hardware video acceleration cannot be verified").
				WithFix("Install the VA-API utilities", "sudo apt-get install -y libva-utils"))
	case !snap.VAAPIWorking:
		results = append(results,
			domain.Must(domain.CategoryVideo, domain.SeverityWarning, "VA-API is not working; encoding will fall back to software").
				WithFix("Install the VA-API driver for your GPU", "sudo apt-get install -y intel-media-va-driver"))
	default:
		results = append(results,
			domain.Must(domain.CategoryVideo, domain.SeveritySuccess,
				fmt.Sprintf("Hardware video acceleration available (%d profiles)", snap.VAProfileCount)))
	}

	switch {
	case !snap.V4L2Present:
		results = append(results,
			domain.Must(domain.CategoryVideo, domain.SeverityInfo, "v4l2-ctl not found; capture devices cannot be listed").
				WithFix("Install the video4linux utilities", "sudo apt-get install -y v4l-utils"))
	case len(snap.CaptureDevices) == 0:
		results = append(results,
			domain.Must(domain.CategoryVideo, domain.SeverityInfo, "No video capture devices detected"))
	default:
		results = append(results,
			domain.Must(domain.CategoryVideo, domain.SeveritySuccess,
				fmt.Sprintf("%d video capture device(s) detected", len(snap.CaptureDevices))))
	}

	if !snap.OBSPresent {
		results = append(results,
			domain.Must(domain.CategoryVideo, domain.SeverityInfo, "OBS Studio is not installed").
				WithFix("Install OBS Studio", "sudo apt-get install -y obs-studio"))
	} else {
		msg := "OBS Studio installed"
		if snap.OBSVersion != "" {
			msg = fmt.Sprintf("OBS Studio installed (%s)", snap.OBSVersion)
		}
		results = append(results, domain.Must(domain.CategoryVideo, domain.SeveritySuccess, msg))
	}

	return results
}
