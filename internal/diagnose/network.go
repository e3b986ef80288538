package diagnose

import (
	"fmt"

	"github.com/avdoctor/avdoctor/internal/collect"
	"github.com/avdoctor/avdoctor/internal/domain"
)

// Network evaluates routing, NetworkManager and DNS. Streaming needs all
// three; a missing default route is the only finding severe enough to be
// critical.
func Network(snap collect.NetworkSnapshot) []domain.Result {
	var results []domain.Result

	if !snap.IPPresent {
		results = append(results,
			domain.Must(domain.CategoryNetwork, domain.SeverityWarning, "ip not found; routing state cannot be inspected").
				WithFix("Install iproute2", "sudo apt-get install -y iproute2"))
	} else if !snap.HasDefaultRoute {
		results = append(results,
			domain.Must(domain.CategoryNetwork, domain.SeverityCritical, "No default network route").
				WithFix("Restart NetworkManager", "sudo systemctl restart NetworkManager"))
	}

	if snap.NetworkManagerActive != nil && !*snap.NetworkManagerActive {
		results = append(results,
			domain.Must(domain.CategoryNetwork, domain.SeverityWarning, "NetworkManager is not running").
				WithFix("Start NetworkManager", "sudo systemctl start NetworkManager"))
	}

	if len(snap.Nameservers) == 0 {
		results = append(results,
			domain.Must(domain.CategoryNetwork, domain.SeverityWarning, "No DNS nameservers configured").
				WithFix("Restart NetworkManager to regenerate resolv.conf", "sudo systemctl restart NetworkManager"))
	}

	nmOK := snap.NetworkManagerActive == nil || *snap.NetworkManagerActive
	if snap.HasDefaultRoute && nmOK && len(snap.Nameservers) > 0 {
		results = append(results,
			domain.Must(domain.CategoryNetwork, domain.SeveritySuccess,
				fmt.Sprintf("Network up (%s via %s)", snap.DefaultInterface, snap.DefaultGateway)))
	}

	return results
}
