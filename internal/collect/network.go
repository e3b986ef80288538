package collect

import (
	"context"
	"os"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/avdoctor/avdoctor/internal/toolexec"
)

// NetworkSnapshot is the raw network subsystem state.
type NetworkSnapshot struct {
	IPPresent        bool
	HasDefaultRoute  bool
	DefaultGateway   string
	DefaultInterface string
	InterfacesUp     int
	// NetworkManagerActive is nil when systemctl is unavailable.
	NetworkManagerActive *bool
	Nameservers          []string
}

// NetworkCollector probes iproute2, NetworkManager and the resolver config.
// The resolv.conf path is a field so tests can point it at a fixture.
type NetworkCollector struct {
	runner     *toolexec.Runner
	resolvPath string
}

func NewNetworkCollector(runner *toolexec.Runner) *NetworkCollector {
	return &NetworkCollector{
		runner:     runner,
		resolvPath: "/etc/resolv.conf",
	}
}

func (c *NetworkCollector) Collect(ctx context.Context) (NetworkSnapshot, error) {
	var snap NetworkSnapshot

	if _, err := c.runner.Look("ip"); err == nil {
		snap.IPPresent = true

		if out, err := c.runner.Run(ctx, "ip", "-json", "route", "show", "default"); err == nil {
			route := gjson.Parse(out.Stdout).Get("0")
			if route.Exists() {
				snap.HasDefaultRoute = true
				snap.DefaultGateway = route.Get("gateway").String()
				snap.DefaultInterface = route.Get("dev").String()
			}
		}

		if out, err := c.runner.Run(ctx, "ip", "-json", "addr"); err == nil {
			gjson.Parse(out.Stdout).ForEach(func(_, iface gjson.Result) bool {
				if iface.Get("ifname").String() == "lo" {
					return true
				}
				if iface.Get("operstate").String() == "UP" {
					snap.InterfacesUp++
				}
				return true
			})
		}
	}

	snap.NetworkManagerActive = unitActive(ctx, c.runner, "NetworkManager", false)
	snap.Nameservers = parseNameservers(c.resolvPath)

	return snap, nil
}

func parseNameservers(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var servers []string
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[0] == "nameserver" {
			servers = append(servers, fields[1])
		}
	}
	return servers
}
