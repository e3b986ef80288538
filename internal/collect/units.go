package collect

import (
	"context"
	"strings"

	"github.com/avdoctor/avdoctor/internal/toolexec"
)

// unitActive probes `systemctl is-active` for a system or user unit.
// Returns nil when systemctl is unavailable. is-active exits non-zero for
// inactive units, so the stdout state string is authoritative.
func unitActive(ctx context.Context, runner *toolexec.Runner, unit string, userScope bool) *bool {
	args := []string{"is-active", unit}
	if userScope {
		args = append([]string{"--user"}, args...)
	}
	out, err := runner.Run(ctx, "systemctl", args...)
	if toolexec.IsNotFound(err) || toolexec.IsTimeout(err) {
		return nil
	}
	active := strings.TrimSpace(out.Stdout) == "active"
	return &active
}
