package remedy

import (
	"fmt"
	"os"
	"strings"

	"github.com/avdoctor/avdoctor/internal/domain"
)

// DefaultScriptPath is the well-known fix script location.
const DefaultScriptPath = "/tmp/avdoctor-fixes.sh"

// Exporter writes the executable fix script.
type Exporter struct {
	path string
}

// NewExporter returns an exporter targeting path, or DefaultScriptPath when
// path is empty.
func NewExporter(path string) *Exporter {
	if path == "" {
		path = DefaultScriptPath
	}
	return &Exporter{path: path}
}

// Path returns the script destination.
func (e *Exporter) Path() string {
	return e.path
}

// Export writes the fix script with mode 0755 and returns its path. The
// script content is deterministic for a given result list. With no
// exportable commands the write becomes best-effort: a header-only script is
// attempted but a write failure is not an error.
func (e *Exporter) Export(results []domain.Result) (string, error) {
	script := Script(results)

	err := os.WriteFile(e.path, []byte(script), 0o755)
	if err != nil {
		if countCommands(results) == 0 {
			return e.path, nil
		}
		return "", fmt.Errorf("write fix script: %w", err)
	}
	// WriteFile perms pass through the umask; the script must stay 0755.
	if err := os.Chmod(e.path, 0o755); err != nil {
		return "", fmt.Errorf("chmod fix script: %w", err)
	}
	return e.path, nil
}

// Script builds the script text: shebang, one commented command per fixable
// finding, and a trailing comment block naming fixes that need manual action
// (a fix description but no command). Results with neither fix nor command
// are omitted entirely.
func Script(results []domain.Result) string {
	var b strings.Builder
	b.WriteString("#!/bin/bash\n")
	b.WriteString("# Remediation script generated by avdoctor.\n")
	b.WriteString("# Review every command before running. Commands run in order and\n")
	b.WriteString("# continue past failures.\n")

	for _, res := range results {
		if !res.HasCommand() {
			continue
		}
		b.WriteByte('\n')
		fmt.Fprintf(&b, "# %s\n", res.Message)
		b.WriteString(res.Command)
		b.WriteByte('\n')
	}

	manual := manualFixes(results)
	if len(manual) > 0 {
		b.WriteString("\n# Manual fixes (no command available):\n")
		for _, res := range manual {
			fmt.Fprintf(&b, "#   %s: %s\n", res.Message, res.Fix)
		}
	}

	return b.String()
}

func manualFixes(results []domain.Result) []domain.Result {
	var manual []domain.Result
	for _, res := range results {
		if res.Fix != "" && !res.HasCommand() {
			manual = append(manual, res)
		}
	}
	return manual
}

func countCommands(results []domain.Result) int {
	n := 0
	for _, res := range results {
		if res.HasCommand() {
			n++
		}
	}
	return n
}
