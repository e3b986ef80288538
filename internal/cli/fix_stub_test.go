package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdoctor/avdoctor/internal/domain"
)

// linkShell makes `sh` resolvable inside the stub-only PATH so RunShell can
// spawn the real shell for fix commands.
func linkShell(t *testing.T, stubDir string) {
	t.Helper()
	require.NoError(t, os.Symlink("/bin/sh", filepath.Join(stubDir, "sh")))
}

func TestFixYesAppliesStubbedCommand(t *testing.T) {
	stubDir := stubAVHost(t)
	linkShell(t, stubDir)

	globals, stdout, stderr := testGlobals("text")

	require.NoError(t, (&FixCmd{Yes: true, Timeout: 5 * time.Second}).Run(globals))

	output := stdout.String()
	assert.Contains(t, output, "Fixable findings:")
	assert.Contains(t, output, "$ pactl set-sink-mute @DEFAULT_SINK@ 0")
	assert.Contains(t, output, "✅ Audio muted: applied in")

	// The unmute hits the pactl stub; the sudo install suggestions fail
	// because sudo is not on the stub PATH. Neither stops the batch.
	assert.Contains(t, output, "\nApplied 1, failed ")
	assert.Contains(t, stderr.String(), "Some fixes failed")
}

func TestFixYesJSONReport(t *testing.T) {
	stubDir := stubAVHost(t)
	linkShell(t, stubDir)

	globals, stdout, _ := testGlobals("json")

	require.NoError(t, (&FixCmd{Yes: true, Timeout: 5 * time.Second}).Run(globals))

	var rep fixReport
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &rep))

	assert.Equal(t, 1, rep.SchemaVersion)
	assert.Equal(t, 1, rep.Applied)
	assert.NotEmpty(t, rep.Outcomes)

	var mutedOutcome *domain.Outcome
	for i := range rep.Outcomes {
		if rep.Outcomes[i].Result.Message == "Audio muted" {
			mutedOutcome = &rep.Outcomes[i]
			break
		}
	}
	require.NotNil(t, mutedOutcome)
	assert.Equal(t, domain.FixApplied, mutedOutcome.Status)
}

func TestFixJSONRequiresYes(t *testing.T) {
	stubAVHost(t)
	globals, stdout, _ := testGlobals("json")

	err := (&FixCmd{Timeout: 5 * time.Second}).Run(globals)
	require.Error(t, err)

	var cliErr *CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, "CONFIRM_REQUIRED", cliErr.Code)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &payload))
	assert.Equal(t, "CONFIRM_REQUIRED", payload["code"])
}

func TestFixTextPromptNeedsTerminal(t *testing.T) {
	stubAVHost(t)
	globals, stdout, _ := testGlobals("text")

	// Test binaries run with /dev/null stdin, so the confirmation prompt
	// cannot be answered and the command must refuse instead of hanging.
	err := (&FixCmd{Timeout: 5 * time.Second}).Run(globals)
	require.Error(t, err)

	var cliErr *CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, "CONFIRM_REQUIRED", cliErr.Code)

	assert.Contains(t, stdout.String(), "Fixable findings:")
}

func TestFixPickNeedsTerminal(t *testing.T) {
	stubAVHost(t)
	globals, _, _ := testGlobals("text")

	err := (&FixCmd{Pick: true, Timeout: 5 * time.Second}).Run(globals)
	require.Error(t, err)

	var cliErr *CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, "NOT_INTERACTIVE", cliErr.Code)
}

func TestFixPickRejectsMachineFormat(t *testing.T) {
	stubAVHost(t)
	globals, _, _ := testGlobals("yaml")

	err := (&FixCmd{Pick: true, Timeout: 5 * time.Second}).Run(globals)
	require.Error(t, err)

	var cliErr *CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, "NOT_INTERACTIVE", cliErr.Code)
	assert.Contains(t, cliErr.Message, "text output")
}
