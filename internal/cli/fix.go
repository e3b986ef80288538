package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/avdoctor/avdoctor/internal/domain"
	"github.com/avdoctor/avdoctor/internal/remedy"
	"github.com/avdoctor/avdoctor/internal/report"
)

// FixCmd runs diagnostics and applies fix commands
type FixCmd struct {
	Yes      bool          `short:"y" help:"Apply fixes without prompting"`
	Pick     bool          `help:"Choose which fixes to apply interactively"`
	Timeout  time.Duration `default:"${config_fix_timeout}" help:"Per-command timeout"`
	Parallel bool          `default:"${config_parallel}" help:"Collect subsystems concurrently"`
}

// fixReport is the machine-readable outcome summary for json/yaml output.
type fixReport struct {
	SchemaVersion int              `json:"schemaVersion" yaml:"schemaVersion"`
	Outcomes      []domain.Outcome `json:"outcomes" yaml:"outcomes"`
	Applied       int              `json:"applied" yaml:"applied"`
	Failed        int              `json:"failed" yaml:"failed"`
	Skipped       int              `json:"skipped" yaml:"skipped"`
}

// Run executes the fix command
func (c *FixCmd) Run(globals *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	results, _ := runDiagnosis(ctx, globals, c.Parallel)

	var fixable []domain.Result
	for _, r := range results {
		if r.HasCommand() {
			fixable = append(fixable, r)
		}
	}

	if len(fixable) == 0 {
		if globals.Format == "text" {
			fmt.Fprintln(globals.Stdout, "No fixable findings.")
			return nil
		}
		return c.writeOutcomes(globals, nil)
	}

	chosen := fixable
	switch {
	case c.Pick:
		if globals.Format != "text" {
			return outputErrorCommon(globals, "NOT_INTERACTIVE",
				"--pick requires text output", "drop --pick or use --format text")
		}
		if !stdinIsTerminal() {
			return outputErrorCommon(globals, "NOT_INTERACTIVE",
				"--pick requires an interactive terminal",
				"rerun without --pick, or pass --yes to apply all fixes")
		}
		picked, ok, err := runFixPicker(fixable)
		if err != nil {
			return outputErrorCommon(globals, "PICKER_FAILED", err.Error())
		}
		if !ok || len(picked) == 0 {
			notice(globals, "No fixes selected.")
			return nil
		}
		chosen = picked

	case c.Yes:
		c.printFixList(globals, chosen)

	default:
		if globals.Format != "text" {
			return outputErrorCommon(globals, "CONFIRM_REQUIRED",
				"refusing to apply fixes without confirmation",
				"pass --yes to apply without prompting")
		}
		c.printFixList(globals, chosen)
		ok, err := confirmApply(globals, len(chosen))
		if err != nil {
			return err
		}
		if !ok {
			notice(globals, "Aborted, no fixes applied.")
			return nil
		}
	}

	applier := remedy.NewApplier(newRunner(globals), c.Timeout, globals.Logger)
	outcomes := applier.Apply(ctx, chosen)

	// Failed fixes are outcome data, not process errors: exit 0 regardless.
	return c.writeOutcomes(globals, outcomes)
}

func (c *FixCmd) printFixList(globals *Globals, fixable []domain.Result) {
	if globals.Format != "text" {
		return
	}
	fmt.Fprintln(globals.Stdout, "Fixable findings:")
	for i, r := range fixable {
		fmt.Fprintf(globals.Stdout, "  %d. %s %s\n", i+1, report.SeverityIcon(r.Severity), r.Message)
		fmt.Fprintf(globals.Stdout, "     $ %s\n", r.Command)
	}
}

func (c *FixCmd) writeOutcomes(globals *Globals, outcomes []domain.Outcome) error {
	if outcomes == nil {
		outcomes = []domain.Outcome{}
	}

	applied, failed, skipped := tallyOutcomes(outcomes)

	switch globals.Format {
	case "json":
		enc := json.NewEncoder(globals.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(fixReport{
			SchemaVersion: report.SchemaVersion,
			Outcomes:      outcomes,
			Applied:       applied,
			Failed:        failed,
			Skipped:       skipped,
		})
	case "yaml":
		enc := yaml.NewEncoder(globals.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(fixReport{
			SchemaVersion: report.SchemaVersion,
			Outcomes:      outcomes,
			Applied:       applied,
			Failed:        failed,
			Skipped:       skipped,
		}); err != nil {
			return err
		}
		return enc.Close()
	}

	for _, out := range outcomes {
		switch out.Status {
		case domain.FixApplied:
			fmt.Fprintf(globals.Stdout, "[%d/%d] ✅ %s: applied in %dms\n",
				out.Index+1, len(outcomes), out.Result.Message, out.DurationMs)
		case domain.FixFailed:
			fmt.Fprintf(globals.Stdout, "[%d/%d] ❌ %s: failed: %s\n",
				out.Index+1, len(outcomes), out.Result.Message, out.Err)
		default:
			reason := ""
			if out.Err != "" {
				reason = " (" + out.Err + ")"
			}
			fmt.Fprintf(globals.Stdout, "[%d/%d] • %s: skipped%s\n",
				out.Index+1, len(outcomes), out.Result.Message, reason)
		}
	}
	fmt.Fprintf(globals.Stdout, "\nApplied %d, failed %d, skipped %d.\n", applied, failed, skipped)

	if failed > 0 {
		notice(globals, "Some fixes failed; rerun `avdoctor` to see the remaining findings.")
	}
	return nil
}

func tallyOutcomes(outcomes []domain.Outcome) (applied, failed, skipped int) {
	for _, out := range outcomes {
		switch out.Status {
		case domain.FixApplied:
			applied++
		case domain.FixFailed:
			failed++
		default:
			skipped++
		}
	}
	return applied, failed, skipped
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func confirmApply(globals *Globals, n int) (bool, error) {
	if !stdinIsTerminal() {
		return false, outputErrorCommon(globals, "CONFIRM_REQUIRED",
			"refusing to apply fixes without confirmation",
			"pass --yes to apply without prompting")
	}

	fmt.Fprintf(globals.Stderr, "Apply %d fix(es)? [y/N] ", n)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false, nil
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
