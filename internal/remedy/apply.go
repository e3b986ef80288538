// Package remedy executes or exports the fix commands attached to findings.
package remedy

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/avdoctor/avdoctor/internal/domain"
	"github.com/avdoctor/avdoctor/internal/toolexec"
)

// DefaultFixTimeout bounds one fix command so a hung fix cannot stall the
// rest of the batch.
const DefaultFixTimeout = 30 * time.Second

// Applier runs fix commands sequentially. A failing fix never stops the
// batch; callers get one Outcome per input result, in input order.
type Applier struct {
	runner *toolexec.Runner
	log    *zap.Logger
}

// NewApplier returns an applier whose commands run under timeout.
func NewApplier(runner *toolexec.Runner, timeout time.Duration, log *zap.Logger) *Applier {
	if log == nil {
		log = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = DefaultFixTimeout
	}
	return &Applier{runner: runner.WithTimeout(timeout), log: log}
}

// Apply executes the command of every result that carries one. Results
// without a command are skipped but still reported. A cancelled context
// stops the batch before the next command starts; the remainder is marked
// skipped. Apply mutates live system state and must stay behind an explicit
// operator opt-in.
func (a *Applier) Apply(ctx context.Context, results []domain.Result) []domain.Outcome {
	outcomes := make([]domain.Outcome, 0, len(results))
	cancelled := false

	for i, res := range results {
		out := domain.Outcome{Index: i, Result: res}

		switch {
		case cancelled || ctx.Err() != nil:
			cancelled = true
			out.Status = domain.FixSkipped
			out.Err = "run cancelled"
		case !res.HasCommand():
			out.Status = domain.FixSkipped
		default:
			out = a.applyOne(ctx, i, res)
		}

		outcomes = append(outcomes, out)
	}
	return outcomes
}

func (a *Applier) applyOne(ctx context.Context, index int, res domain.Result) domain.Outcome {
	out := domain.Outcome{Index: index, Result: res}

	a.log.Info("applying fix",
		zap.Int("index", index),
		zap.String("command", res.Command))

	execOut, err := a.runner.RunShell(ctx, res.Command)
	out.DurationMs = execOut.Duration.Milliseconds()

	if err != nil {
		out.Status = domain.FixFailed
		out.Err = err.Error()
		out.TimedOut = toolexec.IsTimeout(err)
		a.log.Warn("fix failed",
			zap.Int("index", index),
			zap.Bool("timed_out", out.TimedOut),
			zap.Error(err))
		return out
	}

	out.Status = domain.FixApplied
	a.log.Info("fix applied",
		zap.Int("index", index),
		zap.Int64("duration_ms", out.DurationMs))
	return out
}
