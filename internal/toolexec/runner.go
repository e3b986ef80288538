// Package toolexec runs external diagnostic tools with timeouts and a
// uniform error taxonomy. Collectors treat a missing tool as a degraded
// snapshot, not a failure, so NotFoundError must stay distinguishable from
// a tool that ran and exited non-zero.
package toolexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
)

// DefaultTimeout bounds a single tool invocation.
const DefaultTimeout = 10 * time.Second

// waitDelay unblocks Wait when a killed command leaves a child process
// holding the output pipes.
const waitDelay = 2 * time.Second

// NotFoundError means the tool is not installed or not in PATH.
type NotFoundError struct {
	Tool string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: not installed or not in PATH", e.Tool)
}

// ExitError means the tool ran and exited non-zero.
type ExitError struct {
	Tool   string
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s: exit status %d: %s", e.Tool, e.Code, firstLine(e.Stderr))
	}
	return fmt.Sprintf("%s: exit status %d", e.Tool, e.Code)
}

// TimeoutError means the tool was killed after exceeding the runner timeout.
type TimeoutError struct {
	Tool    string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: timeout after %s", e.Tool, e.Timeout)
}

// IsNotFound reports whether err means the tool is absent.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsTimeout reports whether err means the tool exceeded its deadline.
func IsTimeout(err error) bool {
	var to *TimeoutError
	return errors.As(err, &to)
}

// Output captures one finished tool invocation. Stdout may be non-empty even
// when the invocation returned an error.
type Output struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Runner executes external tools. The zero value is not usable; construct
// with NewRunner.
type Runner struct {
	clock   clock.Clock
	timeout time.Duration
	log     *zap.Logger
}

// NewRunner returns a runner with the given per-invocation timeout.
// A non-positive timeout falls back to DefaultTimeout.
func NewRunner(log *zap.Logger, timeout time.Duration) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Runner{
		clock:   clock.New(),
		timeout: timeout,
		log:     log,
	}
}

// WithTimeout returns a copy of the runner using d for subsequent
// invocations.
func (r *Runner) WithTimeout(d time.Duration) *Runner {
	cp := *r
	if d > 0 {
		cp.timeout = d
	}
	return &cp
}

// Look resolves a tool name against PATH.
func (r *Runner) Look(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", &NotFoundError{Tool: name}
	}
	return path, nil
}

// Run executes name with args and captures its output. The error is one of
// NotFoundError, TimeoutError or ExitError; Output is populated either way.
func (r *Runner) Run(ctx context.Context, name string, args ...string) (Output, error) {
	if _, err := r.Look(name); err != nil {
		return Output{}, err
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.finish(ctx, name, exec.CommandContext(ctx, name, args...))
}

// RunShell executes command through `sh -c`, for remediation commands that
// use shell syntax.
func (r *Runner) RunShell(ctx context.Context, command string) (Output, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.finish(ctx, command, exec.CommandContext(ctx, "sh", "-c", command))
}

func (r *Runner) finish(ctx context.Context, label string, cmd *exec.Cmd) (Output, error) {
	start := r.clock.Now()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay
	err := cmd.Run()

	out := Output{
		Stdout:   strings.TrimSpace(stdout.String()),
		Stderr:   strings.TrimSpace(stderr.String()),
		Duration: r.clock.Since(start),
	}

	if timedOut := ctx.Err() == context.DeadlineExceeded; timedOut {
		out.ExitCode = -1
		r.log.Debug("tool timed out",
			zap.String("tool", label),
			zap.Duration("timeout", r.timeout))
		return out, &TimeoutError{Tool: label, Timeout: r.timeout}
	}
	if err != nil {
		out.ExitCode = exitCodeFromError(err)
		r.log.Debug("tool failed",
			zap.String("tool", label),
			zap.Int("exit_code", out.ExitCode),
			zap.Duration("duration", out.Duration))
		return out, &ExitError{Tool: label, Code: out.ExitCode, Stderr: out.Stderr}
	}

	r.log.Debug("tool succeeded",
		zap.String("tool", label),
		zap.Duration("duration", out.Duration))
	return out, nil
}

func exitCodeFromError(err error) int {
	if err == nil {
		return 0
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	return -1
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
