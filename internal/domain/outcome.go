package domain

// FixStatus is the terminal state of one remediation attempt.
type FixStatus string

const (
	FixApplied FixStatus = "applied"
	FixFailed  FixStatus = "failed"
	FixSkipped FixStatus = "skipped"
)

// Outcome records what happened to one finding during a fix run. The applier
// returns exactly one Outcome per input result, in input order, regardless of
// individual failures.
type Outcome struct {
	Index      int       `json:"index" yaml:"index"`
	Result     Result    `json:"result" yaml:"result"`
	Status     FixStatus `json:"status" yaml:"status"`
	Err        string    `json:"error,omitempty" yaml:"error,omitempty"`
	DurationMs int64     `json:"duration_ms" yaml:"duration_ms"`
	TimedOut   bool      `json:"timed_out,omitempty" yaml:"timed_out,omitempty"`
}
