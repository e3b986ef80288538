package domain

import "fmt"

// Category identifies the subsystem a diagnostic finding belongs to.
type Category string

const (
	CategoryAudio   Category = "audio"
	CategoryVideo   Category = "video"
	CategoryGPU     Category = "gpu"
	CategorySystem  Category = "system"
	CategoryNetwork Category = "network"
)

// Categories lists every valid category in declared diagnosis order.
// The aggregator runs subsystems in exactly this order.
var Categories = []Category{
	CategoryAudio,
	CategoryVideo,
	CategoryGPU,
	CategorySystem,
	CategoryNetwork,
}

// Valid reports whether c belongs to the closed category set.
func (c Category) Valid() bool {
	switch c {
	case CategoryAudio, CategoryVideo, CategoryGPU, CategorySystem, CategoryNetwork:
		return true
	}
	return false
}

// ParseCategory converts a string to a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", &ValidationError{Field: "category", Value: s, Reason: "not a known subsystem"}
	}
	return c, nil
}

// Severity classifies how serious a diagnostic finding is.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
	SeveritySuccess  Severity = "success"
)

// Severities lists every valid severity, most severe first.
var Severities = []Severity{
	SeverityCritical,
	SeverityWarning,
	SeverityInfo,
	SeveritySuccess,
}

// Valid reports whether s belongs to the closed severity set.
func (s Severity) Valid() bool {
	switch s {
	case SeverityCritical, SeverityWarning, SeverityInfo, SeveritySuccess:
		return true
	}
	return false
}

// ParseSeverity converts a string to a Severity.
func ParseSeverity(s string) (Severity, error) {
	sev := Severity(s)
	if !sev.Valid() {
		return "", &ValidationError{Field: "severity", Value: s, Reason: "not a known severity"}
	}
	return sev, nil
}

// Result is one classified diagnostic finding. Fix carries an optional
// human-readable remediation description; Command an optional shell command
// that performs it. A result may carry a fix description without a command
// when the remediation cannot be automated.
type Result struct {
	Category Category `json:"category" yaml:"category"`
	Severity Severity `json:"severity" yaml:"severity"`
	Message  string   `json:"message" yaml:"message"`
	Fix      string   `json:"fix,omitempty" yaml:"fix,omitempty"`
	Command  string   `json:"command,omitempty" yaml:"command,omitempty"`
}

// ValidationError reports a Result field that violates the diagnostic schema.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// New builds a validated Result. Category and severity must belong to their
// closed sets and the message must be non-empty.
func New(cat Category, sev Severity, msg string) (Result, error) {
	r := Result{Category: cat, Severity: sev, Message: msg}
	if err := r.Validate(); err != nil {
		return Result{}, err
	}
	return r, nil
}

// Must is New for statically-known rule output. A schema violation here is a
// programming defect, so it panics.
func Must(cat Category, sev Severity, msg string) Result {
	r, err := New(cat, sev, msg)
	if err != nil {
		panic(err)
	}
	return r
}

// WithFix returns a copy of r carrying a remediation description and the
// shell command that performs it. Pass an empty command for advice the tool
// cannot run on the operator's behalf.
func (r Result) WithFix(desc, command string) Result {
	r.Fix = desc
	r.Command = command
	return r
}

// Validate re-checks the schema invariants on an already-built Result.
func (r Result) Validate() error {
	if !r.Category.Valid() {
		return &ValidationError{Field: "category", Value: string(r.Category), Reason: "not a known subsystem"}
	}
	if !r.Severity.Valid() {
		return &ValidationError{Field: "severity", Value: string(r.Severity), Reason: "not a known severity"}
	}
	if r.Message == "" {
		return &ValidationError{Field: "message", Value: "", Reason: "must not be empty"}
	}
	return nil
}

// HasCommand reports whether the result carries an executable fix.
func (r Result) HasCommand() bool {
	return r.Command != ""
}

// CategoryGroup is a category plus its findings in source order.
type CategoryGroup struct {
	Category Category
	Results  []Result
}

// GroupByCategory groups results by category. Group order follows the first
// appearance of each category in the input and results keep their source
// order inside a group.
func GroupByCategory(results []Result) []CategoryGroup {
	var groups []CategoryGroup
	index := make(map[Category]int, len(Categories))
	for _, r := range results {
		i, seen := index[r.Category]
		if !seen {
			i = len(groups)
			index[r.Category] = i
			groups = append(groups, CategoryGroup{Category: r.Category})
		}
		groups[i].Results = append(groups[i].Results, r)
	}
	return groups
}
