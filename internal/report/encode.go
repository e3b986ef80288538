package report

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/avdoctor/avdoctor/internal/domain"
)

// SchemaVersion is bumped on any breaking change to the machine envelope.
const SchemaVersion = 1

// Envelope is the machine-readable report.
type Envelope struct {
	SchemaVersion int               `json:"schemaVersion" yaml:"schemaVersion"`
	System        domain.SystemInfo `json:"system" yaml:"system"`
	Results       []domain.Result   `json:"results" yaml:"results"`
	Summary       domain.Summary    `json:"summary" yaml:"summary"`
}

// NewEnvelope wraps results for encoding. Results stay in diagnosis order.
func NewEnvelope(info domain.SystemInfo, results []domain.Result) Envelope {
	if results == nil {
		results = []domain.Result{}
	}
	return Envelope{
		SchemaVersion: SchemaVersion,
		System:        info,
		Results:       results,
		Summary:       domain.Summarize(results),
	}
}

// Encode writes the envelope as json or yaml.
func Encode(w io.Writer, format string, env Envelope) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(env)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(env); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}
