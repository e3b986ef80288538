package domain

// Summary counts findings per severity for report footers and exit codes.
type Summary struct {
	Total    int `json:"total" yaml:"total"`
	Critical int `json:"critical" yaml:"critical"`
	Warning  int `json:"warning" yaml:"warning"`
	Info     int `json:"info" yaml:"info"`
	Success  int `json:"success" yaml:"success"`
}

// Summarize tallies results into a Summary.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch r.Severity {
		case SeverityCritical:
			s.Critical++
		case SeverityWarning:
			s.Warning++
		case SeverityInfo:
			s.Info++
		case SeveritySuccess:
			s.Success++
		}
	}
	return s
}

// HasCritical reports whether any finding is critical.
func (s Summary) HasCritical() bool {
	return s.Critical > 0
}

// HasWarning reports whether any finding is warning severity.
func (s Summary) HasWarning() bool {
	return s.Warning > 0
}
