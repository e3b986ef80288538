package cli

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// errorPayload is the machine-readable error shape for json/yaml output.
type errorPayload struct {
	Error string `json:"error" yaml:"error"`
	Code  string `json:"code" yaml:"code"`
	Hint  string `json:"hint,omitempty" yaml:"hint,omitempty"`
}

// outputErrorCommon normalizes error emission across commands, respecting
// json/yaml vs text formats so scripts always get machine-readable failures.
func outputErrorCommon(globals *Globals, code, message string, hint ...string) error {
	h := ""
	if len(hint) > 0 {
		h = hint[0]
	}

	if globals != nil {
		payload := errorPayload{Error: message, Code: code, Hint: h}
		switch globals.Format {
		case "json":
			enc := json.NewEncoder(globals.Stdout)
			_ = enc.Encode(payload)
		case "yaml":
			enc := yaml.NewEncoder(globals.Stdout)
			enc.SetIndent(2)
			_ = enc.Encode(payload)
			_ = enc.Close()
		default:
			fmt.Fprintf(globals.Stderr, "Error [%s]: %s\n", code, message)
			if h != "" {
				fmt.Fprintf(globals.Stderr, "Hint: %s\n", h)
			}
		}
	}

	return &CLIError{Code: code, Message: message, Hint: h}
}

// notice prints a progress message to stderr unless quiet is set.
func notice(globals *Globals, format string, args ...interface{}) {
	if globals == nil || globals.Quiet {
		return
	}
	fmt.Fprintf(globals.Stderr, format+"\n", args...)
}
