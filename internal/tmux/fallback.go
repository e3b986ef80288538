package tmux

import (
	"io"
)

// OutputMode represents the output destination
type OutputMode int

const (
	OutputModeTmux   OutputMode = iota // Output to tmux pane
	OutputModeStdout                   // Output to the fallback writer
)

// OutputManager routes report output to a tmux pane when possible and to
// the fallback writer otherwise.
type OutputManager struct {
	mode   OutputMode
	tmux   *Manager
	writer io.Writer
}

// NewOutputManager creates an output manager with appropriate fallback
func NewOutputManager(preferTmux bool, fallback io.Writer, tmuxConfig *Config) (*OutputManager, error) {
	om := &OutputManager{
		mode:   OutputModeStdout,
		writer: fallback,
	}

	if !preferTmux || !IsTmuxAvailable() {
		return om, nil
	}

	mgr, err := NewManager(tmuxConfig)
	if err != nil {
		return om, nil
	}

	if err := mgr.GetOrCreateSession(); err != nil {
		return om, nil
	}

	om.mode = OutputModeTmux
	om.tmux = mgr
	om.writer = NewWriter(mgr)
	return om, nil
}

// Writer returns the io.Writer for output
func (om *OutputManager) Writer() io.Writer {
	return om.writer
}

// IsTmuxMode returns true if outputting to tmux
func (om *OutputManager) IsTmuxMode() bool {
	return om.mode == OutputModeTmux
}

// TmuxManager returns the tmux manager if in tmux mode
func (om *OutputManager) TmuxManager() *Manager {
	return om.tmux
}

// AttachCommand returns the tmux attach command if in tmux mode
func (om *OutputManager) AttachCommand() string {
	if om.tmux != nil {
		return om.tmux.AttachCommand()
	}
	return ""
}

// SessionName returns the tmux session name if in tmux mode
func (om *OutputManager) SessionName() string {
	if om.tmux != nil {
		return om.tmux.SessionName()
	}
	return ""
}

// Cleanup flushes buffered output and releases the session references
func (om *OutputManager) Cleanup() {
	if om.tmux == nil {
		return
	}
	if w, ok := om.writer.(*Writer); ok {
		_ = w.Flush()
	}
	om.tmux.Cleanup()
}

// ModeString returns a human-readable description of the output mode
func (om *OutputManager) ModeString() string {
	switch om.mode {
	case OutputModeTmux:
		return "tmux session: " + om.SessionName()
	case OutputModeStdout:
		return "stdout"
	default:
		return "unknown"
	}
}
