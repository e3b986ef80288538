package tmux

import (
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"sync"

	"github.com/GianlucaP106/gotmux/gotmux"
)

// DefaultSessionName is the session watch mirrors into unless overridden.
const DefaultSessionName = "avdoctor"

// Config holds tmux session configuration
type Config struct {
	SessionName    string // e.g., "avdoctor"
	StartDirectory string // Working directory
}

// Manager handles all tmux session operations
type Manager struct {
	tmux    *gotmux.Tmux
	session *gotmux.Session
	pane    *gotmux.Pane
	config  *Config
	mu      sync.Mutex
}

// Errors
var (
	ErrTmuxNotInstalled = fmt.Errorf("tmux is not installed")
	ErrNoPaneAvailable  = fmt.Errorf("no tmux pane available")
)

// IsTmuxAvailable checks if tmux is installed
func IsTmuxAvailable() bool {
	_, err := exec.LookPath("tmux")
	return err == nil
}

// NewManager creates a new tmux manager instance
func NewManager(cfg *Config) (*Manager, error) {
	if !IsTmuxAvailable() {
		return nil, ErrTmuxNotInstalled
	}

	tmux, err := gotmux.DefaultTmux()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tmux: %w", err)
	}

	return &Manager{
		tmux:   tmux,
		config: cfg,
	}, nil
}

// GetOrCreateSession finds the existing session or creates a new one
func (m *Manager) GetOrCreateSession() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sessions, err := m.tmux.ListSessions()
	if err == nil {
		for _, s := range sessions {
			if s.Name == m.config.SessionName {
				m.session = s
				return m.attachToExistingPane()
			}
		}
	}

	return m.createNewSession()
}

func (m *Manager) createNewSession() error {
	session, err := m.tmux.NewSession(&gotmux.SessionOptions{
		Name:           m.config.SessionName,
		StartDirectory: m.config.StartDirectory,
	})
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	m.session = session

	windows, err := session.ListWindows()
	if err != nil {
		return fmt.Errorf("failed to list windows: %w", err)
	}

	if len(windows) > 0 {
		panes, err := windows[0].ListPanes()
		if err != nil {
			return fmt.Errorf("failed to list panes: %w", err)
		}
		if len(panes) > 0 {
			m.pane = panes[0]
		}
	}

	return nil
}

func (m *Manager) attachToExistingPane() error {
	windows, err := m.session.ListWindows()
	if err != nil {
		return err
	}

	if len(windows) > 0 {
		panes, err := windows[0].ListPanes()
		if err != nil {
			return err
		}
		if len(panes) > 0 {
			m.pane = panes[0]
		}
	}
	return nil
}

// SessionName returns the current session name
func (m *Manager) SessionName() string {
	return m.config.SessionName
}

// AttachCommand returns the command string for attaching to this session
func (m *Manager) AttachCommand() string {
	return fmt.Sprintf("tmux attach -t %s", m.config.SessionName)
}

// Cleanup clears internal references; the session itself persists so the
// operator can still read the last report after watch exits.
func (m *Manager) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.session = nil
	m.pane = nil
}

var sessionNameRe = regexp.MustCompile(`[^a-z0-9]+`)

// SanitizeSessionName creates a tmux-safe session name from a label
func SanitizeSessionName(label string) string {
	name := strings.ToLower(label)
	name = sessionNameRe.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-")
	if name == "" {
		return DefaultSessionName
	}
	return name
}
