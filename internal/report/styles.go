package report

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/avdoctor/avdoctor/internal/domain"
)

// Styles holds all lipgloss styles for text reports.
var Styles = struct {
	// Severity styles
	Critical lipgloss.Style
	Warning  lipgloss.Style
	Info     lipgloss.Style
	Success  lipgloss.Style

	// Component styles
	Title    lipgloss.Style
	Category lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Fix      lipgloss.Style
	Command  lipgloss.Style
}{
	Critical: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true), // Red bold
	Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),            // Orange
	Info:     lipgloss.NewStyle().Foreground(lipgloss.Color("39")),             // Cyan
	Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),             // Green

	Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
	Category: lipgloss.NewStyle().Bold(true),
	Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")), // Gray
	Value:    lipgloss.NewStyle().Bold(true),
	Fix:      lipgloss.NewStyle().Foreground(lipgloss.Color("244")), // Gray
	Command:  lipgloss.NewStyle().Foreground(lipgloss.Color("142")), // Yellow-green
}

// SeverityStyle returns the style for a severity.
func SeverityStyle(sev domain.Severity) lipgloss.Style {
	switch sev {
	case domain.SeverityCritical:
		return Styles.Critical
	case domain.SeverityWarning:
		return Styles.Warning
	case domain.SeverityInfo:
		return Styles.Info
	case domain.SeveritySuccess:
		return Styles.Success
	default:
		return lipgloss.NewStyle()
	}
}
