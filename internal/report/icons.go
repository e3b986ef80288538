package report

import "github.com/avdoctor/avdoctor/internal/domain"

// SeverityIcon maps a severity to its report marker. Unrecognized values
// fall back to a plain bullet rather than failing.
func SeverityIcon(sev domain.Severity) string {
	switch sev {
	case domain.SeverityCritical:
		return "❌"
	case domain.SeverityWarning:
		return "⚠️"
	case domain.SeverityInfo:
		return "ℹ️"
	case domain.SeveritySuccess:
		return "✅"
	default:
		return "•"
	}
}

// CategoryIcon maps a category to its group header marker.
func CategoryIcon(cat domain.Category) string {
	switch cat {
	case domain.CategoryAudio:
		return "🔊"
	case domain.CategoryVideo:
		return "🎬"
	case domain.CategoryGPU:
		return "🎮"
	case domain.CategorySystem:
		return "💻"
	case domain.CategoryNetwork:
		return "🌐"
	default:
		return "📌"
	}
}
