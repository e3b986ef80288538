// Package report renders diagnostic findings for humans and machines.
package report

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"

	"github.com/avdoctor/avdoctor/internal/domain"
)

const title = "AV Workstation Diagnostics"

// ColorEnabled reports whether w is an interactive terminal.
func ColorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Renderer writes the grouped text report. The group order follows the first
// appearance of each category in the input and never re-sorts findings.
type Renderer struct {
	w       io.Writer
	color   bool
	verbose bool
}

// NewRenderer returns a renderer. With color false every lipgloss style is
// skipped; with verbose true fix commands are printed under their findings.
func NewRenderer(w io.Writer, color, verbose bool) *Renderer {
	return &Renderer{w: w, color: color, verbose: verbose}
}

// Render writes the full report: identity header, grouped findings and the
// per-category summary table. An empty result list renders a neutral report
// and never fails.
func (r *Renderer) Render(info domain.SystemInfo, results []domain.Result) error {
	var b strings.Builder

	r.writeHeader(&b, info)

	if len(results) == 0 {
		b.WriteString("No findings.\n")
	} else {
		r.writeGroups(&b, results)
	}

	if err := r.writeSummary(&b, results); err != nil {
		return err
	}

	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *Renderer) writeHeader(b *strings.Builder, info domain.SystemInfo) {
	b.WriteString(r.styled(Styles.Title, title))
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("─", len(title)))
	b.WriteByte('\n')

	r.writeField(b, "Kernel", info.Kernel)
	r.writeField(b, "Distro", info.Distro)
	r.writeField(b, "Desktop", info.Desktop)
	r.writeField(b, "Audio server", info.AudioServer)
	if info.GPUDriver != "" {
		r.writeField(b, "GPU driver", info.GPUDriver)
	}
	b.WriteByte('\n')
}

func (r *Renderer) writeField(b *strings.Builder, label, value string) {
	if value == "" {
		value = "unknown"
	}
	b.WriteString(r.styled(Styles.Label, fmt.Sprintf("%-13s", label+":")))
	b.WriteByte(' ')
	b.WriteString(r.styled(Styles.Value, value))
	b.WriteByte('\n')
}

func (r *Renderer) writeGroups(b *strings.Builder, results []domain.Result) {
	for _, group := range domain.GroupByCategory(results) {
		header := fmt.Sprintf("%s %s", CategoryIcon(group.Category), strings.ToUpper(string(group.Category)))
		b.WriteString(r.styled(Styles.Category, header))
		b.WriteByte('\n')

		for _, res := range group.Results {
			line := fmt.Sprintf("  %s %s", SeverityIcon(res.Severity), res.Message)
			b.WriteString(r.styled(SeverityStyle(res.Severity), line))
			b.WriteByte('\n')

			if res.Fix != "" {
				b.WriteString(r.styled(Styles.Fix, "     fix: "+res.Fix))
				b.WriteByte('\n')
			}
			if r.verbose && res.Command != "" {
				b.WriteString(r.styled(Styles.Command, "       $ "+res.Command))
				b.WriteByte('\n')
			}
		}
		b.WriteByte('\n')
	}
}

func (r *Renderer) writeSummary(b *strings.Builder, results []domain.Result) error {
	table := tablewriter.NewTable(b)
	table.Header("Category", "Critical", "Warning", "Info", "Success")

	for _, group := range domain.GroupByCategory(results) {
		s := domain.Summarize(group.Results)
		if err := table.Append(summaryRow(string(group.Category), s)); err != nil {
			return err
		}
	}

	table.Footer(summaryRow("total", domain.Summarize(results)))
	return table.Render()
}

func summaryRow(name string, s domain.Summary) []string {
	return []string{
		name,
		strconv.Itoa(s.Critical),
		strconv.Itoa(s.Warning),
		strconv.Itoa(s.Info),
		strconv.Itoa(s.Success),
	}
}

func (r *Renderer) styled(style lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return style.Render(text)
}
