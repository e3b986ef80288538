package cli

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/avdoctor/avdoctor/internal/domain"
	"github.com/avdoctor/avdoctor/internal/report"
)

// fixItem implements list.Item for the fix picker
type fixItem struct {
	result  domain.Result
	checked bool
}

func (i fixItem) Title() string {
	box := "[ ]"
	if i.checked {
		box = "[x]"
	}
	return fmt.Sprintf("%s %s %s", box, report.SeverityIcon(i.result.Severity), i.result.Message)
}

func (i fixItem) Description() string { return "$ " + i.result.Command }

func (i fixItem) FilterValue() string { return i.result.Message + " " + i.result.Command }

// fixPickerModel is the bubbletea model for the fix picker
type fixPickerModel struct {
	list      list.Model
	confirmed bool
	quitting  bool
}

func (m fixPickerModel) Init() tea.Cmd {
	return nil
}

func (m fixPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case " ":
			if item, ok := m.list.SelectedItem().(fixItem); ok {
				item.checked = !item.checked
				return m, m.list.SetItem(m.list.Index(), item)
			}
		case "a":
			return m, m.toggleAll()
		case "enter":
			m.confirmed = true
			m.quitting = true
			return m, tea.Quit
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height - 2)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *fixPickerModel) toggleAll() tea.Cmd {
	items := m.list.Items()
	allChecked := true
	for _, it := range items {
		if fi, ok := it.(fixItem); ok && !fi.checked {
			allChecked = false
			break
		}
	}

	next := make([]list.Item, len(items))
	for i, it := range items {
		fi := it.(fixItem)
		fi.checked = !allChecked
		next[i] = fi
	}
	return m.list.SetItems(next)
}

func (m fixPickerModel) View() string {
	if m.quitting {
		return ""
	}
	return m.list.View() + "\n space toggle · a all · enter apply · q cancel\n"
}

// runFixPicker lets the operator choose a subset of fixable findings.
// Everything starts checked, so enter with no changes applies all fixes.
// The second return value is false when the operator cancelled.
func runFixPicker(fixable []domain.Result) ([]domain.Result, bool, error) {
	items := make([]list.Item, 0, len(fixable))
	for _, r := range fixable {
		items = append(items, fixItem{result: r, checked: true})
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color("39")).
		Foreground(lipgloss.Color("39")).
		Padding(0, 0, 0, 1)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle.Foreground(lipgloss.Color("241"))

	l := list.New(items, delegate, 0, 0)
	l.Title = "Select fixes to apply"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Styles.Title = lipgloss.NewStyle().
		Background(lipgloss.Color("39")).
		Foreground(lipgloss.Color("0")).
		Padding(0, 1)

	m := fixPickerModel{list: l}
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return nil, false, fmt.Errorf("picker error: %w", err)
	}

	result := finalModel.(fixPickerModel)
	if !result.confirmed {
		return nil, false, nil
	}

	var chosen []domain.Result
	for _, it := range result.list.Items() {
		if fi, ok := it.(fixItem); ok && fi.checked {
			chosen = append(chosen, fi.result)
		}
	}
	return chosen, true, nil
}
