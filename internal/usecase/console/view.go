package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"bugtrack/internal/domain/bug"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
)

func (m *Model) View() string {
	if m.mode == modeForm {
		return m.formView()
	}
	return m.listView()
}

func (m *Model) listView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Bug Tracker"))
	b.WriteString("\n\n")

	switch m.state {
	case stateIdle, stateLoading:
		b.WriteString(dimStyle.Render("Loading bugs..."))
		b.WriteString("\n")
	case stateErrored:
		b.WriteString(errorStyle.Render(m.listError))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("press r to retry"))
		b.WriteString("\n")
	case stateLoaded:
		if len(m.bugs) == 0 {
			b.WriteString(dimStyle.Render("No bugs found. Create one to get started!"))
			b.WriteString("\n")
		}
		for i, item := range m.bugs {
			line := fmt.Sprintf("%s  [%s/%s]  %s",
				item.Title, item.Priority, item.Status,
				item.CreatedAt.Format("2006-01-02 15:04"))
			if i == m.selectedIndex {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
			if i == m.selectedIndex {
				b.WriteString(dimStyle.Render("    " + item.Description))
				b.WriteString("\n")
			}
		}
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("n new · s cycle status · d delete · r refresh · q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) formView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Report a New Bug"))
	b.WriteString("\n\n")

	if m.form.errorMsg != "" {
		b.WriteString(errorStyle.Render(m.form.errorMsg))
		b.WriteString("\n\n")
	}

	b.WriteString(m.fieldLine(focusTitle, "Title", m.form.title))
	b.WriteString(m.fieldLine(focusDescription, "Description", m.form.description))

	priority := string(bug.Priorities()[m.form.priorityIndex])
	b.WriteString(m.fieldLine(focusPriority, "Priority", "< "+priority+" >"))

	submit := "[ Submit Bug ]"
	if m.submitting {
		submit = "[ Submitting... ]"
	}
	if m.form.focus == focusSubmit {
		b.WriteString(selectedStyle.Render(submit))
	} else {
		b.WriteString(dimStyle.Render(submit))
	}
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("tab next field · enter submit · esc cancel"))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) fieldLine(focus int, label, value string) string {
	cursor := "  "
	if m.form.focus == focus {
		cursor = selectedStyle.Render("> ")
	}
	return fmt.Sprintf("%s%s: %s\n", cursor, labelStyle.Render(label), value)
}
