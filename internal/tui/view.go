package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jonathan/cv-builder/internal/cvstate"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	stepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))
	labelStyle = lipgloss.NewStyle().
			Width(14).
			Foreground(lipgloss.Color("#888888"))
	focusedLabelStyle = labelStyle.
				Foreground(lipgloss.Color("#FFFFFF")).
				Bold(true)
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5B8DEF")).
			Bold(true)
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555"))
)

// View implements tea.Model.
func (m *Model) View() string {
	step := m.state.CurrentStep()

	var b strings.Builder
	b.WriteString(titleStyle.Render("CV Builder"))
	b.WriteString("\n")
	b.WriteString(stepStyle.Render(fmt.Sprintf("Step %d of %d · %s · %s",
		m.state.Step+1, len(cvstate.Steps), step.Title, step.Description)))
	b.WriteString("\n\n")

	width := 72
	if m.width > 0 {
		width = max(40, m.width-4)
	}
	b.WriteString(boxStyle.Width(width).Render(m.renderStep()))
	b.WriteString("\n")

	info := m.state.Template.Info()
	b.WriteString(statusStyle.Render(fmt.Sprintf("Template: %s (%s) · File: %s", info.Name, info.Description, m.state.FileName())))
	b.WriteString("\n")

	switch {
	case m.err != "":
		b.WriteString(errorStyle.Render(m.err))
	case m.status != "":
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help()))
	return b.String()
}

func (m *Model) renderStep() string {
	var b strings.Builder
	switch m.stepID() {
	case "experience", "education":
		noun := m.stepID()
		n := m.entryCount()
		if n == 0 {
			return fmt.Sprintf("No %s added yet. Press ctrl+a to add one.", noun)
		}
		header := fmt.Sprintf("Entry %d of %d", m.entry+1, n)
		if noun == "experience" && m.state.Document.Experience[m.entry].Current {
			header += " · current position"
		}
		b.WriteString(selectedStyle.Render(header))
		b.WriteString("\n\n")
	case "skills":
		b.WriteString(m.renderSkills())
		b.WriteString("\n\n")
	}
	b.WriteString(m.renderInputs())
	return b.String()
}

func (m *Model) renderInputs() string {
	fields := fieldsFor(m.stepID())
	lines := make([]string, 0, len(fields))
	for i, f := range fields {
		label := labelStyle.Render(f.label)
		if i == m.focus {
			label = focusedLabelStyle.Render(f.label)
		}
		lines = append(lines, label+" "+m.inputs[i].View())
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderSkills() string {
	skills := m.state.Document.Skills
	if len(skills) == 0 {
		return "No skills added yet."
	}
	parts := make([]string, len(skills))
	for i, s := range skills {
		if i == m.entry {
			parts[i] = selectedStyle.Render("[" + s + "]")
		} else {
			parts[i] = s
		}
	}
	return strings.Join(parts, " • ")
}

func (m *Model) help() string {
	keys := []string{"tab next field", "ctrl+n/ctrl+p step", "ctrl+t template"}
	switch m.stepID() {
	case "experience":
		keys = append(keys, "ctrl+a add", "ctrl+d remove", "ctrl+up/down entry", "ctrl+r current")
	case "education":
		keys = append(keys, "ctrl+a add", "ctrl+d remove", "ctrl+up/down entry")
	case "skills":
		keys = append(keys, "enter add", "ctrl+d remove", "ctrl+up/down select")
	}
	if m.state.IsLastStep() {
		keys = append(keys, "ctrl+e download PDF")
	}
	keys = append(keys, "esc quit")
	return strings.Join(keys, " · ")
}
