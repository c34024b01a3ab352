// Package plan renders a scheduled day in a scrollable viewport.
package plan

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/energyflow/internal/models"
)

var (
	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(14)

	taskStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

type Model struct {
	viewport viewport.Model
	tasks    []models.ScheduledTask
	warnings []string
	date     string
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.date == "" {
		return "No schedule yet. Add tasks with 'a' and press 'g' to generate."
	}
	return m.viewport.View()
}

func (m Model) HasPlan() bool { return m.date != "" }

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.render()
}

func (m *Model) SetPlan(date string, tasks []models.ScheduledTask, warnings []string) {
	m.date = date
	m.tasks = tasks
	m.warnings = warnings
	m.render()
	m.viewport.GotoTop()
}

func (m *Model) Clear() {
	m.date = ""
	m.tasks = nil
	m.warnings = nil
	m.viewport.SetContent("")
}

func (m *Model) render() {
	if m.date == "" {
		return
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Schedule for %s\n\n", m.date)
	for _, t := range m.tasks {
		if !t.Scheduled {
			continue
		}
		fmt.Fprintf(&b, "%s %s %s\n",
			timeStyle.Render(t.StartTime+" - "+t.EndTime),
			taskStyle.Render(t.Name),
			statusStyle.Render(fmt.Sprintf("%s energy, %s priority, %d", t.EnergyConsumption, t.Priority, t.EnergyLevel)),
		)
	}
	for _, t := range m.tasks {
		if t.Scheduled {
			continue
		}
		fmt.Fprintf(&b, "%s %s %s\n", timeStyle.Render("unscheduled"), taskStyle.Render(t.Name), statusStyle.Render(t.Reason))
	}
	for _, w := range m.warnings {
		b.WriteString(warnStyle.Render("⚠ "+w) + "\n")
	}
	m.viewport.SetContent(b.String())
}
