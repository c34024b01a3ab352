package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/energyflow/internal/energy"
)

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateNow:
		content = docStyle.Render(m.viewNow())
	case StatePlanner:
		content = docStyle.Render(m.viewPlanner())
	case StateBoard:
		content = docStyle.Render(m.viewBoard())
	case StateAddPending, StateAddBoardTask:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirm("Are you sure you want to delete this task?")
	case StateConfirmSave:
		content = m.viewConfirm("Replace the task board with this schedule?")
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	active := m.state
	if active >= tabCount {
		active = m.previousState
	}
	var tabs []string
	for i, title := range []string{"Now", "Planner", "Board"} {
		if active == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	if m.err != nil {
		return errorStyle.Render("  " + m.err.Error())
	}
	return statusStyle.Render("  " + m.status)
}

func (m Model) viewNow() string {
	zone := energy.CurrentZone(m.now)
	zoneStyle := lipgloss.NewStyle().Foreground(zoneColors[string(zone.Zone)]).Bold(true)

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", titleStyle.Render(m.now.Format("Mon Jan 2 15:04")), zoneStyle.Render(zone.Name))
	fmt.Fprintf(&b, "%s\n\n", statusStyle.Render(zone.Focus))

	if m.profile == nil {
		b.WriteString("No energy profile yet. Run 'energyflow quiz' to create one.\n")
		return b.String()
	}

	p := m.profile
	fmt.Fprintf(&b, "Expected energy now: %d\n\n", int(energy.Clamp(energy.EnergyAt(m.now.Hour(), *p))))
	b.WriteString(m.viewSparkline() + "\n\n")
	fmt.Fprintf(&b, "Chronotype  %s (peak %02d:00-%02d:00)\n", p.Chronotype.Label, p.Chronotype.PeakStart, p.Chronotype.PeakEnd)
	fmt.Fprintf(&b, "Amplitude   %s\n", p.Amplitude.Label)
	fmt.Fprintf(&b, "Recovery    %s (%d min breaks)\n", p.Recovery.Label, p.Recovery.BreakTimeMinutes)
	fmt.Fprintf(&b, "Schedule    %s\n", p.External.Label)
	return b.String()
}

// viewSparkline draws the 24-hour curve with the current hour highlighted.
func (m Model) viewSparkline() string {
	var bars, axis strings.Builder
	for _, pt := range m.curve {
		idx := pt.Energy * (len(sparkBlocks) - 1) / 100
		idx = max(0, min(idx, len(sparkBlocks)-1))
		style := lipgloss.NewStyle().Foreground(zoneColors[string(energy.ZoneForHour(pt.Hour))])
		if pt.Hour == m.now.Hour() {
			style = style.Reverse(true)
		}
		bars.WriteString(style.Render(string(sparkBlocks[idx])))
		if pt.Hour%6 == 0 {
			axis.WriteString(fmt.Sprintf("%-6d", pt.Hour))
		}
	}
	return bars.String() + "\n" + statusStyle.Render(axis.String())
}

func (m Model) viewPlanner() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Pending tasks (%d)", len(m.pending))) + "\n")
	if len(m.pending) == 0 {
		b.WriteString(statusStyle.Render("  none, press 'a' to add") + "\n")
	}
	for i, t := range m.pending {
		fmt.Fprintf(&b, "  %d. %s  %s energy, %s priority, %.2gh\n", i+1, t.Name, t.EnergyConsumption, t.Priority, t.Duration)
	}
	b.WriteString("\n")
	b.WriteString(m.planModel.View())
	return b.String()
}

func (m Model) viewBoard() string {
	cols := make([]string, len(m.columns))
	for i, c := range m.columns {
		style := columnStyle
		if i == m.focus {
			style = focusedColumnStyle
		}
		cols[i] = style.Render(c.View())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m Model) viewConfirm(question string) string {
	return lipgloss.Place(m.width, max(m.height-4, 5),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(question),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
