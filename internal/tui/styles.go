package tui

import "github.com/charmbracelet/lipgloss"

var (
	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	dangerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	titleStyle = lipgloss.NewStyle().Bold(true)

	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238"))

	focusedColumnStyle = columnStyle.BorderForeground(lipgloss.Color("205"))

	zoneColors = map[string]lipgloss.Color{
		"morning":   lipgloss.Color("214"),
		"afternoon": lipgloss.Color("39"),
		"evening":   lipgloss.Color("141"),
	}
)
