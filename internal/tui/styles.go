package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	frame  lipgloss.Style
	text   lipgloss.Style
	status lipgloss.Style
	help   lipgloss.Style
	err    lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		frame:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("6")).Padding(0, 1),
		text:   lipgloss.NewStyle().Bold(true),
		status: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		help:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		err:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
}
