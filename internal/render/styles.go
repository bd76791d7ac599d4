package render

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title  lipgloss.Style
	header lipgloss.Style
	row    lipgloss.Style
	due    lipgloss.Style
	faint  lipgloss.Style
	retry  lipgloss.Style
	hard   lipgloss.Style
	normal lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:  lipgloss.NewStyle().Bold(true),
		header: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		row:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		due:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		faint:  lipgloss.NewStyle().Faint(true),
		retry:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		hard:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		normal: lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
	}
}
