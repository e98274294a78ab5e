package tui

import "github.com/charmbracelet/lipgloss"

var (
	panelBorder = lipgloss.RoundedBorder()
	panelStyle  = lipgloss.NewStyle().Border(panelBorder).Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true)

	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	pillStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).
			Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11"))
	donePillStyle = pillStyle.Background(lipgloss.Color("10"))
	idlePillStyle = pillStyle.Background(lipgloss.Color("8"))
)
