package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1)

	visibleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	enterStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	exitStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	hiddenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).MarginTop(1)
	canvasStyle  = lipgloss.NewStyle().MarginTop(1).PaddingLeft(1)
)
