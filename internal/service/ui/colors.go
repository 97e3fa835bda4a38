package ui

import "github.com/charmbracelet/lipgloss"

// Plain ANSI colors only, so the palette survives any terminal theme.
var (
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).MarginBottom(1)

	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	DescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	FlagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	// AnswerStyle marks assistant replies in the chat loop.
	AnswerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)
