package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#7D56F4")
	colorAccent  = lipgloss.Color("#43BF6D")
	colorDanger  = lipgloss.Color("#F25D94")
	colorMuted   = lipgloss.Color("#6B6B6B")

	colorIncomeLine = lipgloss.Color("#00B4D8")
	colorDaysLine   = lipgloss.Color("#F4A261")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	helpKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorDanger)

	metricLabelStyle = lipgloss.NewStyle().
				Foreground(colorMuted)

	metricValueStyle = lipgloss.NewStyle().
				Bold(true)

	selectedSplitStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorAccent)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorDanger)
)
