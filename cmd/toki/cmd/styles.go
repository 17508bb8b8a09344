package cmd

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	colorError  = lipgloss.Color("#EF4444")
	colorAccent = lipgloss.Color("#F59E0B")
	colorMuted  = lipgloss.Color("#6B7280")
)

// Styles
var (
	errorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)
