package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#10B981")
	colorAccent    = lipgloss.Color("#F59E0B")
	colorError     = lipgloss.Color("#EF4444")
	colorMuted     = lipgloss.Color("#6B7280")
	colorFg        = lipgloss.Color("#F9FAFB")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	// Display styles
	ExprStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	ResultStyle = lipgloss.NewStyle().
			Foreground(colorFg).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	DetailStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	// Status indicators
	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#374151")).
			Foreground(colorFg).
			Padding(0, 1)

	IndicatorStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	MemoryStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	InputStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)
)

// RenderHelp renders the key help line.
func RenderHelp(help string) string {
	return HelpStyle.Render(help)
}
