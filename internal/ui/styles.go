package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
// - Default (white/black): primary text
// - Accent (soft purple #A78BFA): highlights, IDs, interactive elements
// - Muted (gray): secondary info, table headers
// - No colored success/error/warning; unicode symbols carry the meaning

const defaultAccent = "#A78BFA"

var (
	accentColor = defaultAccent

	// Accent style for IDs, names, highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent))

	// Muted style for secondary info, hints, table headers
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)
)

// ConfigureTheme overrides the accent color. Accepts ANSI codes ("0"-"255")
// or hex colors ("#RRGGBB"); empty keeps the default.
func ConfigureTheme(accent string) {
	if accent == "" {
		return
	}
	accentColor = accent
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(accent))
}

// AccentColor returns the active accent color.
func AccentColor() string {
	return accentColor
}
