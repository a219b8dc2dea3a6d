// Package tui provides the interactive browser for the wren file
// manager, built on Charmbracelet's Bubble Tea, Lip Gloss, and Bubbles.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette for the TUI.
var (
	dirColor     = lipgloss.Color("#00D9FF")
	symlinkColor = lipgloss.Color("#DC78DC")
	mutedColor   = lipgloss.Color("#666666")
	dangerColor  = lipgloss.Color("#DC3545")
	accentColor  = lipgloss.Color("#7D56F4")
	markColor    = lipgloss.Color("#FFC107")
)

// Item styles.
var (
	dirStyle     = lipgloss.NewStyle().Foreground(dirColor).Bold(true)
	symlinkStyle = lipgloss.NewStyle().Foreground(symlinkColor)
	fileStyle    = lipgloss.NewStyle()
	hiddenStyle  = lipgloss.NewStyle().Foreground(mutedColor)

	// cursorStyle highlights the row under the cursor.
	cursorStyle = lipgloss.NewStyle().Reverse(true)

	// markStyle flags multi-selected rows.
	markStyle = lipgloss.NewStyle().Foreground(markColor).Bold(true)
)

// Chrome styles.
var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	statusStyle = lipgloss.NewStyle().Foreground(mutedColor)
	errorStyle  = lipgloss.NewStyle().Foreground(dangerColor)
	timeStyle   = lipgloss.NewStyle().Foreground(mutedColor)
)
