package cli

import "github.com/charmbracelet/lipgloss"

// Tuner colour palette.
// Shared colours for consistent branding across CLI and the live TUI.
var (
	// In-tune and sharp/flat indicators.
	NoteGreen = lipgloss.Color("#34D399") // in tune (|cents| small)
	NoteAmber = lipgloss.Color("#F59E0B") // mildly sharp or flat
	NoteRed   = lipgloss.Color("#EF4444") // sharp or flat past threshold

	// Accent colours.
	WarmGray = lipgloss.Color("#888888") // subtle text
)
