package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	primaryColor   = lipgloss.Color("#34D399") // Tuner green
	accentColor    = lipgloss.Color("#60A5FA") // Blue
	successColor   = lipgloss.Color("#34D399") // Green
	mutedColor     = lipgloss.Color("#888888") // Gray
	highlightColor = lipgloss.Color("#F59E0B") // Amber
	textColor      = lipgloss.Color("#FFFFFF") // White
	errorColor     = lipgloss.Color("#EF4444") // Red
)

// Styles
var (
	// Title style - bold and brightly coloured
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	// Subtitle style - muted gray
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	// Section header style
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			MarginTop(1).
			MarginBottom(1)

	// Success message style
	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(successColor)

	// Error message style
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(errorColor)

	// Highlight style for important values
	HighlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(highlightColor)

	// Key-value pair styles
	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)

	// Box style for framed content
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2).
			MarginTop(1).
			MarginBottom(1)
)

// PrintBanner prints the application banner
func PrintBanner() {
	banner := TitleStyle.Render("Tuner")
	subtitle := SubtitleStyle.Render("Real-time and offline pitch detection with selectable historical temperaments.")
	fmt.Println(banner)
	fmt.Println(subtitle)
	fmt.Println()
}

// PrintVersion prints version information
func PrintVersion(version string) {
	fmt.Println(TitleStyle.Render("Tuner"))
	fmt.Printf("%s %s\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
	fmt.Println()
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	fmt.Printf("%s %s\n", HighlightStyle.Render("Warning:"), message)
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Printf("%s %s\n", SuccessStyle.Render("✓"), message)
}

// PrintInfo prints an informational message
func PrintInfo(key, value string) {
	fmt.Printf("%s %s\n", KeyStyle.Render(key+":"), ValueStyle.Render(value))
}

// PrintSection prints a section header
func PrintSection(title string) {
	fmt.Println(HeaderStyle.Render(title))
}

// FormatDuration formats a duration nicely
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", d.Seconds()*1000)
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// PrintBox prints content in a styled box
func PrintBox(content string) {
	fmt.Println(BoxStyle.Render(content))
}

// PrintSummary prints a one-file analysis summary in a box. The tuner
// command emits its results as JSON only and does not call it.
func PrintSummary(noteName string, octave int, frequency, cents float64, validFrames int) {
	var b strings.Builder

	b.WriteString(SuccessStyle.Render("✓ Analysis Complete"))
	b.WriteString("\n\n")

	b.WriteString(KeyStyle.Render("Note:          "))
	b.WriteString(ValueStyle.Render(fmt.Sprintf("%s%d", noteName, octave)))
	b.WriteString("\n")

	b.WriteString(KeyStyle.Render("Frequency:     "))
	b.WriteString(ValueStyle.Render(fmt.Sprintf("%.2f Hz", frequency)))
	b.WriteString("\n")

	b.WriteString(KeyStyle.Render("Cents:         "))
	b.WriteString(ValueStyle.Render(fmt.Sprintf("%+.1f", cents)))
	b.WriteString("\n")

	b.WriteString(KeyStyle.Render("Valid frames:  "))
	b.WriteString(ValueStyle.Render(fmt.Sprintf("%d", validFrames)))

	PrintBox(b.String())
}
