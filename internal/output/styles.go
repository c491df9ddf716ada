package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Never use inline lipgloss.Color literals elsewhere.
var (
	// ColorCyan is used for identifiable nouns: example names, files, URLs.
	ColorCyan = lipgloss.Color("14")

	// ColorBoldRed is used for violation counts.
	ColorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the success checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for rules and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns.
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleDim styles structural chrome (scope prefixes, separators).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)

	// StyleFailure styles a non-zero violation count.
	StyleFailure = lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
)

// FormatCheckmark renders a green checkmark with a message.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}

// FormatProgress renders a "Working on ..." progress line for a noun.
func FormatProgress(kind, name string) string {
	if kind == "" {
		return fmt.Sprintf("Working on %s", StyleNoun.Render(name))
	}
	return fmt.Sprintf("Working on %s '%s'", kind, StyleNoun.Render(name))
}
