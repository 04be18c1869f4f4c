package tui

import (
	"charm.land/lipgloss/v2"
)

// Package-level styles instance (nil until initialized)
var appStyles *Styles

// Styles holds the browser styles. Colors are left to the terminal theme.
type Styles struct {
	BorderStyle      lipgloss.Style
	SelectedStyle    lipgloss.Style
	SearchInputStyle lipgloss.Style
	FooterStyle      lipgloss.Style
	SubtleStyle      lipgloss.Style
	MatchStyle       lipgloss.Style
	TagStyle         lipgloss.Style
	ActiveTagStyle   lipgloss.Style
	TagCursorStyle   lipgloss.Style
	URLStyle         lipgloss.Style
	ErrorStyle       lipgloss.Style
}

// newStyles uses lipgloss.NoColor everywhere so the terminal's own palette
// applies; emphasis comes from bold, italic, underline and reverse.
func newStyles() *Styles {
	noColor := lipgloss.NoColor{}

	return &Styles{
		BorderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(noColor),

		SelectedStyle: lipgloss.NewStyle().
			Foreground(noColor).
			Bold(true),

		SearchInputStyle: lipgloss.NewStyle().
			Foreground(noColor),

		FooterStyle: lipgloss.NewStyle().
			Foreground(noColor).
			Italic(true),

		SubtleStyle: lipgloss.NewStyle().
			Foreground(noColor).
			Faint(true),

		MatchStyle: lipgloss.NewStyle().
			Foreground(noColor).
			Underline(true).
			Bold(true),

		TagStyle: lipgloss.NewStyle().
			Foreground(noColor),

		ActiveTagStyle: lipgloss.NewStyle().
			Foreground(noColor).
			Reverse(true),

		TagCursorStyle: lipgloss.NewStyle().
			Foreground(noColor).
			Underline(true),

		URLStyle: lipgloss.NewStyle().
			Foreground(noColor).
			Faint(true),

		ErrorStyle: lipgloss.NewStyle().
			Foreground(noColor).
			Bold(true),
	}
}

// getStyles returns the current styles instance, with fallback for startup
func getStyles() *Styles {
	if appStyles == nil {
		return newStyles()
	}
	return appStyles
}
