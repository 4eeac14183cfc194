package tui

import (
	"look/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles the navigator renders with.
type Styles struct {
	// Result pane
	Pane     lipgloss.Style
	Title    lipgloss.Style
	Row      lipgloss.Style
	Match    lipgloss.Style
	Selected lipgloss.Style
	// Selected row's matched span
	SelectedMatch lipgloss.Style

	// Status line under the result pane
	Status lipgloss.Style

	// Input pane
	Input  lipgloss.Style
	Cursor lipgloss.Style
	Output lipgloss.Style
}

// NewStyles builds the navigator styles from theme colours.
func NewStyles(theme config.ThemeConfig) Styles {
	border := lipgloss.Color(theme.Border)

	selected := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.SelectedFg)).
		Background(lipgloss.Color(theme.SelectedBg)).
		Bold(true)

	return Styles{
		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border),

		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Title)).
			Bold(true),

		Row: lipgloss.NewStyle(),

		Match: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Highlight)).
			Bold(true),

		Selected: selected,

		SelectedMatch: selected.
			Foreground(lipgloss.Color(theme.Highlight)).
			Underline(true),

		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#959595")),

		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border),

		Cursor: lipgloss.NewStyle().
			Reverse(true),

		Output: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCCCCC")),
	}
}

// DefaultStyles returns the styles for the default theme.
func DefaultStyles() Styles {
	return NewStyles(config.New().Theme)
}
