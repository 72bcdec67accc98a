package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorDestructive = lipgloss.Color("#e53935")
	colorWarning     = lipgloss.Color("#FFC107")
	colorAccent      = lipgloss.Color("#8BC34A")
)

// Styles holds the lipgloss styles used to render the prompt.
type Styles struct {
	Record  lipgloss.Style
	Prompt  lipgloss.Style
	Invalid lipgloss.Style
	Choice  lipgloss.Style
}

// DefaultStyles returns the standard prompt styling.
func DefaultStyles() Styles {
	return Styles{
		Record: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDestructive).
			Padding(0, 1),
		Prompt:  lipgloss.NewStyle().Bold(true).Foreground(colorWarning),
		Invalid: lipgloss.NewStyle().Foreground(colorDestructive),
		Choice:  lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
	}
}
