package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the widget
type Styles struct {
	Prompt      lipgloss.Style
	Text        lipgloss.Style
	Placeholder lipgloss.Style
	List        lipgloss.Style
	Row         lipgloss.Style
	Selected    lipgloss.Style
	Busy        lipgloss.Style
	Dim         lipgloss.Style
	Error       lipgloss.Style
	Scroll      lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true),
		Text:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Placeholder: lipgloss.NewStyle().Faint(true),
		List: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")),
		Row:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Background(lipgloss.Color("238")).Bold(true),
		Busy:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Dim:      lipgloss.NewStyle().Faint(true),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Scroll:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	}
}
