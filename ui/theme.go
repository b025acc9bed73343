// Package ui provides the terminal front end for a company session.
package ui

import "github.com/charmbracelet/lipgloss"

// Theme holds the styles used by all UI components.
type Theme struct {
	Title         lipgloss.Style
	Panel         lipgloss.Style
	SectionHeader lipgloss.Style
	Label         lipgloss.Style
	Value         lipgloss.Style
	Positive      lipgloss.Style
	Negative      lipgloss.Style
	Muted         lipgloss.Style
	Status        lipgloss.Style

	BarFill  lipgloss.Style
	BarEmpty lipgloss.Style

	LabelWidth int
	BarWidth   int
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		Title:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
		Panel:         lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		SectionHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226")),
		Label:         lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		Value:         lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		Positive:      lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		Negative:      lipgloss.NewStyle().Foreground(lipgloss.Color("167")),
		Muted:         lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
		Status:        lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("180")),
		BarFill:       lipgloss.NewStyle().Foreground(lipgloss.Color("74")),
		BarEmpty:      lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		LabelWidth:    14,
		BarWidth:      20,
	}
}
