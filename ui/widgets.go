package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// Panel wraps lines in a bordered panel.
func (r *Renderer) Panel(lines ...string) string {
	return r.Theme.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// SectionHeader renders a section header.
func (r *Renderer) SectionHeader(title string) string {
	return r.Theme.SectionHeader.Render(title)
}

// LabelValue renders a label and value on the same line.
func (r *Renderer) LabelValue(label, value string) string {
	l := r.Theme.Label.Width(r.Theme.LabelWidth).Render(label + ":")
	return l + r.Theme.Value.Render(value)
}

// SignedValue renders a label and a value coloured by its sign.
func (r *Renderer) SignedValue(label string, v float64, format string) string {
	style := r.Theme.Positive
	if v < 0 {
		style = r.Theme.Negative
	}
	l := r.Theme.Label.Width(r.Theme.LabelWidth).Render(label + ":")
	return l + style.Render(fmt.Sprintf(format, v))
}

// Bar renders a progress bar for a value in [0, 1].
func (r *Renderer) Bar(label string, value float64) string {
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}
	filled := int(value*float64(r.Theme.BarWidth) + 0.5)
	bar := r.Theme.BarFill.Render(strings.Repeat("█", filled)) +
		r.Theme.BarEmpty.Render(strings.Repeat("░", r.Theme.BarWidth-filled))
	l := r.Theme.Label.Width(r.Theme.LabelWidth).Render(label + ":")
	return fmt.Sprintf("%s%s %3.0f%%", l, bar, value*100)
}
