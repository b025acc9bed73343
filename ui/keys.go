package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Work key.Binding
	Hire key.Binding
	Quit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Work: key.NewBinding(
			key.WithKeys("w", " "),
			key.WithHelp("w/space", "work"),
		),
		Hire: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "hire"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Work, k.Hire, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
