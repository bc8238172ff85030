package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	Choose      key.Binding
	Acknowledge key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Choose: key.NewBinding(
			key.WithKeys("1", "2", "3"),
			key.WithHelp("1-3", "Choose start time"),
		),
		Acknowledge: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Quit"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Choose, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Choose},
		{k.Acknowledge, k.Quit},
	}
}
