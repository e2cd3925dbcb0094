package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"typeahead/internal/ui/input"
)

// KeyMap adds the host bindings to the widget's
type KeyMap struct {
	input.KeyMap
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default host bindings
func DefaultKeyMap(widget input.KeyMap) KeyMap {
	return KeyMap{
		KeyMap: widget,
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return append(k.KeyMap.ShortHelp(), k.Help, k.Quit)
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return append(k.KeyMap.FullHelp(), []key.Binding{k.Help, k.Quit})
}
