package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the keybindings of the arbitration view.
type KeyMap struct {
	// KeepFirst keeps the incoming record.
	KeepFirst key.Binding

	// KeepSecond keeps the stored record.
	KeepSecond key.Binding

	// Up scrolls the records up.
	Up key.Binding

	// Down scrolls the records down.
	Down key.Binding

	// Abort cancels the whole run.
	Abort key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		KeepFirst: key.NewBinding(
			key.WithKeys("a", "A"),
			key.WithHelp("a", "keep incoming"),
		),
		KeepSecond: key.NewBinding(
			key.WithKeys("b", "B"),
			key.WithHelp("b", "keep stored"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Abort: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "abort run"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.KeepFirst, k.KeepSecond, k.Up, k.Down, k.Abort}
}
