package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Ignore        key.Binding
	IgnoreForever key.Binding
	Throw         key.Binding
	Debug         key.Binding
	Abort         key.Binding
	Cancel        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Ignore:        key.NewBinding(key.WithKeys("i", "I"), key.WithHelp("i", "ignore")),
		IgnoreForever: key.NewBinding(key.WithKeys("f", "F"), key.WithHelp("f", "ignore forever")),
		Throw:         key.NewBinding(key.WithKeys("t", "T"), key.WithHelp("t", "throw")),
		Debug:         key.NewBinding(key.WithKeys("d", "D"), key.WithHelp("d", "debug")),
		Abort:         key.NewBinding(key.WithKeys("b", "B"), key.WithHelp("b", "abort")),
		Cancel:        key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "ignore")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Ignore, k.IgnoreForever, k.Throw, k.Debug, k.Abort}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Cancel}}
}
