package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
//
// Letter keys are left to the text input, so quitting uses esc and ctrl+c.
type keyMap struct {
	submit  key.Binding
	dismiss key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "identify genre")),
		dismiss: key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter/esc", "dismiss")),
		quit:    key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.submit, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.submit, k.dismiss},
		{k.quit},
	}
}
