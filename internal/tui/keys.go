package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	SwitchPane key.Binding
	FocusLeft  key.Binding
	FocusRight key.Binding
	ToggleDiff key.Binding
	Up         key.Binding
	Down       key.Binding
	Top        key.Binding
	Bottom     key.Binding
	Open       key.Binding
	Import     key.Binding
	Export     key.Binding
	Reload     key.Binding
	ReloadAll  key.Binding
	Strike     key.Binding
	Copy       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		SwitchPane: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "pane")),
		FocusLeft:  key.NewBinding(key.WithKeys("left", "h")),
		FocusRight: key.NewBinding(key.WithKeys("right", "l")),
		ToggleDiff: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "diff/list")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Top:        key.NewBinding(key.WithKeys("home", "g")),
		Bottom:     key.NewBinding(key.WithKeys("end", "G")),
		Open:       key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open")),
		Import:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import")),
		Export:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
		Reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		ReloadAll:  key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reload both")),
		Strike:     key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "strike")),
		Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy diff")),
	}
}

// hints returns the bindings shown in the footer, in display order.
func (k keyMap) hints() []key.Binding {
	return []key.Binding{k.Open, k.Import, k.Export, k.Reload, k.SwitchPane, k.ToggleDiff, k.Strike, k.Copy, k.Quit}
}
