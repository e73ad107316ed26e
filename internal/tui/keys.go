package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the dashboard key bindings. It implements help.KeyMap.
type keyMap struct {
	NextTab   key.Binding
	PrevTab   key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	ToggleJun key.Binding
	ToggleNov key.Binding
	Drilldown key.Binding
	Reset     key.Binding
	Export    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextTab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
		PrevTab:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous view")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous filter")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next filter")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous value")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next value")),
		ToggleJun: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "toggle Jun'25")),
		ToggleNov: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "toggle Nov'25")),
		Drilldown: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "demand drilldown")),
		Reset:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset filters")),
		Export:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export xlsx")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Down, k.Right, k.Export, k.Help, k.Quit}
}

// FullHelp returns every binding, grouped in columns.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.Up, k.Down},
		{k.Left, k.Right, k.ToggleJun, k.ToggleNov},
		{k.Drilldown, k.Reset, k.Export},
		{k.Help, k.Quit},
	}
}
