package common

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines shared key bindings across all views.
type KeyMap struct {
	Quit        key.Binding
	ForceQuit   key.Binding
	Submit      key.Binding // enter: run search
	Cancel      key.Binding // esc: leave form or clear filter
	NextField   key.Binding
	PrevField   key.Binding
	NextTab     key.Binding
	PrevTab     key.Binding
	TabAll      key.Binding
	TabPositive key.Binding
	TabNegative key.Binding
	NewSearch   key.Binding // s: back to the search form
	Filter      key.Binding // /: filter the post table
	Export      key.Binding // w: save word cloud PNG and open it
	Up          key.Binding
	Down        key.Binding
	ToggleHints key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev field"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("shift+tab/←", "prev tab"),
		),
		TabAll: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "all"),
		),
		TabPositive: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "positive"),
		),
		TabNegative: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "negative"),
		),
		NewSearch: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "new search"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Export: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "export word cloud"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		ToggleHints: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "hints"),
		),
	}
}

// ShortHelp implements help.KeyMap for the dashboard footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Filter, k.Export, k.NewSearch, k.Quit, k.ToggleHints}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.TabAll, k.TabPositive, k.TabNegative},
		{k.Up, k.Down, k.Filter, k.Cancel},
		{k.Export, k.NewSearch, k.Quit, k.ForceQuit, k.ToggleHints},
	}
}
