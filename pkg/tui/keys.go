package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the browser's key bindings.
type keyMap struct {
	Search      key.Binding
	NextGroup   key.Binding
	PrevGroup   key.Binding
	GroupBy     key.Binding
	Columns     key.Binding
	Industries  key.Binding
	Toggle      key.Binding
	Close       key.Binding
	Rate        key.Binding
	RaiseMin    key.Binding
	LowerMin    key.Binding
	ClearFilter key.Binding
	Reload      key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		NextGroup: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next group"),
		),
		PrevGroup: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev group"),
		),
		GroupBy: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "group by"),
		),
		Columns: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "columns"),
		),
		Industries: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "industries"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Rate: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5"),
			key.WithHelp("1-5", "rate"),
		),
		RaiseMin: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+/-", "min score"),
		),
		LowerMin: key.NewBinding(
			key.WithKeys("-"),
		),
		ClearFilter: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear filters"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.NextGroup, k.GroupBy, k.Rate, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.NextGroup, k.PrevGroup, k.GroupBy},
		{k.Columns, k.Industries, k.Toggle, k.Close},
		{k.Rate, k.RaiseMin, k.ClearFilter, k.Reload},
		{k.Help, k.Quit},
	}
}
