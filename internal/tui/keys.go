package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Focus    key.Binding
	Search   key.Binding
	Sort     key.Binding
	Refresh  key.Binding
	Tags     key.Binding
	Toggle   key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Outcome  key.Binding
	Notes    key.Binding
	Commit   key.Binding
	Help     key.Binding
	Quit     key.Binding
	Accept   key.Binding
	Cancel   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Focus:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "list/detail")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Sort:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "cycle sort")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh order")),
		Tags:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tag filter")),
		Toggle:   key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space/x", "toggle done")),
		MoveUp:   key.NewBinding(key.WithKeys("shift+up", "K"), key.WithHelp("K", "essay up")),
		MoveDown: key.NewBinding(key.WithKeys("shift+down", "J"), key.WithHelp("J", "essay down")),
		Outcome:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "next outcome")),
		Notes:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "edit notes")),
		Commit:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "commit essay")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Accept:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "done")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Tags, k.Sort, k.Refresh, k.Toggle, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Focus},
		{k.Search, k.Tags, k.Sort, k.Refresh},
		{k.Toggle, k.Outcome, k.Notes},
		{k.MoveUp, k.MoveDown, k.Commit},
		{k.Help, k.Quit},
	}
}
