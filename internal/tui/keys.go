package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Done    key.Binding
	Add     key.Binding
	Remove  key.Binding
	Reload  key.Binding
	Detail  key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Done:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "done")),
	Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Remove:  key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "remove tag")),
	Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Detail:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
	NextTab: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next tab")),
	PrevTab: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev tab")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) help(t tab) []key.Binding {
	if t == tabTags {
		return []key.Binding{k.Add, k.Remove, k.Reload, k.NextTab, k.Quit}
	}
	return []key.Binding{k.Done, k.Add, k.Detail, k.Reload, k.NextTab, k.Quit}
}
