package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the list browser.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Back       key.Binding

	// Tabs
	NextTab key.Binding
	PrevTab key.Binding
	Tab1    key.Binding
	Tab2    key.Binding
	Tab3    key.Binding
	Tab4    key.Binding

	// List
	Up          key.Binding
	Down        key.Binding
	Search      key.Binding
	ClearSearch key.Binding
	NextPage    key.Binding
	PrevPage    key.Binding
	PageSize    key.Binding
	ToggleStar  key.Binding
	NewList     key.Binding
	Refresh     key.Binding

	// Search/dialog input
	Confirm   key.Binding
	Cancel    key.Binding
	NextField key.Binding
	PrevField key.Binding
	Submit    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Back: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "Back"),
		),

		NextTab: key.NewBinding(
			key.WithKeys("tab", "l"),
			key.WithHelp("tab", "Next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "h"),
			key.WithHelp("shift+tab", "Previous tab"),
		),
		Tab1: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "Starred lists")),
		Tab2: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "System lists")),
		Tab3: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "My lists")),
		Tab4: key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "All lists")),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		ClearSearch: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Clear search"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "n"),
			key.WithHelp("n/→", "Next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "p"),
			key.WithHelp("p/←", "Previous page"),
		),
		PageSize: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "Items per page"),
		),
		ToggleStar: key.NewBinding(
			key.WithKeys("s", "*"),
			key.WithHelp("s", "Star/unstar"),
		),
		NewList: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "New list"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "Next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "Previous field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "Create list"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Search, k.NewList, k.ToggleStar, k.NextPage, k.Help, k.Quit}
}

// FullHelp returns key bindings for the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.Tab1, k.Tab2, k.Tab3, k.Tab4},
		{k.Up, k.Down, k.NextPage, k.PrevPage, k.PageSize},
		{k.Search, k.ClearSearch, k.ToggleStar, k.NewList, k.Refresh},
		{k.Back, k.CycleTheme, k.Help, k.Quit},
	}
}

// dialogKeys is the binding set shown while the create dialog is open.
type dialogKeys struct{ k keyMap }

func (d dialogKeys) ShortHelp() []key.Binding {
	return []key.Binding{d.k.NextField, d.k.Confirm, d.k.Submit, d.k.Cancel}
}

func (d dialogKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{d.ShortHelp()}
}
