package home

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the home screen bindings. Global bindings use ctrl so they
// work while the search field has focus.
type KeyMap struct {
	// Global
	ForceQuit    key.Binding
	FocusSearch  key.Binding
	NextCategory key.Binding
	PrevCategory key.Binding
	Reload       key.Binding
	CycleTheme   key.Binding
	OpenConfig   key.Binding

	// Search field
	LaunchFirst key.Binding
	ClearSearch key.Binding
	ToggleFocus key.Binding

	// Card list
	Up              key.Binding
	Down            key.Binding
	Launch          key.Binding
	OpenFolder      key.Binding
	SearchFromCards key.Binding
	CardNextCat     key.Binding
	CardPrevCat     key.Binding
	Quit            key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		FocusSearch: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "search"),
		),
		NextCategory: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "next category"),
		),
		PrevCategory: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "prev category"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reload"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "theme"),
		),
		OpenConfig: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "open config"),
		),
		LaunchFirst: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "launch first"),
		),
		ClearSearch: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
		ToggleFocus: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "switch focus"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Launch: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "launch"),
		),
		OpenFolder: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open folder"),
		),
		SearchFromCards: key.NewBinding(
			key.WithKeys("/", "esc"),
			key.WithHelp("/", "search"),
		),
		CardNextCat: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next category"),
		),
		CardPrevCat: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev category"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown while the search field has focus.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.LaunchFirst, k.ToggleFocus, k.NextCategory, k.CycleTheme, k.Reload, k.OpenConfig, k.ForceQuit}
}

// FullHelp returns every binding, grouped.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Search
		{k.FocusSearch, k.LaunchFirst, k.ClearSearch, k.ToggleFocus},
		// Cards
		{k.Up, k.Down, k.Launch, k.OpenFolder, k.SearchFromCards},
		// Categories
		{k.NextCategory, k.PrevCategory, k.CardNextCat, k.CardPrevCat},
		// General
		{k.Reload, k.CycleTheme, k.OpenConfig, k.Quit, k.ForceQuit},
	}
}

// cardKeys is the footer help while the card list has focus.
type cardKeys struct{ KeyMap }

func (k cardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Launch, k.OpenFolder, k.SearchFromCards, k.CardNextCat, k.CycleTheme, k.Quit}
}
