package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the gallery key bindings. It implements help.KeyMap.
type KeyMap struct {
	Prev      key.Binding
	Next      key.Binding
	Surprise  key.Binding
	Small     key.Binding
	Medium    key.Binding
	Large     key.Binding
	Focus     key.Binding
	FocusBack key.Binding
	Blur      key.Binding
	Nudge     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev photo"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next photo"),
		),
		Surprise: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "surprise me"),
		),
		Small: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "small"),
		),
		Medium: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "med"),
		),
		Large: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "large"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next filter"),
		),
		FocusBack: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev filter"),
		),
		Blur: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "leave filter"),
		),
		Nudge: key.NewBinding(
			key.WithKeys("[", "]"),
			key.WithHelp("[/]", "adjust filter"),
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
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Surprise, k.Focus, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Surprise},
		{k.Small, k.Medium, k.Large},
		{k.Focus, k.FocusBack, k.Nudge, k.Blur},
		{k.Help, k.Quit},
	}
}
