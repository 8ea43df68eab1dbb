package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap is the static input-translation table: raw key events map to
// semantic kiosk commands. The numeric bindings mirror the hardware
// button layout; letters exist for desk testing.
type KeyMap struct {
	// Navigation (rotary encoder on hardware)
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding

	// Playback buttons
	PlayPause key.Binding
	Next      key.Binding
	Prev      key.Binding
	Shuffle   key.Binding
	Loop      key.Binding

	// View control
	ToggleView    key.Binding
	ToggleSidebar key.Binding
	Filter        key.Binding
	Escape        key.Binding
	Quit          key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select/toggle view"),
		),
		PlayPause: key.NewBinding(
			key.WithKeys("1", "p"),
			key.WithHelp("1/p", "play/pause"),
		),
		Next: key.NewBinding(
			key.WithKeys("2", "n"),
			key.WithHelp("2/n", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("3", "b"),
			key.WithHelp("3/b", "previous"),
		),
		Shuffle: key.NewBinding(
			key.WithKeys("4", "s"),
			key.WithHelp("4/s", "shuffle"),
		),
		Loop: key.NewBinding(
			key.WithKeys("5", "l"),
			key.WithHelp("5/l", "loop"),
		),
		ToggleView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch view"),
		),
		ToggleSidebar: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "toggle sidebar"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter playlists"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
