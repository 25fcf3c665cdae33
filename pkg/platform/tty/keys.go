package tty

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the keys the terminal platform consumes itself. Everything
// else goes to the focused window's view.
type keyMap struct {
	Quit      key.Binding
	Focus     key.Binding
	Close     key.Binding
	Wider     key.Binding
	Narrower  key.Binding
	Taller    key.Binding
	Shorter   key.Binding
	ScaleUp   key.Binding
	ScaleDown key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next window"),
		),
		Close: key.NewBinding(
			key.WithKeys("ctrl+w"),
			key.WithHelp("ctrl+w", "close window"),
		),
		Wider: key.NewBinding(
			key.WithKeys("ctrl+right"),
			key.WithHelp("ctrl+←/→", "width"),
		),
		Narrower: key.NewBinding(
			key.WithKeys("ctrl+left"),
		),
		Taller: key.NewBinding(
			key.WithKeys("ctrl+down"),
			key.WithHelp("ctrl+↑/↓", "height"),
		),
		Shorter: key.NewBinding(
			key.WithKeys("ctrl+up"),
		),
		ScaleUp: key.NewBinding(
			key.WithKeys("+"),
			key.WithHelp("+/-", "scale"),
		),
		ScaleDown: key.NewBinding(
			key.WithKeys("-"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Focus, k.Close, k.Wider, k.Taller, k.ScaleUp}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
