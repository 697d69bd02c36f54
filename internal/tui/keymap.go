package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts. Keys that can appear in typed text
// are only bound on tabs without a focused text field.
type KeyMap struct {
	// Tabs
	NextTab key.Binding
	PrevTab key.Binding
	Tab1    key.Binding
	Tab2    key.Binding
	Tab3    key.Binding
	Tab4    key.Binding

	// Navigation
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	NextField key.Binding
	PrevField key.Binding

	// Actions
	Submit    key.Binding
	Toggle    key.Binding
	Delete    key.Binding
	Timeframe key.Binding
	Refresh   key.Binding
	Confirm   key.Binding

	// Application
	Menu key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextTab: key.NewBinding(
			key.WithKeys("ctrl+n", "pgdown"),
			key.WithHelp("Ctrl+N", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("ctrl+p", "pgup"),
			key.WithHelp("Ctrl+P", "previous tab"),
		),
		Tab1: key.NewBinding(key.WithKeys("f1", "alt+1"), key.WithHelp("F1", "add expense")),
		Tab2: key.NewBinding(key.WithKeys("f2", "alt+2"), key.WithHelp("F2", "view expenses")),
		Tab3: key.NewBinding(key.WithKeys("f3", "alt+3"), key.WithHelp("F3", "reports")),
		Tab4: key.NewBinding(key.WithKeys("f4", "alt+4"), key.WithHelp("F4", "categories")),

		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "previous choice"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next choice"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("Shift+Tab", "previous field"),
		),

		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "submit"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "toggle"),
		),
		Delete: key.NewBinding(
			key.WithKeys("delete", "ctrl+d"),
			key.WithHelp("Del/Ctrl+D", "delete selected"),
		),
		Timeframe: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("Ctrl+T", "change timeframe"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("Ctrl+R", "refresh"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),

		Menu: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Submit, k.Delete, k.Timeframe, k.Menu, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.Tab1, k.Tab2, k.Tab3, k.Tab4},
		{k.Up, k.Down, k.Left, k.Right, k.NextField, k.PrevField},
		{k.Submit, k.Toggle, k.Delete, k.Timeframe, k.Refresh},
		{k.Menu, k.Quit},
	}
}
