package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the navigator modes.
// It lives in pkg/types so the model and the help line share one definition.
type KeyMap struct {
	// Selection mode
	Up           key.Binding
	Down         key.Binding
	EnterCmdMode key.Binding

	// Command mode
	Left        key.Binding
	Right       key.Binding
	Backspace   key.Binding
	Delete      key.Binding
	ExecuteCmd  key.Binding
	ExitCmdMode key.Binding

	// Both modes
	Quit key.Binding
}

// SelectionHelp lists the bindings shown while browsing records.
func (k KeyMap) SelectionHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.EnterCmdMode, k.Quit}
}

// CommandHelp lists the bindings shown while editing a command.
func (k KeyMap) CommandHelp() []key.Binding {
	return []key.Binding{k.ExecuteCmd, k.ExitCmdMode, k.Left, k.Right, k.Quit}
}

// DefaultKeyMap returns the bindings the navigator ships with.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		EnterCmdMode: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "right"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("bksp", "delete back"),
		),
		Delete: key.NewBinding(
			key.WithKeys("delete"),
			key.WithHelp("del", "delete"),
		),
		ExecuteCmd: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "run (quit, code, cd)"),
		),
		ExitCmdMode: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back to list"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}
