package tui

import (
	"look/pkg/types"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyType is a terminal-independent key class.
type KeyType int

const (
	KeyNone KeyType = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyBackspace
	KeyDelete
	KeyEnter
	KeyEsc
	KeyRune
	KeyInterrupt
)

// Key is one key press as the navigator sees it.
type Key struct {
	Type KeyType
	Rune rune
}

// RuneKey is a printable character.
func RuneKey(r rune) Key {
	return Key{Type: KeyRune, Rune: r}
}

// keysFromMsg translates a bubbletea key event under the bindings of mode.
// Pasted text arrives as several runes in one event and yields one Key each.
func keysFromMsg(msg tea.KeyMsg, mode types.Mode, keys types.KeyMap) []Key {
	if key.Matches(msg, keys.Quit) {
		return []Key{{Type: KeyInterrupt}}
	}

	if mode == types.Selection {
		switch {
		case key.Matches(msg, keys.Up):
			return []Key{{Type: KeyUp}}
		case key.Matches(msg, keys.Down):
			return []Key{{Type: KeyDown}}
		case key.Matches(msg, keys.EnterCmdMode):
			return []Key{RuneKey(':')}
		}
		return nil
	}

	switch {
	case key.Matches(msg, keys.Left):
		return []Key{{Type: KeyLeft}}
	case key.Matches(msg, keys.Right):
		return []Key{{Type: KeyRight}}
	case key.Matches(msg, keys.Backspace):
		return []Key{{Type: KeyBackspace}}
	case key.Matches(msg, keys.Delete):
		return []Key{{Type: KeyDelete}}
	case key.Matches(msg, keys.ExecuteCmd):
		return []Key{{Type: KeyEnter}}
	case key.Matches(msg, keys.ExitCmdMode):
		return []Key{{Type: KeyEsc}}
	}

	switch msg.Type {
	case tea.KeySpace:
		return []Key{RuneKey(' ')}
	case tea.KeyRunes:
		if msg.Alt {
			return nil
		}
		out := make([]Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			out = append(out, RuneKey(r))
		}
		return out
	}
	return nil
}
