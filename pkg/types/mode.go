package types

// Mode represents the current mode of the navigator
type Mode int

const (
	// Selection is the initial mode; navigation keys move the highlighted record
	Selection Mode = iota
	// Command is the mode for typing a command into the input buffer
	Command
)

// String returns the label shown in the input pane title
func (m Mode) String() string {
	switch m {
	case Selection:
		return "SELECT"
	case Command:
		return "COMMAND"
	default:
		return "UNKNOWN"
	}
}
