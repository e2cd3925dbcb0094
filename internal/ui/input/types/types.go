package types

// Command is a logical widget command resolved from a key press. The set is
// closed; anything that is not a widget command resolves to CommandOther.
type Command int

const (
	CommandNone Command = iota
	CommandMoveDown
	CommandMoveUp
	CommandPageDown
	CommandPageUp
	CommandCancel
	CommandCommit
	CommandOther
)

func (c Command) String() string {
	switch c {
	case CommandMoveDown:
		return "move_down"
	case CommandMoveUp:
		return "move_up"
	case CommandPageDown:
		return "page_down"
	case CommandPageUp:
		return "page_up"
	case CommandCancel:
		return "cancel"
	case CommandCommit:
		return "commit"
	case CommandOther:
		return "other"
	default:
		return "none"
	}
}

// IsNavigation reports whether the command only moves the cursor
func (c Command) IsNavigation() bool {
	switch c {
	case CommandMoveDown, CommandMoveUp, CommandPageDown, CommandPageUp:
		return true
	}
	return false
}
