package input

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"typeahead/internal/ui/input/types"
)

// Handler turns key presses into widget commands. Keys that are not widget
// commands are handed to the text input.
type Handler struct {
	keys      KeyMap
	textInput *textinput.Model
}

// New creates a handler driving ti
func New(keys KeyMap, ti *textinput.Model) *Handler {
	return &Handler{
		keys:      keys,
		textInput: ti,
	}
}

// KeyMap returns the active bindings
func (h *Handler) KeyMap() KeyMap {
	return h.keys
}

// Resolve maps a key press to a command without side effects
func (h *Handler) Resolve(msg tea.KeyMsg) types.Command {
	switch {
	case key.Matches(msg, h.keys.Down):
		return types.CommandMoveDown
	case key.Matches(msg, h.keys.Up):
		return types.CommandMoveUp
	case key.Matches(msg, h.keys.PageDown):
		return types.CommandPageDown
	case key.Matches(msg, h.keys.PageUp):
		return types.CommandPageUp
	case key.Matches(msg, h.keys.Cancel):
		return types.CommandCancel
	case key.Matches(msg, h.keys.Commit):
		return types.CommandCommit
	default:
		return types.CommandOther
	}
}

// HandleKey resolves msg. For CommandOther the key is applied to the text
// input and edited reports whether its value changed.
func (h *Handler) HandleKey(msg tea.KeyMsg) (cmd types.Command, edited bool, teaCmd tea.Cmd) {
	cmd = h.Resolve(msg)
	if cmd != types.CommandOther || h.textInput == nil {
		return cmd, false, nil
	}

	before := h.textInput.Value()
	updated, teaCmd := h.textInput.Update(msg)
	*h.textInput = updated
	return cmd, updated.Value() != before, teaCmd
}
