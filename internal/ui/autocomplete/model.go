package autocomplete

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"typeahead/internal/domain"
	"typeahead/internal/eventbus"
	"typeahead/internal/ui/input"
	inputtypes "typeahead/internal/ui/input/types"
	"typeahead/internal/ui/services/navigation"
	"typeahead/internal/ui/services/query"
	"typeahead/internal/ui/services/selection"
	"typeahead/internal/ui/viewmodels"
	"typeahead/internal/ui/views"
)

// DefaultListHeight is the number of list lines shown when none is configured
const DefaultListHeight = 8

// Config configures a widget
type Config struct {
	Source   domain.LookupFunc
	OnChange domain.ChangeFunc

	// Delay is the debounce window. Zero or less looks up on every edit.
	Delay time.Duration

	ListHeight  int
	Width       int
	Prompt      string
	Placeholder string

	Bus  eventbus.EventBus
	Keys *input.KeyMap
}

// DefaultConfig returns a config with the default delay and list height
func DefaultConfig() Config {
	return Config{
		Delay:      query.DefaultDelay,
		ListHeight: DefaultListHeight,
		Prompt:     "> ",
	}
}

// Model is the autocomplete widget. It is meant to be embedded in a host
// model which forwards messages to Update and calls View.
type Model struct {
	textInput textinput.Model
	spinner   spinner.Model
	spinning  bool
	focused   bool
	width     int
	origin    int // screen line of the input, for mouse hit testing

	query      *query.Service
	navigation *navigation.Service
	selection  *selection.Service
	handler    *input.Handler
	renderer   *views.Renderer
	viewModel  *viewmodels.ViewModel
}

// New creates a focused widget
func New(cfg Config) *Model {
	if cfg.ListHeight <= 0 {
		cfg.ListHeight = DefaultListHeight
	}
	keys := input.DefaultKeyMap()
	if cfg.Keys != nil {
		keys = *cfg.Keys
	}

	m := &Model{
		width:    cfg.Width,
		renderer: views.NewRenderer(),
	}

	styles := m.renderer.Styles()
	m.textInput = textinput.New()
	m.textInput.Prompt = cfg.Prompt
	m.textInput.Placeholder = cfg.Placeholder
	m.textInput.PromptStyle = styles.Prompt
	m.textInput.TextStyle = styles.Text
	m.textInput.PlaceholderStyle = styles.Placeholder
	m.textInput.Focus()
	m.focused = true

	m.spinner = spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Busy))

	m.query = query.NewService(cfg.Source, cfg.Delay, cfg.Bus)
	m.navigation = navigation.NewService(cfg.Bus, cfg.ListHeight)
	m.selection = selection.NewService(cfg.Bus, cfg.OnChange)
	m.handler = input.New(keys, &m.textInput)
	m.viewModel = viewmodels.NewViewModel(m.query, m.navigation, &m.textInput, &m.spinner)
	m.viewModel.SetWidth(cfg.Width)

	m.query.SetListChangedFunction(m.listChanged)
	m.selection.SetQueryFunction(m.query.Suggestions)
	m.selection.SetTextFunction(m.writeBack)
	m.selection.SetClearFunction(m.query.Clear)

	return m
}

// Init returns the cursor blink command
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		if !m.focused {
			return m, nil
		}
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if index := m.renderer.HitTest(msg.Y - m.origin); index >= 0 {
				m.selection.Commit(index)
			}
		}
		return m, nil

	case query.DebounceMsg:
		return m, m.query.HandleDebounce(msg)

	case query.ResultMsg:
		return m, m.query.HandleResult(msg)

	case spinner.TickMsg:
		if !m.query.Busy() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// View renders the widget
func (m *Model) View() string {
	return m.renderer.Render(m.viewModel.BuildViewState())
}

// Focus gives the widget keyboard focus
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	return m.textInput.Focus()
}

// Blur removes focus and tears down the list
func (m *Model) Blur() {
	m.focused = false
	m.textInput.Blur()
	m.query.Clear()
}

// Focused reports whether the widget receives key presses
func (m *Model) Focused() bool {
	return m.focused
}

// Value returns the text in the input
func (m *Model) Value() string {
	return m.textInput.Value()
}

// Surface returns a snapshot of the widget state
func (m *Model) Surface() viewmodels.Surface {
	return m.viewModel.Surface()
}

// KeyMap returns the key bindings, for help views
func (m *Model) KeyMap() input.KeyMap {
	return m.handler.KeyMap()
}

// SetOrigin tells the widget on which screen line its input is drawn
func (m *Model) SetOrigin(y int) {
	m.origin = y
}

// SetWidth sets the widget width. Rows are re-measured.
func (m *Model) SetWidth(width int) {
	m.width = width
	m.viewModel.SetWidth(width)
	m.measure(m.query.Suggestions())
}

// Close stops pending work. Results arriving later are dropped.
func (m *Model) Close() {
	m.query.Close()
}

var directions = map[inputtypes.Command]navigation.Direction{
	inputtypes.CommandMoveDown: navigation.DirectionDown,
	inputtypes.CommandMoveUp:   navigation.DirectionUp,
	inputtypes.CommandPageDown: navigation.DirectionPageDown,
	inputtypes.CommandPageUp:   navigation.DirectionPageUp,
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	command, edited, inputCmd := m.handler.HandleKey(msg)

	if command.IsNavigation() {
		m.navigation.Navigate(directions[command])
		return inputCmd
	}

	switch command {
	case inputtypes.CommandCancel:
		m.query.Clear()
	case inputtypes.CommandCommit:
		m.selection.Commit(m.navigation.GetCursor())
	case inputtypes.CommandOther:
		m.navigation.ResetCursor()
		if edited {
			return tea.Batch(inputCmd, m.edit(m.textInput.Value()))
		}
	}
	return inputCmd
}

// edit hands the new text to the query coordinator and starts the busy
// spinner if a lookup is now pending
func (m *Model) edit(text string) tea.Cmd {
	cmd := m.query.Edit(text)
	if m.query.Busy() && !m.spinning {
		m.spinning = true
		return tea.Batch(cmd, m.spinner.Tick)
	}
	return cmd
}

// listChanged runs whenever the list is replaced or cleared
func (m *Model) listChanged(list domain.SuggestionList) {
	m.navigation.Reset(len(list))
	m.measure(list)
}

// measure reads the item height from the first row
func (m *Model) measure(list domain.SuggestionList) {
	if first, ok := list.At(0); ok {
		m.navigation.SetItemHeight(m.renderer.RowHeight(first, m.renderer.RowWidth(m.width)))
	}
}

// writeBack puts a committed label into the input without looking it up
func (m *Model) writeBack(label string) {
	m.textInput.SetValue(label)
	m.textInput.CursorEnd()
	m.query.Adopt(label)
}
