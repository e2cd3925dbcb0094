package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"typeahead/internal/config"
	"typeahead/internal/domain"
	"typeahead/internal/eventbus"
	"typeahead/internal/ui/autocomplete"
	"typeahead/internal/ui/services/query"
)

// widgetTop is the screen line of the widget input: title, then a blank line
const widgetTop = 2

// maxWidgetWidth caps the widget on wide terminals
const maxWidgetWidth = 72

// lookupStats counts lookup outcomes reported on the bus
type lookupStats struct {
	settled   int
	failed    int
	discarded int
}

// Model is the demo host: a title, the widget, a status line and help
type Model struct {
	bus    eventbus.EventBus
	config *config.Config

	widget   *autocomplete.Model
	help     help.Model
	keys     KeyMap
	renderer *HelpRenderer

	width       int
	height      int
	inPagerMode bool // tracks if we're currently in pager mode
	e2eMarker   bool // print the ready marker for the terminal tests

	lastCommit *domain.Suggestion
	lastErr    error
	stats      lookupStats

	// Program reference for terminal management
	program *tea.Program
	helpOps *HelpOps
}

// NewModel creates the host model around a widget backed by source
func NewModel(cfg *config.Config, source domain.LookupFunc, bus eventbus.EventBus) *Model {
	m := &Model{
		bus:      bus,
		config:   cfg,
		help:     help.New(),
		renderer: NewHelpRenderer(),
	}

	m.widget = autocomplete.New(autocomplete.Config{
		Source:      source,
		OnChange:    m.committed,
		Delay:       cfg.Autocomplete.Delay(),
		ListHeight:  cfg.Autocomplete.ListHeight,
		Prompt:      cfg.Autocomplete.Prompt,
		Placeholder: cfg.Autocomplete.Placeholder,
		Bus:         bus,
	})
	m.widget.SetOrigin(widgetTop)
	m.keys = DefaultKeyMap(m.widget.KeyMap())

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// SetReadyMarker makes View print a marker once the first frame is drawn
func (m *Model) SetReadyMarker(enabled bool) {
	m.e2eMarker = enabled
}

// Widget returns the embedded autocomplete widget
func (m *Model) Widget() *autocomplete.Model {
	return m.widget
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return m.widget.Init()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.widget.SetWidth(min(msg.Width, maxWidgetWidth))
		return m, nil

	case tea.KeyMsg:
		if m.inPagerMode {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.widget.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			return m, m.fetchHelpPager(m.renderer.Render(m.keys))
		}

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed: log only
			log.Warn("Help pager failed", "err", msg.err)
		}
		return m, nil

	case query.LookupFailedMsg:
		m.lastErr = msg.Err
		return m, nil

	case EventMsg:
		m.handleEvent(msg.Event)
		return m, nil
	}

	var cmd tea.Cmd
	m.widget, cmd = m.widget.Update(msg)
	return m, cmd
}

// View renders the host screen
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString(titleStyle.Render("Typeahead"))
	b.WriteString("\n\n")
	b.WriteString(m.widget.View())
	b.WriteString("\n\n")
	b.WriteString(statusStyle.Render(m.statusLine()))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	if m.e2eMarker {
		b.WriteString("\n__READY__")
	}
	return b.String()
}

// committed is the widget's onChange callback
func (m *Model) committed(s domain.Suggestion) {
	m.lastCommit = &s
	m.lastErr = nil
	log.Info("Suggestion committed", "value", s.Value, "label", s.Label)
}

func (m *Model) statusLine() string {
	var parts []string
	switch {
	case m.lastErr != nil:
		parts = append(parts, fmt.Sprintf("Lookup failed: %v", m.lastErr))
	case m.lastCommit != nil:
		parts = append(parts, fmt.Sprintf("Selected: %s (%s)", m.lastCommit.Label, m.lastCommit.Value))
	default:
		parts = append(parts, "Nothing selected")
	}
	parts = append(parts, fmt.Sprintf("lookups: %d settled, %d failed, %d discarded",
		m.stats.settled, m.stats.failed, m.stats.discarded))
	return strings.Join(parts, " · ")
}

func (m *Model) handleEvent(e eventbus.DomainEvent) {
	switch e.(type) {
	case eventbus.LookupSettledEvent:
		m.stats.settled++
	case eventbus.LookupFailedEvent:
		m.stats.failed++
	case eventbus.ResultDiscardedEvent:
		m.stats.discarded++
	}
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	if m.program == nil {
		return nil
	}
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.helpOps.ShowHelpInPager(helpContent)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return helpPagerMsg{
			err: err,
		}
	}
}
