package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	title   lipgloss.Style
	section lipgloss.Style
	key     lipgloss.Style
	desc    lipgloss.Style
	note    lipgloss.Style
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		section: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginTop(1),
		key:  lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		desc: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		note: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")),
	}
}

// Render generates the help page for the pager from the key map, so the
// page always matches the active bindings
func (r *HelpRenderer) Render(keys KeyMap) string {
	var help strings.Builder

	help.WriteString(r.title.Render("Typeahead Help"))
	help.WriteString("\n")

	sections := []string{"Navigation", "Selection"}
	for i, group := range keys.FullHelp() {
		if i < len(sections) {
			help.WriteString(r.section.Render(sections[i]))
		} else {
			help.WriteString(r.section.Render("Other"))
		}
		help.WriteString("\n")
		r.writeBindings(&help, group)
		help.WriteString("\n")
	}

	help.WriteString(r.note.Render("  Any other key edits the text and drops the highlighted row."))
	help.WriteString("\n")
	help.WriteString(r.note.Render("  Click a row to select it."))

	return help.String()
}

func (r *HelpRenderer) writeBindings(b *strings.Builder, bindings []key.Binding) {
	width := 0
	for _, kb := range bindings {
		if w := lipgloss.Width(kb.Help().Key); w > width {
			width = w
		}
	}
	for _, kb := range bindings {
		if !kb.Enabled() {
			continue
		}
		h := kb.Help()
		pad := strings.Repeat(" ", width-lipgloss.Width(h.Key))
		fmt.Fprintf(b, "  %s%s  %s\n", r.key.Render(h.Key), pad, r.desc.Render(h.Desc))
	}
}

// HelpOps handles help operations
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return fmt.Errorf("failed to open pager: %w", err)
	}

	// Don't write the page back to the terminal on exit
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
