package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"typeahead/internal/domain"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width          int // 0 lets rows size to their content
	Input          string
	Busy           bool
	Spinner        string
	Err            error
	Settled        bool // the last lookup for the current text has resolved
	Suggestions    domain.SuggestionList
	SelectedIndex  int
	ScrollTop      int
	ViewportHeight int
	ItemHeight     int
	FirstVisible   int
	LastVisible    int
}

// RowSpan is where a rendered row landed, in lines relative to the first
// visible list line. Top is negative for a row scrolled partly out of view.
type RowSpan struct {
	Index  int
	Top    int
	Height int
}

// Renderer draws the widget and remembers the layout of the last frame so
// pointer events can be resolved against what is actually on screen
type Renderer struct {
	styles *Styles

	rows         []RowSpan
	listTop      int // first list line, relative to the widget's first line
	visibleLines int
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Styles returns the styles in use
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Rows returns the rows drawn in the last frame, top to bottom
func (r *Renderer) Rows() []RowSpan {
	return r.rows
}

// Render produces the complete widget view
func (r *Renderer) Render(state ViewState) string {
	var b strings.Builder

	inputLine := state.Input
	if state.Busy && state.Spinner != "" {
		inputLine += " " + r.styles.Busy.Render(state.Spinner)
	}
	b.WriteString(inputLine)

	r.rows = nil
	r.visibleLines = 0
	r.listTop = lipgloss.Height(inputLine)

	if len(state.Suggestions) > 0 {
		list := r.renderList(state)
		b.WriteString("\n")
		b.WriteString(list)
		// Rounded border adds one line above the rows
		r.listTop++
		b.WriteString("\n")
		b.WriteString(r.styles.Scroll.Render(r.position(state)))
	} else if status := r.emptyStatus(state); status != "" {
		b.WriteString("\n")
		b.WriteString(status)
	}

	return b.String()
}

// RenderRow renders a single suggestion row. Label lines are truncated to
// the row width so rows never wrap. A positive height pads or clips the row
// to exactly that many lines.
func (r *Renderer) RenderRow(s domain.Suggestion, selected bool, width, height int) string {
	style := r.styles.Row
	prefix := "  "
	if selected {
		style = r.styles.Selected
		prefix = "› "
	}

	label := s.Label
	if width > 0 {
		style = style.Width(width)
		room := width - ansi.StringWidth(prefix)
		lines := strings.Split(label, "\n")
		for i, line := range lines {
			lines[i] = ansi.Truncate(line, room, "…")
		}
		label = strings.Join(lines, "\n")
	}
	if height > 0 {
		style = style.Height(height).MaxHeight(height)
	}
	return style.Render(prefix + label)
}

// RowHeight measures how many lines a suggestion occupies at the given row
// width
func (r *Renderer) RowHeight(s domain.Suggestion, width int) int {
	return lipgloss.Height(r.RenderRow(s, false, width, 0))
}

// HitTest resolves a line of the widget (0 is the input line) to the index
// of the row drawn there in the last frame, or -1 if no row is there
func (r *Renderer) HitTest(line int) int {
	listLine := line - r.listTop
	if listLine < 0 || listLine >= r.visibleLines {
		return -1
	}
	for _, row := range r.rows {
		if listLine >= row.Top && listLine < row.Top+row.Height {
			return row.Index
		}
	}
	return -1
}

func (r *Renderer) renderList(state ViewState) string {
	width := r.RowWidth(state.Width)
	first, last := state.FirstVisible, state.LastVisible
	if first < 0 {
		first = 0
	}
	if last >= len(state.Suggestions) {
		last = len(state.Suggestions) - 1
	}

	// Absolute line of the first rendered row
	start := 0
	if state.ItemHeight > 0 {
		start = first * state.ItemHeight
	}
	offset := state.ScrollTop - start
	if offset < 0 || state.ItemHeight <= 0 {
		offset = 0
	}

	var lines []string
	for i := first; i <= last; i++ {
		row := r.RenderRow(state.Suggestions[i], i == state.SelectedIndex, width, state.ItemHeight)
		rowLines := strings.Split(row, "\n")
		r.rows = append(r.rows, RowSpan{
			Index:  i,
			Top:    len(lines) - offset,
			Height: len(rowLines),
		})
		lines = append(lines, rowLines...)
	}

	end := offset + state.ViewportHeight
	if end > len(lines) {
		end = len(lines)
	}
	if offset > end {
		offset = end
	}
	visible := lines[offset:end]
	r.visibleLines = len(visible)

	return r.styles.List.Render(strings.Join(visible, "\n"))
}

// RowWidth is the width rows are padded to inside a widget of the given
// width, 0 when rows size to their content
func (r *Renderer) RowWidth(width int) int {
	if width <= 0 {
		return 0
	}
	// Leave room for the border
	w := width - r.styles.List.GetHorizontalFrameSize()
	if w < 1 {
		return 0
	}
	return w
}

func (r *Renderer) position(state ViewState) string {
	n := len(state.Suggestions)
	if state.SelectedIndex < 0 {
		return fmt.Sprintf("%d matches", n)
	}
	return fmt.Sprintf("%d of %d", state.SelectedIndex+1, n)
}

func (r *Renderer) emptyStatus(state ViewState) string {
	switch {
	case state.Err != nil:
		return r.styles.Error.Render(fmt.Sprintf("lookup failed: %v", state.Err))
	case state.Settled:
		return r.styles.Dim.Render("no matches")
	default:
		return ""
	}
}
