package viewmodels

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"

	"typeahead/internal/domain"
	"typeahead/internal/ui/services/navigation"
	"typeahead/internal/ui/services/query"
	"typeahead/internal/ui/views"
)

// ViewModel transforms service state into view-ready data
type ViewModel struct {
	query      *query.Service
	navigation *navigation.Service
	textInput  *textinput.Model
	spinner    *spinner.Model
	width      int
}

// NewViewModel creates a new view model
func NewViewModel(q *query.Service, nav *navigation.Service, ti *textinput.Model, sp *spinner.Model) *ViewModel {
	return &ViewModel{
		query:      q,
		navigation: nav,
		textInput:  ti,
		spinner:    sp,
	}
}

// SetWidth sets the width rows are padded to, 0 for content width
func (vm *ViewModel) SetWidth(width int) {
	vm.width = width
}

// BuildViewState creates a ViewState for rendering
func (vm *ViewModel) BuildViewState() views.ViewState {
	nav := vm.navigation.Snapshot()
	first, last := vm.navigation.VisibleRange()
	status := vm.query.Status()

	state := views.ViewState{
		Width:          vm.width,
		Busy:           status.Busy(),
		Err:            status.Err,
		Settled:        status.Kind == query.StatusSettled,
		Suggestions:    vm.query.Suggestions(),
		SelectedIndex:  nav.Cursor,
		ScrollTop:      nav.ScrollTop,
		ViewportHeight: nav.ViewportHeight,
		ItemHeight:     nav.ItemHeight,
		FirstVisible:   first,
		LastVisible:    last,
	}
	if vm.textInput != nil {
		state.Input = vm.textInput.View()
	}
	if vm.spinner != nil {
		state.Spinner = vm.spinner.View()
	}
	return state
}

// Surface is the observable state of the widget: what the input shows, the
// busy indicator, the list and the highlighted row
type Surface struct {
	Text           string
	Busy           bool
	Err            error
	Suggestions    domain.SuggestionList
	SelectedIndex  int
	ScrollTop      int
	ViewportHeight int
}

// Surface returns a snapshot of the rendered surface
func (vm *ViewModel) Surface() Surface {
	status := vm.query.Status()
	return Surface{
		Text:           vm.query.State().Text,
		Busy:           status.Busy(),
		Err:            status.Err,
		Suggestions:    vm.query.Suggestions(),
		SelectedIndex:  vm.navigation.GetCursor(),
		ScrollTop:      vm.navigation.GetScrollTop(),
		ViewportHeight: vm.navigation.GetViewportHeight(),
	}
}
