package navigation

import (
	"typeahead/internal/eventbus"
)

// Service moves the selection cursor over the suggestion list and keeps the
// selected row inside the viewport
type Service struct {
	state *State
	bus   eventbus.EventBus
}

// NewService creates a new navigation service
func NewService(bus eventbus.EventBus, viewportHeight int) *Service {
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	if viewportHeight < 1 {
		viewportHeight = 1
	}
	return &Service{
		state: &State{
			Cursor:         NoSelection,
			ViewportHeight: viewportHeight,
		},
		bus: bus,
	}
}

// GetCursor returns current cursor position
func (s *Service) GetCursor() int {
	return s.state.Cursor
}

// GetScrollTop returns the first visible row of the list
func (s *Service) GetScrollTop() int {
	return s.state.ScrollTop
}

// GetViewportHeight returns current viewport height
func (s *Service) GetViewportHeight() int {
	return s.state.ViewportHeight
}

// GetItemHeight returns the measured row height, 0 if unknown
func (s *Service) GetItemHeight() int {
	return s.state.ItemHeight
}

// GetCount returns the length of the list being navigated
func (s *Service) GetCount() int {
	return s.state.Count
}

// Snapshot returns a copy of the state
func (s *Service) Snapshot() State {
	return *s.state
}

// SetViewportHeight updates viewport height
func (s *Service) SetViewportHeight(height int) {
	if height < 1 {
		height = 1
	}
	s.state.ViewportHeight = height
	s.withScrollEvent(s.ensureVisible)
}

// SetItemHeight records the height of a rendered row. Scrolling is only
// adjusted once this is known.
func (s *Service) SetItemHeight(height int) {
	if height < 0 {
		height = 0
	}
	s.state.ItemHeight = height
	s.withScrollEvent(s.ensureVisible)
}

// Reset is called whenever the list is replaced or cleared. A stale index
// into a new list is meaningless, so the cursor goes back to NoSelection.
func (s *Service) Reset(count int) {
	if count < 0 {
		count = 0
	}
	oldCursor := s.state.Cursor
	s.state.Count = count
	s.state.Cursor = NoSelection
	s.withScrollEvent(func() { s.state.ScrollTop = 0 })
	s.publishCursor(oldCursor)
}

// ResetCursor drops the selection without touching list or scroll
func (s *Service) ResetCursor() {
	oldCursor := s.state.Cursor
	s.state.Cursor = NoSelection
	s.publishCursor(oldCursor)
}

// Navigate handles navigation in a direction
func (s *Service) Navigate(direction Direction) {
	oldCursor := s.state.Cursor

	s.withScrollEvent(func() {
		switch direction {
		case DirectionUp:
			s.moveUp()
		case DirectionDown:
			s.moveDown()
		case DirectionPageUp:
			s.pageUp()
		case DirectionPageDown:
			s.pageDown()
		}
	})

	s.publishCursor(oldCursor)
}

// VisibleRange returns the first and last index with at least one row inside
// the viewport. last < first when the list is empty.
func (s *Service) VisibleRange() (first, last int) {
	if s.state.Count == 0 {
		return 0, -1
	}
	h := s.state.ItemHeight
	if h <= 0 {
		h = 1
	}
	first = s.state.ScrollTop / h
	last = (s.state.ScrollTop + s.state.ViewportHeight - 1) / h
	if last > s.state.Count-1 {
		last = s.state.Count - 1
	}
	if first > last {
		first = last
	}
	return first, last
}

// Internal navigation methods
func (s *Service) moveUp() {
	if s.state.Cursor > 0 {
		s.state.Cursor--
		s.ensureVisible()
	}
}

func (s *Service) moveDown() {
	if s.state.Cursor < s.state.Count-1 {
		s.state.Cursor++
		s.ensureVisible()
	}
}

func (s *Service) pageUp() {
	if s.state.Count == 0 {
		return
	}
	s.state.Cursor = 0
	if s.state.ItemHeight > 0 {
		s.state.ScrollTop = 0
	}
}

func (s *Service) pageDown() {
	if s.state.Count == 0 {
		return
	}
	s.state.Cursor = s.state.Count - 1
	if s.state.ItemHeight > 0 {
		s.state.ScrollTop = s.maxScrollTop()
	}
	s.ensureVisible()
}

// ensureVisible scrolls the minimum amount that shows the whole selected
// row, or its top when the row is taller than the viewport
func (s *Service) ensureVisible() {
	h := s.state.ItemHeight
	if h <= 0 {
		return
	}

	if s.state.Cursor >= 0 {
		top := s.state.Cursor * h
		bottom := top + h
		switch {
		case top < s.state.ScrollTop || h >= s.state.ViewportHeight:
			s.state.ScrollTop = top
		case bottom > s.state.ScrollTop+s.state.ViewportHeight:
			s.state.ScrollTop = bottom - s.state.ViewportHeight
		}
	}

	if limit := s.maxScrollTop(); s.state.ScrollTop > limit {
		s.state.ScrollTop = limit
	}
	if s.state.ScrollTop < 0 {
		s.state.ScrollTop = 0
	}
}

func (s *Service) maxScrollTop() int {
	limit := s.state.Count*s.state.ItemHeight - s.state.ViewportHeight
	if limit < 0 {
		return 0
	}
	return limit
}

func (s *Service) withScrollEvent(fn func()) {
	old := s.state.ScrollTop
	fn()
	if old != s.state.ScrollTop {
		s.bus.Publish(eventbus.ViewportChangedEvent{
			ScrollTop: s.state.ScrollTop,
			Height:    s.state.ViewportHeight,
		})
	}
}

func (s *Service) publishCursor(oldCursor int) {
	if oldCursor != s.state.Cursor {
		s.bus.Publish(eventbus.CursorMovedEvent{
			OldIndex: oldCursor,
			NewIndex: s.state.Cursor,
		})
	}
}
