package selection

import (
	"github.com/charmbracelet/log"

	"typeahead/internal/domain"
	"typeahead/internal/eventbus"
)

// Service finalizes a choice: host callback, text write-back, then teardown
// of the suggestion list
type Service struct {
	bus      eventbus.EventBus
	onChange domain.ChangeFunc

	listFn    func() domain.SuggestionList
	setTextFn func(string)
	clearFn   func()
}

// NewService creates a new selection committer
func NewService(bus eventbus.EventBus, onChange domain.ChangeFunc) *Service {
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	return &Service{
		bus:      bus,
		onChange: onChange,
	}
}

// SetQueryFunction sets the function returning the current list
func (s *Service) SetQueryFunction(fn func() domain.SuggestionList) {
	s.listFn = fn
}

// SetTextFunction sets the function writing into the input field
func (s *Service) SetTextFunction(fn func(string)) {
	s.setTextFn = fn
}

// SetClearFunction sets the function emptying the list and the cursor
func (s *Service) SetClearFunction(fn func()) {
	s.clearFn = fn
}

// Commit selects the suggestion at index. For a valid index the host
// callback runs first, then the label replaces the input text, and only then
// is the list cleared. Any other index only clears.
func (s *Service) Commit(index int) Result {
	var list domain.SuggestionList
	if s.listFn != nil {
		list = s.listFn()
	}

	result := Result{Index: index}
	if suggestion, ok := list.At(index); ok {
		result.Suggestion = suggestion
		result.Committed = true

		if s.onChange != nil {
			s.onChange(suggestion)
		}
		if s.setTextFn != nil {
			s.setTextFn(suggestion.Label)
		}
		log.Debug("suggestion committed", "index", index, "value", suggestion.Value)
		s.bus.Publish(eventbus.SuggestionCommittedEvent{Index: index, Suggestion: suggestion})
	}

	if s.clearFn != nil {
		s.clearFn()
	}
	return result
}
