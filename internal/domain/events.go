package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventLookupScheduled     EventType = "LookupScheduled"
	EventLookupDispatched    EventType = "LookupDispatched"
	EventLookupSettled       EventType = "LookupSettled"
	EventLookupFailed        EventType = "LookupFailed"
	EventResultDiscarded     EventType = "ResultDiscarded"
	EventSuggestionCommitted EventType = "SuggestionCommitted"
	EventSuggestionsCleared  EventType = "SuggestionsCleared"
	EventCursorMoved         EventType = "CursorMoved"
	EventViewportChanged     EventType = "ViewportChanged"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// LookupScheduledEvent is emitted when a debounced lookup is armed
type LookupScheduledEvent struct {
	RequestID int
	Query     string
}

func (e LookupScheduledEvent) Type() EventType { return EventLookupScheduled }

// LookupDispatchedEvent is emitted when the source is actually called
type LookupDispatchedEvent struct {
	RequestID int
	Query     string
}

func (e LookupDispatchedEvent) Type() EventType { return EventLookupDispatched }

// LookupSettledEvent is emitted when a current lookup result is applied
type LookupSettledEvent struct {
	RequestID int
	Query     string
	Count     int
}

func (e LookupSettledEvent) Type() EventType { return EventLookupSettled }

// LookupFailedEvent is emitted when the source returns an error for the
// current query
type LookupFailedEvent struct {
	RequestID int
	Query     string
	Err       error
}

func (e LookupFailedEvent) Type() EventType { return EventLookupFailed }

// ResultDiscardedEvent is emitted when a superseded lookup resolves
type ResultDiscardedEvent struct {
	RequestID int
	Query     string
}

func (e ResultDiscardedEvent) Type() EventType { return EventResultDiscarded }

// SuggestionCommittedEvent is emitted after the host callback ran
type SuggestionCommittedEvent struct {
	Index      int
	Suggestion Suggestion
}

func (e SuggestionCommittedEvent) Type() EventType { return EventSuggestionCommitted }

// SuggestionsClearedEvent is emitted whenever the list is emptied
type SuggestionsClearedEvent struct{}

func (e SuggestionsClearedEvent) Type() EventType { return EventSuggestionsCleared }

// CursorMovedEvent is emitted when the selection cursor changes
type CursorMovedEvent struct {
	OldIndex int
	NewIndex int
}

func (e CursorMovedEvent) Type() EventType { return EventCursorMoved }

// ViewportChangedEvent is emitted when the list scroll position changes
type ViewportChangedEvent struct {
	ScrollTop int
	Height    int
}

func (e ViewportChangedEvent) Type() EventType { return EventViewportChanged }
