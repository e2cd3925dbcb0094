package eventbus

import (
	"runtime/debug"
	"sync"

	"github.com/charmbracelet/log"

	"typeahead/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventLookupScheduled     = domain.EventLookupScheduled
	EventLookupDispatched    = domain.EventLookupDispatched
	EventLookupSettled       = domain.EventLookupSettled
	EventLookupFailed        = domain.EventLookupFailed
	EventResultDiscarded     = domain.EventResultDiscarded
	EventSuggestionCommitted = domain.EventSuggestionCommitted
	EventSuggestionsCleared  = domain.EventSuggestionsCleared
	EventCursorMoved         = domain.EventCursorMoved
	EventViewportChanged     = domain.EventViewportChanged
)

// Re-export domain event types
type LookupScheduledEvent = domain.LookupScheduledEvent
type LookupDispatchedEvent = domain.LookupDispatchedEvent
type LookupSettledEvent = domain.LookupSettledEvent
type LookupFailedEvent = domain.LookupFailedEvent
type ResultDiscardedEvent = domain.ResultDiscardedEvent
type SuggestionCommittedEvent = domain.SuggestionCommittedEvent
type SuggestionsClearedEvent = domain.SuggestionsClearedEvent
type CursorMovedEvent = domain.CursorMovedEvent
type ViewportChangedEvent = domain.ViewportChangedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

type subscription struct {
	id      int
	handler EventHandler
}

// Bus is the channel-backed implementation of EventBus
type Bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    int
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
}

// New creates a new event bus
func New() *Bus {
	b := &Bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 1000),
		quit:      make(chan struct{}),
	}

	// Start the event dispatcher
	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers. It never blocks the caller;
// when the queue is full the event is dropped.
func (b *Bus) Publish(event DomainEvent) {
	switch event.Type() {
	case EventCursorMoved, EventViewportChanged:
		// too frequent to log
	default:
		log.Debug("eventbus publish", "event", event.Type())
	}

	select {
	case b.eventChan <- event:
	default:
		log.Warn("event bus channel full, dropping event", "event", event.Type())
	}
}

// Subscribe subscribes to events of a specific type.
// Returns an unsubscribe function.
func (b *Bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops the dispatcher and discards queued events
func (b *Bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
	})
	b.wg.Wait()
}

// dispatch handles event distribution to subscribers
func (b *Bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			// Copy so the lock is not held while handlers run
			b.mu.RLock()
			subs := b.handlers[event.Type()]
			handlersCopy := make([]EventHandler, len(subs))
			for i, s := range subs {
				handlersCopy[i] = s.handler
			}
			b.mu.RUnlock()

			for _, handler := range handlersCopy {
				go func(h EventHandler, eventType EventType) {
					defer func() {
						if r := recover(); r != nil {
							log.Error("event handler panic", "event", eventType, "panic", r, "stack", string(debug.Stack()))
						}
					}()
					h(event)
				}(handler, event.Type())
			}

		case <-b.quit:
			// Drain remaining events
			for {
				select {
				case <-b.eventChan:
				default:
					return
				}
			}
		}
	}
}

// NullBus is a no-op implementation of EventBus
type NullBus struct{}

func (NullBus) Publish(event DomainEvent) {}
func (NullBus) Subscribe(eventType EventType, handler EventHandler) func() {
	return func() {}
}
