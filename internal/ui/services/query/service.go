package query

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"typeahead/internal/domain"
	"typeahead/internal/eventbus"
)

// DefaultDelay is the debounce window used when none is configured
const DefaultDelay = 500 * time.Millisecond

// Service coordinates input edits with lookups. It owns the query state,
// the current suggestion list and the pending debounce timer.
//
// Every edit, clear or commit bumps the request sequence. A debounce tick or
// a lookup result is only acted on when it carries the current sequence
// number, so out-of-order completions can never overwrite a newer list.
type Service struct {
	state  QueryState
	status FetchStatus
	list   domain.SuggestionList
	seq    int
	closed bool

	delay  time.Duration
	source domain.LookupFunc
	bus    eventbus.EventBus

	ctx           context.Context
	cancel        context.CancelFunc
	cancelPending context.CancelFunc

	listFn func(domain.SuggestionList)
}

// NewService creates a query coordinator. A negative delay is treated as
// zero, which dispatches on every edit.
func NewService(source domain.LookupFunc, delay time.Duration, bus eventbus.EventBus) *Service {
	if source == nil {
		source = func(context.Context, string) (domain.SuggestionList, error) { return nil, nil }
	}
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	if delay < 0 {
		delay = 0
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		delay:  delay,
		source: source,
		bus:    bus,
		ctx:    ctx,
		cancel: cancel,
	}
}

// SetListChangedFunction registers the hook called whenever the list is
// replaced or cleared
func (s *Service) SetListChangedFunction(fn func(domain.SuggestionList)) {
	s.listFn = fn
}

// State returns the current query state
func (s *Service) State() QueryState {
	return s.state
}

// Status returns the fetch status
func (s *Service) Status() FetchStatus {
	return s.status
}

// Busy reports whether a lookup for the active query is outstanding
func (s *Service) Busy() bool {
	return s.status.Busy()
}

// Suggestions returns the current list
func (s *Service) Suggestions() domain.SuggestionList {
	return s.list
}

// RequestID returns the current request sequence number
func (s *Service) RequestID() int {
	return s.seq
}

// Delay returns the debounce window
func (s *Service) Delay() time.Duration {
	return s.delay
}

// Edit adopts the new field value, hides the superseded list and arms a
// lookup for it. Blank input short-circuits to an empty, idle state.
func (s *Service) Edit(text string) tea.Cmd {
	s.state.Text = text
	s.supersede()
	s.setList(nil)

	if s.closed || strings.TrimSpace(text) == "" {
		s.state.ActiveQuery = ""
		s.state.HasActive = false
		s.status = FetchStatus{Kind: StatusIdle}
		return nil
	}

	s.state.ActiveQuery = text
	s.state.HasActive = true
	s.status = FetchStatus{Kind: StatusLoading}

	if s.delay <= 0 {
		return s.dispatch()
	}
	return s.schedule()
}

// Adopt sets the field text without starting a lookup. Pending and
// in-flight lookups are invalidated; the list is left to the caller.
func (s *Service) Adopt(text string) {
	s.state.Text = text
	s.supersede()
	s.state.ActiveQuery = ""
	s.state.HasActive = false
	s.status = FetchStatus{Kind: StatusIdle}
}

// Clear is the hard reset: no active query, empty list, nothing pending
func (s *Service) Clear() {
	s.supersede()
	s.state.ActiveQuery = ""
	s.state.HasActive = false
	s.status = FetchStatus{Kind: StatusIdle}
	s.setList(nil)
}

// Close cancels the pending timer and the context handed to lookups.
// Results arriving afterwards are discarded.
func (s *Service) Close() {
	if s.closed {
		return
	}
	s.supersede()
	s.closed = true
	s.cancel()
	s.state.HasActive = false
	s.status = FetchStatus{Kind: StatusIdle}
}

// HandleDebounce dispatches the lookup once the quiet period of the current
// request has elapsed. Ticks of superseded requests are ignored.
func (s *Service) HandleDebounce(msg DebounceMsg) tea.Cmd {
	if msg.ID != s.seq || !s.state.HasActive || s.closed {
		log.Debug("ignoring superseded debounce tick", "id", msg.ID, "current", s.seq)
		return nil
	}
	s.cancelPending = nil
	return s.dispatch()
}

// HandleResult applies a lookup result if it belongs to the current request.
// Failures empty the list and are reported back to the host as a
// LookupFailedMsg.
func (s *Service) HandleResult(msg ResultMsg) tea.Cmd {
	if !s.isCurrent(msg) {
		// Superseded result. Expected under out-of-order completion.
		log.Debug("discarding stale lookup result", "id", msg.ID, "query", msg.Query, "current", s.seq)
		s.bus.Publish(eventbus.ResultDiscardedEvent{RequestID: msg.ID, Query: msg.Query})
		return nil
	}

	if msg.Err != nil {
		s.setList(nil)
		s.status = FetchStatus{Kind: StatusSettled, Err: msg.Err}
		log.Warn("lookup failed", "query", msg.Query, "err", msg.Err)
		s.bus.Publish(eventbus.LookupFailedEvent{RequestID: msg.ID, Query: msg.Query, Err: msg.Err})
		failed := LookupFailedMsg{Query: msg.Query, Err: msg.Err}
		return func() tea.Msg { return failed }
	}

	s.setList(msg.Suggestions.Clone())
	s.status = FetchStatus{Kind: StatusSettled}
	log.Debug("lookup settled", "id", msg.ID, "query", msg.Query, "count", len(s.list))
	s.bus.Publish(eventbus.LookupSettledEvent{RequestID: msg.ID, Query: msg.Query, Count: len(s.list)})
	return nil
}

// isCurrent reports whether msg answers the request that is still waiting
func (s *Service) isCurrent(msg ResultMsg) bool {
	return !s.closed &&
		msg.ID == s.seq &&
		s.state.HasActive &&
		msg.Query == s.state.ActiveQuery &&
		s.status.Kind == StatusLoading
}

// supersede starts a new request generation and cancels the pending timer
func (s *Service) supersede() {
	s.seq++
	if s.cancelPending != nil {
		s.cancelPending()
		s.cancelPending = nil
	}
}

// schedule returns a cancelable timer for the current request
func (s *Service) schedule() tea.Cmd {
	id, q := s.seq, s.state.ActiveQuery
	ctx, cancel := context.WithCancel(s.ctx)
	s.cancelPending = cancel
	delay := s.delay

	log.Debug("lookup scheduled", "id", id, "query", q, "delay", delay)
	s.bus.Publish(eventbus.LookupScheduledEvent{RequestID: id, Query: q})

	return func() tea.Msg {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-timer.C:
			return DebounceMsg{ID: id}
		case <-ctx.Done():
			return nil
		}
	}
}

// dispatch returns the command that calls the source for the active query
func (s *Service) dispatch() tea.Cmd {
	id, q := s.seq, s.state.ActiveQuery
	source, ctx := s.source, s.ctx

	log.Debug("lookup dispatched", "id", id, "query", q)
	s.bus.Publish(eventbus.LookupDispatchedEvent{RequestID: id, Query: q})

	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = ResultMsg{ID: id, Query: q, Err: fmt.Errorf("lookup %q panicked: %v", q, r)}
			}
		}()
		list, err := source(ctx, q)
		return ResultMsg{ID: id, Query: q, Suggestions: list, Err: err}
	}
}

// setList replaces the list and notifies the list hook
func (s *Service) setList(list domain.SuggestionList) {
	hadItems := len(s.list) > 0
	s.list = list
	if hadItems && len(list) == 0 {
		s.bus.Publish(eventbus.SuggestionsClearedEvent{})
	}
	if s.listFn != nil {
		s.listFn(s.list)
	}
}
