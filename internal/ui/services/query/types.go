package query

import (
	"typeahead/internal/domain"
)

// QueryState holds the raw input and the term driving lookups
type QueryState struct {
	Text        string // always what the input shows
	ActiveQuery string // only meaningful when HasActive
	HasActive   bool   // false when no lookup should run
}

// StatusKind is the fetch lifecycle phase
type StatusKind int

const (
	StatusIdle StatusKind = iota
	StatusLoading
	StatusSettled
)

func (k StatusKind) String() string {
	switch k {
	case StatusLoading:
		return "loading"
	case StatusSettled:
		return "settled"
	default:
		return "idle"
	}
}

// FetchStatus is the tri-state fetch status. Err is only set when Settled
// after a failed lookup.
type FetchStatus struct {
	Kind StatusKind
	Err  error
}

// Busy reports whether a lookup for the active query is pending or in flight
func (s FetchStatus) Busy() bool {
	return s.Kind == StatusLoading
}

// DebounceMsg fires when the quiet period of request ID has elapsed
type DebounceMsg struct {
	ID int
}

// ResultMsg carries a resolved lookup back into the update loop
type ResultMsg struct {
	ID          int
	Query       string
	Suggestions domain.SuggestionList
	Err         error
}

// LookupFailedMsg surfaces a failed lookup to the host. It is informational;
// the widget has already recovered to an empty, idle list.
type LookupFailedMsg struct {
	Query string
	Err   error
}
