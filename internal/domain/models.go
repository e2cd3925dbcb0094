package domain

import "context"

// Suggestion is a single entry returned by a lookup source
type Suggestion struct {
	Value string `yaml:"value"` // opaque identifier
	Label string `yaml:"label"` // text shown in the list and written back on commit
}

// SuggestionList is an ordered set of suggestions. It is replaced wholesale,
// never mutated in place.
type SuggestionList []Suggestion

// Len returns the number of suggestions
func (l SuggestionList) Len() int {
	return len(l)
}

// At returns the suggestion at index and whether the index is in range
func (l SuggestionList) At(index int) (Suggestion, bool) {
	if index < 0 || index >= len(l) {
		return Suggestion{}, false
	}
	return l[index], true
}

// Clone returns a copy that does not share the backing array
func (l SuggestionList) Clone() SuggestionList {
	if l == nil {
		return nil
	}
	out := make(SuggestionList, len(l))
	copy(out, l)
	return out
}

// LookupFunc maps a query term to suggestions. The context is canceled when
// the widget is torn down; superseded lookups are not canceled.
type LookupFunc func(ctx context.Context, query string) (SuggestionList, error)

// ChangeFunc is notified once per committed suggestion
type ChangeFunc func(Suggestion)
