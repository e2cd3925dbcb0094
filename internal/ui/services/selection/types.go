package selection

import (
	"typeahead/internal/domain"
)

// Result describes the outcome of a commit
type Result struct {
	Index      int
	Suggestion domain.Suggestion
	Committed  bool // false when the index was out of range and only the clear ran
}
