package source

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"

	"typeahead/internal/domain"
)

// ErrEmptyQuery is returned for a blank query term
var ErrEmptyQuery = errors.New("empty query")

// Trie is a case-insensitive prefix index over suggestion labels. A label
// matches when the query is a prefix of the whole label or of any of its
// words.
type Trie struct {
	trie  *patricia.Trie
	items domain.SuggestionList
	limit int
}

// NewTrie indexes items. limit <= 0 returns every match.
func NewTrie(items domain.SuggestionList, limit int) *Trie {
	t := &Trie{
		trie:  patricia.NewTrie(),
		items: items.Clone(),
		limit: limit,
	}
	for i, item := range t.items {
		label := strings.ToLower(strings.TrimSpace(item.Label))
		if label == "" {
			continue
		}
		t.add(label, i)
		for _, word := range strings.Fields(label) {
			if word != label {
				t.add(word, i)
			}
		}
	}
	return t
}

// add appends index to the postings of key
func (t *Trie) add(key string, index int) {
	k := patricia.Prefix(key)
	if existing, ok := t.trie.Get(k).([]int); ok {
		if existing[len(existing)-1] != index {
			t.trie.Set(k, append(existing, index))
		}
		return
	}
	t.trie.Insert(k, []int{index})
}

// Len returns the number of indexed suggestions
func (t *Trie) Len() int {
	return len(t.items)
}

// Lookup returns the suggestions matching query in dictionary order. It has
// the domain.LookupFunc signature.
func (t *Trie) Lookup(ctx context.Context, query string) (domain.SuggestionList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	prefix := strings.ToLower(strings.TrimSpace(query))
	if prefix == "" {
		return nil, ErrEmptyQuery
	}

	seen := make(map[int]struct{})
	err := t.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		postings, ok := item.([]int)
		if !ok {
			log.Errorf("unknown item type: %T for key %s", item, p)
			return nil
		}
		for _, i := range postings {
			seen[i] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("lookup %q: %w", query, err)
	}

	indexes := make([]int, 0, len(seen))
	for i := range seen {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)
	if t.limit > 0 && len(indexes) > t.limit {
		indexes = indexes[:t.limit]
	}

	result := make(domain.SuggestionList, len(indexes))
	for n, i := range indexes {
		result[n] = t.items[i]
	}
	return result, nil
}
