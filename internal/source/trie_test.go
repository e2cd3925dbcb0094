package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typeahead/internal/domain"
)

func labels(list domain.SuggestionList) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.Label
	}
	return out
}

func TestTriePrefixLookup(t *testing.T) {
	trie := NewTrie(domain.SuggestionList{
		{Value: "1", Label: "John"},
		{Value: "2", Label: "Jack"},
		{Value: "3", Label: "Anna"},
		{Value: "4", Label: "Mary Jane"},
		{Value: "5", Label: "jo jo"},
	}, 0)
	require.Equal(t, 5, trie.Len())

	got, err := trie.Lookup(context.Background(), "j")
	require.NoError(t, err)
	assert.Equal(t, []string{"John", "Jack", "Mary Jane", "jo jo"}, labels(got), "dictionary order, word prefixes included")

	got, err = trie.Lookup(context.Background(), "JO")
	require.NoError(t, err)
	assert.Equal(t, []string{"John", "jo jo"}, labels(got))

	got, err = trie.Lookup(context.Background(), "mary j")
	require.NoError(t, err)
	assert.Equal(t, []string{"Mary Jane"}, labels(got))

	got, err = trie.Lookup(context.Background(), "zed")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTrieLimit(t *testing.T) {
	trie := NewTrie(DefaultDictionary(), 3)

	got, err := trie.Lookup(context.Background(), "j")
	require.NoError(t, err)
	assert.Equal(t, []string{"John", "Jack", "Jane"}, labels(got))
}

func TestTrieEmptyQuery(t *testing.T) {
	trie := NewTrie(DefaultDictionary(), 0)
	_, err := trie.Lookup(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestTrieCanceledContext(t *testing.T) {
	trie := NewTrie(DefaultDictionary(), 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := trie.Lookup(ctx, "j")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTrieResultsAreCopies(t *testing.T) {
	items := domain.SuggestionList{{Value: "1", Label: "John"}}
	trie := NewTrie(items, 0)
	items[0].Label = "Changed"

	got, err := trie.Lookup(context.Background(), "jo")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "John", got[0].Label)
}
