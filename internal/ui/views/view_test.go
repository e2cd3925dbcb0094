package views

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typeahead/internal/domain"
)

func names(n int) domain.SuggestionList {
	list := make(domain.SuggestionList, n)
	for i := range list {
		list[i] = domain.Suggestion{Value: fmt.Sprint(i), Label: fmt.Sprintf("name-%02d", i)}
	}
	return list
}

func TestRenderListAndHitTest(t *testing.T) {
	r := NewRenderer()
	out := r.Render(ViewState{
		Input:          "> J",
		Suggestions:    domain.SuggestionList{{Value: "1", Label: "John"}, {Value: "4", Label: "Mike"}, {Value: "2", Label: "Jack"}},
		SelectedIndex:  1,
		ViewportHeight: 8,
		ItemHeight:     1,
		FirstVisible:   0,
		LastVisible:    2,
	})

	assert.Contains(t, out, "John")
	assert.Contains(t, out, "› Mike")
	assert.Contains(t, out, "2 of 3")

	// line 0 is the input, line 1 the top border
	assert.Equal(t, -1, r.HitTest(0))
	assert.Equal(t, -1, r.HitTest(1))
	assert.Equal(t, 0, r.HitTest(2))
	assert.Equal(t, 1, r.HitTest(3))
	assert.Equal(t, 2, r.HitTest(4))
	assert.Equal(t, -1, r.HitTest(5))
	require.Len(t, r.Rows(), 3)
}

func TestRenderVirtualizedWindow(t *testing.T) {
	r := NewRenderer()
	out := r.Render(ViewState{
		Input:          "> n",
		Suggestions:    names(10),
		SelectedIndex:  7,
		ScrollTop:      5,
		ViewportHeight: 3,
		ItemHeight:     1,
		FirstVisible:   5,
		LastVisible:    7,
	})

	assert.NotContains(t, out, "name-04")
	assert.Contains(t, out, "name-05")
	assert.Contains(t, out, "name-07")
	assert.NotContains(t, out, "name-08")

	// Click resolves by position among the rendered rows
	assert.Equal(t, 5, r.HitTest(2))
	assert.Equal(t, 7, r.HitTest(4))
	assert.Equal(t, -1, r.HitTest(5))
}

func TestRenderMultiLineRowsPartiallyScrolled(t *testing.T) {
	r := NewRenderer()
	list := domain.SuggestionList{
		{Value: "a", Label: "alpha\none"},
		{Value: "b", Label: "beta\ntwo"},
		{Value: "c", Label: "gamma\nthree"},
	}
	require.Equal(t, 2, r.RowHeight(list[0], 0))

	r.Render(ViewState{
		Input:          "> x",
		Suggestions:    list,
		SelectedIndex:  2,
		ScrollTop:      1,
		ViewportHeight: 5,
		ItemHeight:     2,
		FirstVisible:   0,
		LastVisible:    2,
	})

	// Row 0 only shows its second line
	assert.Equal(t, 0, r.HitTest(2))
	assert.Equal(t, 1, r.HitTest(3))
	assert.Equal(t, 1, r.HitTest(4))
	assert.Equal(t, 2, r.HitTest(5))
	assert.Equal(t, 2, r.HitTest(6))
	assert.Equal(t, -1, r.HitTest(7))
}

func TestRenderEmptyStates(t *testing.T) {
	r := NewRenderer()

	out := r.Render(ViewState{Input: "> J", Err: errors.New("timeout")})
	assert.Contains(t, out, "lookup failed: timeout")
	assert.Equal(t, -1, r.HitTest(1))

	out = r.Render(ViewState{Input: "> Zed", Settled: true})
	assert.Contains(t, out, "no matches")

	out = r.Render(ViewState{Input: "> "})
	assert.Equal(t, "> ", out)
}

func TestRenderBusySpinner(t *testing.T) {
	r := NewRenderer()
	out := r.Render(ViewState{Input: "> J", Busy: true, Spinner: "*"})
	assert.Contains(t, out, "*")

	out = r.Render(ViewState{Input: "> J", Busy: false, Spinner: "*"})
	assert.NotContains(t, out, "*")
}

func TestRenderNoSelectionShowsCount(t *testing.T) {
	r := NewRenderer()
	out := r.Render(ViewState{
		Input:          "> n",
		Suggestions:    names(4),
		SelectedIndex:  -1,
		ViewportHeight: 8,
		ItemHeight:     1,
		LastVisible:    3,
		Width:          40,
	})
	assert.Contains(t, out, "4 matches")
	assert.NotContains(t, out, "›")
}

func TestRenderRowsKeepItemHeight(t *testing.T) {
	r := NewRenderer()
	list := domain.SuggestionList{
		{Value: "1", Label: "Al"},
		{Value: "2", Label: "Alexandria Konstantinopoulou"},
		{Value: "3", Label: "two\nlines"},
		{Value: "4", Label: "Zed"},
	}
	width := r.RowWidth(20)
	require.Equal(t, 1, r.RowHeight(list[0], width))
	assert.Equal(t, 1, r.RowHeight(list[1], width), "long labels are truncated, not wrapped")

	out := r.Render(ViewState{
		Width:          20,
		Input:          "> A",
		Suggestions:    list,
		SelectedIndex:  3,
		ScrollTop:      1,
		ViewportHeight: 3,
		ItemHeight:     1,
		FirstVisible:   1,
		LastVisible:    3,
	})
	assert.Contains(t, out, "Alexandria Kon")
	assert.Contains(t, out, "…")
	assert.NotContains(t, out, "Konstantinopoulou")
	assert.NotContains(t, out, "lines")

	for _, row := range r.Rows() {
		assert.Equal(t, 1, row.Height, "row %d", row.Index)
	}
	assert.Equal(t, 1, r.HitTest(2))
	assert.Equal(t, 2, r.HitTest(3))
	assert.Equal(t, 3, r.HitTest(4))
}
