package textview

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleText = []string{
	"Alpha beta gamma",
	"delta epsilon",
	"zeta eta theta iota",
	"kappa lambda",
	"mu nu xi",
	"omicron pi",
	"rho sigma tau",
	"upsilon phi",
	"chi psi omega",
}

func newTestSelection(rows int) (*Selection, *gridView, *fakeApp) {
	view := newGridView(rows, sampleText...)
	app := newFakeApp()
	return NewSelection(view, app), view, app
}

func TestClearEmpty(t *testing.T) {
	s, _, _ := newTestSelection(8)
	assert.True(t, s.IsEmpty())
	assert.False(t, s.Clear())
	assert.Equal(t, "", s.Text())
}

func TestClearNonEmpty(t *testing.T) {
	s, v, _ := newTestSelection(8)
	require.True(t, s.Start(center(v, 0, 1)))

	assert.True(t, s.Clear())
	assert.True(t, s.IsEmpty())
	assert.Nil(t, s.StartArea())
	assert.Nil(t, s.EndArea())
	assert.Equal(t, "", s.Text())
}

func TestStartMiss(t *testing.T) {
	tests := []struct {
		name string
		x, y int
	}{
		{"right of text", 500, 50},
		{"below text", 10, 900},
		{"just outside distance", 190 + 11, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := newTestSelection(10)
			assert.False(t, s.Start(tt.x, tt.y))
			assert.True(t, s.IsEmpty())
		})
	}
}

func TestStartHit(t *testing.T) {
	s, v, _ := newTestSelection(8)
	require.True(t, s.Start(center(v, 2, 1)))

	assert.Equal(t, 2, s.StartArea().ParagraphIndex)
	assert.Equal(t, 2, s.StartArea().ElementIndex)
	assert.Same(t, s.StartArea(), s.EndArea())
	assert.Equal(t, "eta", s.Text())
}

func TestStartWithinDistance(t *testing.T) {
	s, _, _ := newTestSelection(8)
	// "iota" ends at x=189 on row 2.
	require.True(t, s.Start(195, 50))
	assert.Equal(t, "iota", s.Text())
}

func TestExpandToEmptyDelegatesToStart(t *testing.T) {
	s, v, _ := newTestSelection(8)
	assert.True(t, s.ExpandTo(center(v, 1, 0)))
	assert.Equal(t, "delta", s.Text())
}

func TestExpandToIdempotent(t *testing.T) {
	s, v, _ := newTestSelection(8)
	require.True(t, s.Start(center(v, 2, 1)))

	x, y := center(v, 3, 1)
	assert.True(t, s.ExpandTo(x, y))
	text := s.Text()
	assert.False(t, s.ExpandTo(x, y))
	assert.Equal(t, text, s.Text())
}

func TestExpandToGrowsRightMonotonically(t *testing.T) {
	s, v, _ := newTestSelection(8)
	require.True(t, s.Start(center(v, 2, 1)))
	anchor := s.StartArea()

	targets := [][2]int{{2, 2}, {2, 3}, {3, 0}, {3, 1}, {4, 2}}
	prev := s.EndArea()
	for _, target := range targets {
		x, y := center(v, target[0], target[1])
		require.True(t, s.ExpandTo(x, y))
		assert.Equal(t, 0, s.StartArea().Compare(anchor), "left bound must stay on the anchor")
		assert.Positive(t, s.EndArea().Compare(prev), "right bound must move away from the anchor")
		prev = s.EndArea()
	}
	assert.Equal(t, "eta theta iota\nkappa lambda\nmu nu xi", s.Text())
}

func TestExpandToGrowsLeftMonotonically(t *testing.T) {
	s, v, _ := newTestSelection(8)
	require.True(t, s.Start(center(v, 2, 2)))

	prev := s.StartArea()
	for _, target := range [][2]int{{2, 1}, {2, 0}, {1, 1}, {0, 2}, {0, 0}} {
		x, y := center(v, target[0], target[1])
		require.True(t, s.ExpandTo(x, y))
		assert.Negative(t, s.StartArea().Compare(prev))
		prev = s.StartArea()
	}
	assert.Equal(t, "Alpha beta gamma\ndelta epsilon\nzeta eta theta", s.Text())
}

func TestExpandToSnapsBackToAnchor(t *testing.T) {
	s, v, _ := newTestSelection(8)
	ax, ay := center(v, 2, 1)
	require.True(t, s.Start(ax, ay))

	require.True(t, s.ExpandTo(center(v, 4, 0)))
	require.True(t, s.ExpandTo(ax, ay))
	assert.Equal(t, "eta", s.Text())
	assert.False(t, s.ExpandTo(ax, ay))
}

func TestExpandToOtherSideKeepsFarBound(t *testing.T) {
	s, v, _ := newTestSelection(8)
	require.True(t, s.Start(center(v, 2, 1)))
	require.True(t, s.ExpandTo(center(v, 3, 0)))

	// Crossing over the anchor only moves the left bound.
	require.True(t, s.ExpandTo(center(v, 2, 0)))
	assert.Equal(t, "zeta eta theta iota\nkappa", s.Text())
}

func TestExpandToMissIsNoChange(t *testing.T) {
	s, v, _ := newTestSelection(8)
	require.True(t, s.Start(center(v, 2, 1)))
	assert.False(t, s.ExpandTo(600, 50))
	assert.Equal(t, "eta", s.Text())
}

func TestTextAcrossParagraphs(t *testing.T) {
	s, v, _ := newTestSelection(8)
	require.True(t, s.Start(center(v, 2, 1)))
	require.True(t, s.ExpandTo(center(v, 4, 1)))

	assert.Equal(t, "eta theta iota\nkappa lambda\nmu nu", s.Text())
}

func TestTextCacheMatchesFreshComputation(t *testing.T) {
	s, v, _ := newTestSelection(8)
	require.True(t, s.Start(center(v, 0, 1)))

	for _, target := range [][2]int{{1, 0}, {2, 3}, {0, 1}, {0, 0}, {4, 2}} {
		s.ExpandTo(center(v, target[0], target[1]))
		cached := s.Text()
		s.invalidateText()
		assert.Equal(t, cached, s.Text())
	}
}

func TestTextCollapsesSpaces(t *testing.T) {
	view := newGridView(4)
	view.model = Paragraphs{
		{NewWord("one", KindPlain), HSpace{}, &Control{Kind: HyperlinkStart, Target: "x"},
			NewWord("two", KindLink), &Control{Kind: HyperlinkEnd}, HSpace{}, NewWord("three", KindPlain)},
	}
	view.PreparePaintInfo()
	s := NewSelection(view, newFakeApp())

	require.True(t, s.Start(5, 5))
	require.True(t, s.ExpandTo(center(view, 0, 2)))
	assert.Equal(t, "one two three", s.Text())
}

func TestTextPanicsOnModelDesync(t *testing.T) {
	s, v, _ := newTestSelection(8)
	require.True(t, s.Start(center(v, 4, 0)))
	v.model = v.model[:2]

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, ErrInvariantViolation))
	}()
	_ = s.Text()
}

func TestIsAreaSelected(t *testing.T) {
	s, v, _ := newTestSelection(8)
	require.True(t, s.Start(center(v, 1, 1)))
	require.True(t, s.ExpandTo(center(v, 2, 1)))

	left, right := s.StartArea(), s.EndArea()
	for _, a := range v.page.Areas() {
		want := a.WeakCompare(left) >= 0 && a.WeakCompare(right) <= 0
		assert.Equal(t, want, s.IsAreaSelected(a), "area %d/%d", a.ParagraphIndex, a.ElementIndex)
	}
	assert.True(t, s.IsAreaSelected(left))
	assert.True(t, s.IsAreaSelected(right))

	s.Clear()
	assert.False(t, s.IsAreaSelected(left))
}

func TestIsAreaSelectedSplitWord(t *testing.T) {
	word := NewWord("extraordinary", KindPlain)
	soul := WordSoul{ParagraphIndex: 0, ElementIndex: 0}
	head := &Area{ElementIndex: 0, CharIndex: 0, Length: 5, XStart: 0, XEnd: 49, YStart: 0, YEnd: 19, Element: word, Soul: soul}
	tail := &Area{ElementIndex: 0, CharIndex: 5, Length: 8, XStart: 0, XEnd: 79, YStart: 20, YEnd: 39, Element: word, Soul: soul}
	page := NewPage([]*Area{head, tail})

	require.Len(t, page.Regions(), 1)
	assert.Equal(t, "extraordinary", page.Regions()[0].Text())
	assert.Equal(t, 1, page.IndexOf(tail))
	assert.NotZero(t, head.Compare(tail))
	assert.Zero(t, head.WeakCompare(tail))

	view := newGridView(4)
	view.model = Paragraphs{{word}}
	view.page = page
	s := NewSelection(view, newFakeApp())
	require.True(t, s.Start(10, 10))
	assert.Same(t, head, s.StartArea())
	assert.Same(t, tail, s.EndArea())
	assert.True(t, s.IsAreaSelected(tail))
	assert.Equal(t, "extraordinary", s.Text())
}

func TestAreaIDsAcrossPages(t *testing.T) {
	s, v, _ := newTestSelection(3)
	require.True(t, s.Start(center(v, 0, 0)))
	require.True(t, s.ExpandTo(center(v, 2, 2)))

	page := v.CurrentPage()
	assert.Equal(t, 0, s.StartAreaID(page))
	assert.Equal(t, 12, s.EndAreaID(page))

	v.ScrollPage(true, ScrollLines, 2)
	v.PreparePaintInfo()
	page = v.CurrentPage()
	assert.Equal(t, 0, s.StartAreaID(page), "covered first area stands in for an off-page bound")
	assert.Equal(t, 4, s.EndAreaID(page))
	assert.Equal(t, 0, s.StartY())
	assert.Equal(t, testLineHeight-1, s.EndY())
	assert.False(t, s.IsEmptyOnPage(page))

	v.ScrollPage(true, ScrollLines, 1)
	v.PreparePaintInfo()
	page = v.CurrentPage()
	assert.Equal(t, -1, s.StartAreaID(page))
	assert.Equal(t, -1, s.EndAreaID(page))
	assert.True(t, s.IsEmptyOnPage(page))
	assert.Equal(t, 0, s.StartY())
	assert.Equal(t, 0, s.EndY())
}

func TestEndAreaIDCoversLastArea(t *testing.T) {
	s, v, _ := newTestSelection(2)
	require.True(t, s.Start(center(v, 0, 2)))

	v.top = 2
	v.PreparePaintInfo()
	s.rightBound = &Area{ParagraphIndex: 5, ElementIndex: 0}

	page := v.CurrentPage()
	assert.Equal(t, page.Size()-1, s.EndAreaID(page))
	assert.Equal(t, 0, s.StartAreaID(page))
}

func TestAreaIDsOnEmptySelection(t *testing.T) {
	s, v, _ := newTestSelection(3)
	assert.Equal(t, -1, s.StartAreaID(v.CurrentPage()))
	assert.Equal(t, -1, s.EndAreaID(v.CurrentPage()))
	assert.Equal(t, 0, s.StartY())
	assert.Equal(t, 0, s.EndY())
}

func TestStartYEndY(t *testing.T) {
	s, v, _ := newTestSelection(8)
	require.True(t, s.Start(center(v, 1, 0)))
	require.True(t, s.ExpandTo(center(v, 3, 1)))

	assert.Equal(t, 1*testLineHeight, s.StartY())
	assert.Equal(t, 4*testLineHeight-1, s.EndY())
}
