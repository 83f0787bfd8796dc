package textview

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Option configures a Selection.
type Option func(*Selection)

// WithSelectionDistance sets the hit-test radius in pixels.
func WithSelectionDistance(d int) Option {
	return func(s *Selection) { s.selectionDistance = d }
}

// WithTriggerMargin sets the height of the auto-scroll bands in pixels.
func WithTriggerMargin(m int) Option {
	return func(s *Selection) { s.triggerMargin = m }
}

// WithScrollPeriod sets the delay between auto-scroll ticks.
func WithScrollPeriod(d time.Duration) Option {
	return func(s *Selection) { s.scrollPeriod = d }
}

// WithScrollLines sets how many lines each auto-scroll tick moves.
func WithScrollLines(n int) Option {
	return func(s *Selection) { s.scrollLines = n }
}

// WithLogger sets the logger used for auto-scroll transitions.
func WithLogger(l *slog.Logger) Option {
	return func(s *Selection) { s.logger = l }
}

// Selection is the single text selection of a view. The selection grows
// outward from the region where the gesture started (the anchor) and never
// lets a bound cross it.
type Selection struct {
	view View
	app  Application

	initialRegion *Region
	leftBound     *Area
	rightBound    *Area
	text          strings.Builder
	textValid     bool

	scroller *autoScroller

	selectionDistance int
	triggerMargin     int
	scrollPeriod      time.Duration
	scrollLines       int
	logger            *slog.Logger
}

// NewSelection creates an empty selection for the view.
func NewSelection(view View, app Application, opts ...Option) *Selection {
	s := &Selection{
		view:              view,
		app:               app,
		selectionDistance: DefaultSelectionDistance,
		triggerMargin:     DefaultTriggerMargin,
		scrollPeriod:      DefaultScrollPeriod,
		scrollLines:       DefaultScrollLines,
		logger:            slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsEmpty reports whether there is no selection.
func (s *Selection) IsEmpty() bool {
	return s.initialRegion == nil
}

// IsEmptyOnPage reports whether nothing on the page is selected.
func (s *Selection) IsEmptyOnPage(page *Page) bool {
	return s.StartAreaID(page) == -1
}

// Clear discards the selection. It returns whether there was one.
func (s *Selection) Clear() bool {
	had := !s.IsEmpty()
	s.Stop()
	s.initialRegion = nil
	s.leftBound = nil
	s.rightBound = nil
	s.invalidateText()
	return had
}

// Start begins a new selection on the region under the point. It returns
// false, leaving the selection empty, when there is none.
func (s *Selection) Start(x, y int) bool {
	s.Clear()
	region := s.findSelectedRegion(x, y)
	if region == nil {
		return false
	}
	s.initialRegion = region
	s.leftBound = region.FirstArea()
	s.rightBound = region.LastArea()
	return true
}

// Stop ends auto-scrolling. The bounds are kept.
func (s *Selection) Stop() {
	if s.scroller != nil {
		s.scroller.stop()
		s.scroller = nil
	}
}

// Scrolling reports whether auto-scroll is active and in which direction.
func (s *Selection) Scrolling() (forward, active bool) {
	if s.scroller == nil {
		return false, false
	}
	return s.scroller.forward, true
}

// ExpandTo moves the selection toward the point. It returns true when a bound
// changed and the view should be repainted.
func (s *Selection) ExpandTo(x, y int) bool {
	if s.initialRegion == nil {
		return s.Start(x, y)
	}

	switch {
	case y < s.triggerMargin:
		if s.scroller != nil && s.scroller.forward {
			s.Stop()
		}
		if s.scroller == nil {
			s.startScroller(false, x, y)
			return false
		}
	case y > s.view.TextAreaHeight()-s.triggerMargin:
		if s.scroller != nil && !s.scroller.forward {
			s.Stop()
		}
		if s.scroller == nil {
			s.startScroller(true, x, y)
			return false
		}
	default:
		s.Stop()
	}

	if s.scroller != nil {
		s.scroller.setXY(x, y)
	}

	region := s.findSelectedRegion(x, y)
	if region == nil && s.scroller != nil {
		region = s.findNearestRegion(x, y)
	}
	if region == nil {
		return false
	}

	first, last := region.FirstArea(), region.LastArea()
	changed := false
	switch cmp := s.initialRegion.Compare(region); {
	case cmp < 0:
		if s.rightBound.Compare(last) != 0 {
			s.rightBound = last
			changed = true
		}
	case cmp > 0:
		if s.leftBound.Compare(first) != 0 {
			s.leftBound = first
			changed = true
		}
	default:
		if s.leftBound.Compare(first) != 0 || s.rightBound.Compare(last) != 0 {
			s.leftBound = first
			s.rightBound = last
			changed = true
		}
	}
	if changed {
		s.invalidateText()
	}
	return changed
}

func (s *Selection) startScroller(forward bool, x, y int) {
	s.logger.Debug("auto-scroll started", "forward", forward, "x", x, "y", y)
	s.scroller = newAutoScroller(s, forward, x, y)
}

func (s *Selection) findSelectedRegion(x, y int) *Region {
	return s.view.FindRegion(x, y, s.selectionDistance, AnyRegionFilter)
}

func (s *Selection) findNearestRegion(x, y int) *Region {
	return s.view.FindRegion(x, y, NearestDistance, AnyRegionFilter)
}

func (s *Selection) invalidateText() {
	s.text.Reset()
	s.textValid = false
}

// Text returns the selected text. Paragraphs are joined with "\n".
func (s *Selection) Text() string {
	if s.IsEmpty() {
		return ""
	}
	if !s.textValid {
		from := s.leftBound.ParagraphIndex
		to := s.rightBound.ParagraphIndex
		for i := from; i < to; i++ {
			s.appendParagraphText(i)
			s.text.WriteByte('\n')
		}
		s.appendParagraphText(to)
		s.textValid = true
	}
	return s.text.String()
}

func (s *Selection) appendParagraphText(paragraphIndex int) {
	model := s.view.Model()
	if paragraphIndex < 0 || paragraphIndex >= model.ParagraphCount() {
		panic(fmt.Errorf("%w: paragraph %d of %d", ErrInvariantViolation, paragraphIndex, model.ParagraphCount()))
	}
	paragraph := model.Paragraph(paragraphIndex)

	start := 0
	if s.leftBound.ParagraphIndex == paragraphIndex {
		start = s.leftBound.ElementIndex
	}
	end := paragraph.Len() - 1
	if s.rightBound.ParagraphIndex == paragraphIndex {
		end = s.rightBound.ElementIndex
	}
	if start < 0 || end >= paragraph.Len() {
		panic(fmt.Errorf("%w: elements %d..%d in paragraph %d of length %d",
			ErrInvariantViolation, start, end, paragraphIndex, paragraph.Len()))
	}

	for i := start; i <= end; i++ {
		switch e := paragraph.Element(i).(type) {
		case HSpace:
			s.text.WriteByte(' ')
		case *Word:
			for _, r := range e.Runes() {
				s.text.WriteRune(r)
			}
		}
	}
}

// IsAreaSelected reports whether the area lies within the selection, bounds
// included. Fragments of a bound's element count as selected.
func (s *Selection) IsAreaSelected(area *Area) bool {
	return !s.IsEmpty() &&
		s.leftBound.WeakCompare(area) <= 0 &&
		s.rightBound.WeakCompare(area) >= 0
}

// StartAreaID returns the index of the left bound on the page. When the bound
// lies elsewhere but the page's first area is selected, it returns 0.
// Otherwise it returns -1.
func (s *Selection) StartAreaID(page *Page) int {
	if s.IsEmpty() || page == nil || page.Size() == 0 {
		return -1
	}
	id := page.IndexOf(s.leftBound)
	if id == -1 && s.IsAreaSelected(page.Get(0)) {
		return 0
	}
	return id
}

// EndAreaID returns the index of the right bound on the page. When the bound
// lies elsewhere but the page's last area is selected, it returns that index.
// Otherwise it returns -1.
func (s *Selection) EndAreaID(page *Page) int {
	if s.IsEmpty() || page == nil || page.Size() == 0 {
		return -1
	}
	id := page.IndexOf(s.rightBound)
	if id == -1 {
		last := page.Size() - 1
		if s.IsAreaSelected(page.Get(last)) {
			return last
		}
	}
	return id
}

// StartArea returns the left bound, nil when empty.
func (s *Selection) StartArea() *Area {
	if s.IsEmpty() {
		return nil
	}
	return s.leftBound
}

// EndArea returns the right bound, nil when empty.
func (s *Selection) EndArea() *Area {
	if s.IsEmpty() {
		return nil
	}
	return s.rightBound
}

// StartY returns the top pixel of the selection start on the current page,
// or 0 if it is not shown.
func (s *Selection) StartY() int {
	page := s.view.CurrentPage()
	if id := s.StartAreaID(page); id != -1 {
		return page.Get(id).YStart
	}
	return 0
}

// EndY returns the bottom pixel of the selection end on the current page, or
// 0 if it is not shown.
func (s *Selection) EndY() int {
	page := s.view.CurrentPage()
	if id := s.EndAreaID(page); id != -1 {
		return page.Get(id).YEnd
	}
	return 0
}
