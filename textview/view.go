// Package textview implements interactive text selection over a paginated,
// laid-out text view: hit-testing pointer coordinates against text regions,
// growing a selection around an anchor region, extracting the selected text,
// and auto-scrolling while the pointer rests near the top or bottom edge.
//
// Layout, pagination, timers and repainting are supplied by the host through
// the View and Application interfaces. All calls are expected on the host's
// event-loop goroutine.
package textview

import (
	"errors"
	"math"
	"time"
)

// ScrollingMode tells the pagination engine how far to move.
type ScrollingMode int

const (
	// NoOverlapping scrolls a full page.
	NoOverlapping ScrollingMode = iota
	// KeepLines scrolls a page but keeps value lines of overlap.
	KeepLines
	// ScrollLines scrolls value lines.
	ScrollLines
	// ScrollPercentage scrolls value percent of a page.
	ScrollPercentage
)

func (m ScrollingMode) String() string {
	switch m {
	case NoOverlapping:
		return "no-overlapping"
	case KeepLines:
		return "keep-lines"
	case ScrollLines:
		return "scroll-lines"
	case ScrollPercentage:
		return "scroll-percentage"
	default:
		return "unknown"
	}
}

const (
	// DefaultSelectionDistance is the hit-test radius in pixels.
	DefaultSelectionDistance = 10
	// DefaultTriggerMargin is the band at the top and bottom edge that starts
	// auto-scrolling.
	DefaultTriggerMargin = 10
	// DefaultScrollPeriod is the delay between auto-scroll ticks.
	DefaultScrollPeriod = 400 * time.Millisecond
	// DefaultScrollLines is how many lines each auto-scroll tick moves.
	DefaultScrollLines = 1

	// NearestDistance makes FindRegion return the nearest region regardless
	// of distance.
	NearestDistance = math.MaxInt - 1
)

// ErrInvariantViolation marks a selection bound that no longer matches the
// model. It is only ever raised as a panic.
var ErrInvariantViolation = errors.New("textview: selection out of sync with model")

// View is the layout and pagination engine the selection works against.
type View interface {
	// FindRegion searches the current page.
	FindRegion(x, y, maxDistance int, filter RegionFilter) *Region
	CurrentPage() *Page
	ScrollPage(forward bool, mode ScrollingMode, value int)
	// PreparePaintInfo recomputes the current page after a scroll.
	PreparePaintInfo()
	TextAreaHeight() int
	Model() Model
}

// TimerToken identifies a timer registration.
type TimerToken uint64

// Timer runs tasks periodically on the host's event loop until removed.
type Timer interface {
	AddTimerTask(task func(), period time.Duration) TimerToken
	// RemoveTimerTask cancels the registration. A task must not run after
	// RemoveTimerTask returns.
	RemoveTimerTask(token TimerToken)
}

// Widget is the on-screen surface of the view.
type Widget interface {
	Reset()
	Repaint()
}

// Application bundles the host services the selection needs.
type Application interface {
	Timer
	Widget() Widget
}
