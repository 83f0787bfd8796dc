package textview

import (
	"math"
	"strings"
)

// Soul identifies the selectable unit an area belongs to. Consecutive areas on
// a page with equal souls form one Region. Implementations are comparable
// value types.
type Soul interface {
	soul()
}

// WordSoul is the soul of a single word element.
type WordSoul struct {
	ParagraphIndex int
	ElementIndex   int
}

func (WordSoul) soul() {}

// HyperlinkSoul is the soul shared by every word inside one hyperlink.
type HyperlinkSoul struct {
	ParagraphIndex int
	StartElement   int // Index of the opening hyperlink control element
	Target         string
}

func (HyperlinkSoul) soul() {}

// RegionFilter decides which regions a search may return.
type RegionFilter func(*Region) bool

var (
	// AnyRegionFilter accepts every region.
	AnyRegionFilter RegionFilter = func(*Region) bool { return true }

	// WordRegionFilter accepts plain word regions.
	WordRegionFilter RegionFilter = func(r *Region) bool {
		_, ok := r.Soul().(WordSoul)
		return ok
	}

	// HyperlinkRegionFilter accepts hyperlink regions.
	HyperlinkRegionFilter RegionFilter = func(r *Region) bool {
		_, ok := r.Soul().(HyperlinkSoul)
		return ok
	}
)

// Region is a contiguous run of areas on one page that together form a
// selectable unit. It is a view into the page's area list.
type Region struct {
	soul  Soul
	areas []*Area
	from  int // Inclusive index into areas
	to    int // Exclusive index into areas
}

// NewRegion creates a region over areas[from:to]. from < to is required.
func NewRegion(soul Soul, areas []*Area, from, to int) *Region {
	return &Region{soul: soul, areas: areas, from: from, to: to}
}

// Soul returns the unit this region represents.
func (r *Region) Soul() Soul {
	return r.soul
}

// Areas returns the region's areas in document order.
func (r *Region) Areas() []*Area {
	return r.areas[r.from:r.to]
}

// FirstArea returns the first area of the region.
func (r *Region) FirstArea() *Area {
	return r.areas[r.from]
}

// LastArea returns the last area of the region.
func (r *Region) LastArea() *Area {
	return r.areas[r.to-1]
}

// Compare orders regions in document order. Regions that overlap compare
// equal.
func (r *Region) Compare(other *Region) int {
	if r.FirstArea().Compare(other.LastArea()) > 0 {
		return 1
	}
	if r.LastArea().Compare(other.FirstArea()) < 0 {
		return -1
	}
	return 0
}

// DistanceTo returns the smallest distance from the point to any of the
// region's areas.
func (r *Region) DistanceTo(x, y int) int {
	best := math.MaxInt
	for _, a := range r.Areas() {
		if d := a.DistanceTo(x, y); d < best {
			best = d
		}
	}
	return best
}

// Text returns the literal text covered by the region.
func (r *Region) Text() string {
	var sb strings.Builder
	for _, a := range r.Areas() {
		sb.WriteString(a.Text())
	}
	return sb.String()
}
