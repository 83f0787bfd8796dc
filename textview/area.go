package textview

// Area is a single positioned text fragment on a page: a word, a piece of a
// word broken across lines, or an inter-word space.
// Pixel bounds are inclusive on both ends.
type Area struct {
	ParagraphIndex int
	ElementIndex   int
	CharIndex      int // First rune of the element covered by this area
	Length         int // Runes covered

	XStart, XEnd int
	YStart, YEnd int

	Element Element
	Soul    Soul
}

// Compare orders areas in document order by paragraph, element and char index.
// It returns -1, 0 or 1.
func (a *Area) Compare(other *Area) int {
	if c := a.WeakCompare(other); c != 0 {
		return c
	}
	return compareInts(a.CharIndex, other.CharIndex)
}

// WeakCompare orders areas by paragraph and element only, so all fragments of
// one element compare equal.
func (a *Area) WeakCompare(other *Area) int {
	if c := compareInts(a.ParagraphIndex, other.ParagraphIndex); c != 0 {
		return c
	}
	return compareInts(a.ElementIndex, other.ElementIndex)
}

// Text returns the text the area displays.
func (a *Area) Text() string {
	switch e := a.Element.(type) {
	case *Word:
		return string(e.Runes()[a.CharIndex : a.CharIndex+a.Length])
	case HSpace:
		return " "
	}
	return ""
}

// Contains reports whether the point lies inside the area rectangle.
func (a *Area) Contains(x, y int) bool {
	return x >= a.XStart && x <= a.XEnd && y >= a.YStart && y <= a.YEnd
}

// DistanceTo returns the Chebyshev distance from the point to the area
// rectangle, 0 when the point is inside.
func (a *Area) DistanceTo(x, y int) int {
	var dx, dy int
	switch {
	case x < a.XStart:
		dx = a.XStart - x
	case x > a.XEnd:
		dx = x - a.XEnd
	}
	switch {
	case y < a.YStart:
		dy = a.YStart - y
	case y > a.YEnd:
		dy = y - a.YEnd
	}
	return max(dx, dy)
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
