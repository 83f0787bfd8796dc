package ui

// Scrollbar represents a vertical scrollbar displayed on the right side of the page
type Scrollbar struct {
	height  int
	enabled bool
	ascii   bool
	styles  Styles
}

// NewScrollbar creates a new scrollbar instance
func NewScrollbar(styles Styles) *Scrollbar {
	return &Scrollbar{
		height: 24,
		styles: styles,
	}
}

// Width returns the scrollbar width (1 character, or 0 if disabled)
func (s *Scrollbar) Width() int {
	if !s.enabled {
		return 0
	}
	return 1
}

// SetHeight sets the scrollbar height
func (s *Scrollbar) SetHeight(height int) {
	if height > 0 {
		s.height = height
	}
}

// Height returns the scrollbar height
func (s *Scrollbar) Height() int {
	return s.height
}

// SetEnabled enables or disables the scrollbar
func (s *Scrollbar) SetEnabled(enabled bool) {
	s.enabled = enabled
}

// IsEnabled returns whether the scrollbar is enabled
func (s *Scrollbar) IsEnabled() bool {
	return s.enabled
}

// SetASCII draws the scrollbar with plain ASCII characters
func (s *Scrollbar) SetASCII(ascii bool) {
	s.ascii = ascii
}

// SetStyles updates the styles for runtime theme changes
func (s *Scrollbar) SetStyles(styles Styles) {
	s.styles = styles
}

// thumb returns the first row and size of the thumb.
func (s *Scrollbar) thumb(top, visible, total int) (start, size int) {
	total = max(total, 1)
	visible = max(visible, 1)
	top = max(top, 0)

	if total <= visible {
		return 0, s.height
	}

	// int64 avoids overflow on very long books
	size = int(int64(visible) * int64(s.height) / int64(total))
	size = min(max(size, 1), s.height)

	maxScroll := total - visible
	top = min(top, maxScroll)
	if thumbRange := s.height - size; thumbRange > 0 {
		start = int(int64(top) * int64(thumbRange) / int64(maxScroll))
	}
	start = min(max(start, 0), s.height-size)
	return start, size
}

// Render renders the scrollbar as a slice of strings, one per page row.
// top is the first visible line, visible the number of visible lines and
// total the number of laid-out lines.
func (s *Scrollbar) Render(top, visible, total int) []string {
	if !s.enabled || s.height <= 0 {
		return nil
	}

	trackChar, thumbChar := "│", "┃"
	if s.ascii {
		trackChar, thumbChar = "|", "#"
	}
	track := s.styles.ScrollbarTrack.Render(trackChar)
	thumb := s.styles.ScrollbarThumb.Render(thumbChar)

	start, size := s.thumb(top, visible, total)
	result := make([]string, s.height)
	for row := range result {
		if row >= start && row < start+size {
			result[row] = thumb
		} else {
			result[row] = track
		}
	}
	return result
}

// RowToLine converts a scrollbar row to the line that should be centred on
// the page. It inverts the thumb position calculation in Render.
func (s *Scrollbar) RowToLine(row, visible, total int) int {
	if total <= 0 || s.height <= 0 || total <= visible {
		return 0
	}
	row = min(max(row, 0), s.height-1)

	_, size := s.thumb(0, visible, total)
	thumbRange := s.height - size
	maxScroll := total - visible
	if thumbRange <= 0 || maxScroll <= 0 {
		return 0
	}

	scrollPos := int(int64(row) * int64(maxScroll) / int64(thumbRange))
	line := scrollPos + visible/2
	return min(max(line, 0), total-1)
}
