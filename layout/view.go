// Package layout breaks a text model into lines and pages for a character
// grid and serves the visible page to the selection core.
//
// Geometry is expressed in pixels: each terminal cell is CellWidth by
// CellHeight pixels, so pixel thresholds used by the selection core behave
// the same regardless of terminal size.
package layout

import (
	"log/slog"

	"github.com/cornish/textivus-reader/textview"
)

const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 16

	// MinCols is the narrowest line. A double-width rune always fits.
	MinCols = 2
)

// Option configures a View.
type Option func(*View)

// WithCellSize sets the pixel size of one terminal cell.
func WithCellSize(width, height int) Option {
	return func(v *View) {
		if width > 0 {
			v.cellWidth = width
		}
		if height > 0 {
			v.cellHeight = height
		}
	}
}

// WithIndent sets the first-line indent of every paragraph, in cells.
func WithIndent(cells int) Option {
	return func(v *View) {
		v.indent = max(cells, 0)
	}
}

// WithParagraphSpacing inserts a blank line between paragraphs.
func WithParagraphSpacing(enabled bool) Option {
	return func(v *View) {
		v.paragraphSpacing = enabled
	}
}

// View lays out a model and pages through it. It implements textview.View.
type View struct {
	model textview.Model

	cols, rows            int
	cellWidth, cellHeight int
	indent                int
	paragraphSpacing      bool

	lines []line
	top   int // Index of the first visible line
	page  *textview.Page
}

// New creates a view for the model. Call SetSize before use.
func New(model textview.Model, opts ...Option) *View {
	v := &View{
		model:      model,
		cols:       80,
		rows:       24,
		cellWidth:  DefaultCellWidth,
		cellHeight: DefaultCellHeight,
	}
	for _, opt := range opts {
		opt(v)
	}
	v.relayout()
	return v
}

// SetSize sets the grid dimensions and reflows the text, keeping the first
// visible paragraph on screen. Widths below MinCols are raised to it.
func (v *View) SetSize(cols, rows int) {
	cols = max(cols, MinCols)
	rows = max(rows, 1)
	if cols == v.cols && rows == v.rows {
		return
	}
	anchor := v.TopParagraph()
	v.rows = rows
	if cols != v.cols {
		v.cols = cols
		v.relayout()
	}
	v.GotoParagraph(anchor)
}

// SetModel replaces the model and scrolls to the top.
func (v *View) SetModel(model textview.Model) {
	v.model = model
	v.top = 0
	v.relayout()
}

func (v *View) relayout() {
	v.lines = breakLines(v.model, v.cols, v.indent, v.paragraphSpacing)
	v.top = min(v.top, v.maxTop())
	v.page = nil
	slog.Debug("layout rebuilt", "cols", v.cols, "rows", v.rows, "lines", len(v.lines))
}

// Model returns the laid-out model.
func (v *View) Model() textview.Model {
	return v.model
}

// Cols returns the grid width in cells.
func (v *View) Cols() int {
	return v.cols
}

// Rows returns the grid height in cells.
func (v *View) Rows() int {
	return v.rows
}

// CellSize returns the pixel size of one cell.
func (v *View) CellSize() (width, height int) {
	return v.cellWidth, v.cellHeight
}

// TextAreaHeight returns the page height in pixels.
func (v *View) TextAreaHeight() int {
	return v.rows * v.cellHeight
}

// TotalLines returns the number of laid-out lines.
func (v *View) TotalLines() int {
	return len(v.lines)
}

// TopLine returns the index of the first visible line.
func (v *View) TopLine() int {
	return v.top
}

// TopParagraph returns the paragraph shown on the first visible line.
func (v *View) TopParagraph() int {
	for i := v.top; i < len(v.lines); i++ {
		if p := v.lines[i].paragraph; p >= 0 {
			return p
		}
	}
	return 0
}

// Progress returns how far through the document the page is, 0 to 100.
func (v *View) Progress() int {
	maxTop := v.maxTop()
	if maxTop == 0 {
		return 100
	}
	return v.top * 100 / maxTop
}

// CellToPixel maps a grid cell to the pixel at its centre.
func (v *View) CellToPixel(col, row int) (x, y int) {
	return col*v.cellWidth + v.cellWidth/2, row*v.cellHeight + v.cellHeight/2
}

// PixelToCell maps a pixel to the grid cell that contains it.
func (v *View) PixelToCell(x, y int) (col, row int) {
	return floorDiv(x, v.cellWidth), floorDiv(y, v.cellHeight)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func (v *View) maxTop() int {
	return max(len(v.lines)-v.rows, 0)
}

// GotoParagraph scrolls so the paragraph's first line is on top.
func (v *View) GotoParagraph(paragraph int) {
	top := v.maxTop()
	for i, l := range v.lines {
		if l.paragraph >= paragraph {
			top = i
			break
		}
	}
	v.top = min(top, v.maxTop())
	v.page = nil
}

// SetTopLine scrolls so the line is on top, clamped to the document.
func (v *View) SetTopLine(line int) {
	v.top = min(max(line, 0), v.maxTop())
	v.page = nil
}

// ScrollPage moves the visible window. The move is clamped to the document.
func (v *View) ScrollPage(forward bool, mode textview.ScrollingMode, value int) {
	var delta int
	switch mode {
	case textview.ScrollLines:
		delta = value
	case textview.KeepLines:
		delta = v.rows - value
	case textview.ScrollPercentage:
		delta = v.rows * value / 100
	default:
		delta = v.rows
	}
	delta = max(delta, 1)
	if !forward {
		delta = -delta
	}
	top := min(max(v.top+delta, 0), v.maxTop())
	if top != v.top {
		slog.Debug("page scrolled", "forward", forward, "mode", mode, "from", v.top, "to", top)
	}
	v.top = top
}

// PreparePaintInfo rebuilds the current page for the window position.
func (v *View) PreparePaintInfo() {
	v.page = v.buildPage()
}

// CurrentPage returns the visible page, building it if needed.
func (v *View) CurrentPage() *textview.Page {
	if v.page == nil {
		v.PreparePaintInfo()
	}
	return v.page
}

// FindRegion searches the visible page.
func (v *View) FindRegion(x, y, maxDistance int, filter textview.RegionFilter) *textview.Region {
	return v.CurrentPage().FindRegion(x, y, maxDistance, filter)
}

func (v *View) buildPage() *textview.Page {
	var areas []*textview.Area
	end := min(v.top+v.rows, len(v.lines))
	for row, l := range v.lines[v.top:end] {
		for _, f := range l.fragments {
			areas = append(areas, &textview.Area{
				ParagraphIndex: l.paragraph,
				ElementIndex:   f.element,
				CharIndex:      f.charIndex,
				Length:         f.length,
				XStart:         f.col * v.cellWidth,
				XEnd:           (f.col+f.width)*v.cellWidth - 1,
				YStart:         row * v.cellHeight,
				YEnd:           (row+1)*v.cellHeight - 1,
				Element:        f.item,
				Soul:           f.soul,
			})
		}
	}
	return textview.NewPage(areas)
}
