package ui

import (
	"strings"

	"github.com/cornish/textivus-reader/layout"
	"github.com/cornish/textivus-reader/textview"
)

// renderPage draws the visible page, one string per row, each padded to the
// page width. The gap between two selected areas on a row takes the
// selection style so a selection reads as one block.
func renderPage(v *layout.View, sel *textview.Selection, styles Styles) []string {
	cw, ch := v.CellSize()
	rows := make([]strings.Builder, v.Rows())
	used := make([]int, v.Rows())
	lastSelected := make([]bool, v.Rows())

	for _, a := range v.CurrentPage().Areas() {
		row := a.YStart / ch
		if row < 0 || row >= len(rows) {
			continue
		}
		col := a.XStart / cw
		selected := sel.IsAreaSelected(a)

		if gap := col - used[row]; gap > 0 {
			style := styles.Text
			if selected && lastSelected[row] {
				style = styles.Selection
			}
			rows[row].WriteString(style.Render(strings.Repeat(" ", gap)))
		}

		style := styles.Text
		if w, ok := a.Element.(*textview.Word); ok {
			style = styles.Kind(w.Kind)
		}
		if selected {
			style = styles.Selection
		}
		rows[row].WriteString(style.Render(a.Text()))

		used[row] = col + (a.XEnd-a.XStart+1)/cw
		lastSelected[row] = selected
	}

	out := make([]string, len(rows))
	for i := range rows {
		if pad := v.Cols() - used[i]; pad > 0 {
			rows[i].WriteString(strings.Repeat(" ", pad))
		}
		out[i] = rows[i].String()
	}
	return out
}
