package textview

import (
	"strings"
	"time"
)

const (
	testCharWidth  = 10
	testLineHeight = 20
)

// gridView lays out every paragraph on a single row. Each rune is
// testCharWidth pixels wide and each row testLineHeight pixels tall.
type gridView struct {
	model    Paragraphs
	rows     int
	top      int
	page     *Page
	scrolls  []int
	prepared int
	lastMode ScrollingMode
}

func newGridView(rows int, paragraphs ...string) *gridView {
	v := &gridView{model: paragraphsOf(paragraphs...), rows: rows}
	v.PreparePaintInfo()
	return v
}

func paragraphsOf(texts ...string) Paragraphs {
	model := make(Paragraphs, 0, len(texts))
	for _, text := range texts {
		var p Elements
		for i, w := range strings.Fields(text) {
			if i > 0 {
				p = append(p, HSpace{})
			}
			p = append(p, NewWord(w, KindPlain))
		}
		model = append(model, p)
	}
	return model
}

func (v *gridView) FindRegion(x, y, maxDistance int, filter RegionFilter) *Region {
	return v.page.FindRegion(x, y, maxDistance, filter)
}

func (v *gridView) CurrentPage() *Page {
	return v.page
}

func (v *gridView) ScrollPage(forward bool, mode ScrollingMode, value int) {
	v.lastMode = mode
	if forward {
		v.top = min(v.top+value, len(v.model)-1)
		v.scrolls = append(v.scrolls, value)
	} else {
		v.top = max(v.top-value, 0)
		v.scrolls = append(v.scrolls, -value)
	}
}

func (v *gridView) PreparePaintInfo() {
	v.prepared++
	var areas []*Area
	for row := 0; row < v.rows && v.top+row < len(v.model); row++ {
		pi := v.top + row
		x := 0
		for ei, e := range v.model[pi] {
			width := testCharWidth
			length := 1
			var soul Soul
			if w, ok := e.(*Word); ok {
				length = w.Length
				width = w.Length * testCharWidth
				soul = WordSoul{ParagraphIndex: pi, ElementIndex: ei}
			}
			areas = append(areas, &Area{
				ParagraphIndex: pi,
				ElementIndex:   ei,
				Length:         length,
				XStart:         x,
				XEnd:           x + width - 1,
				YStart:         row * testLineHeight,
				YEnd:           (row+1)*testLineHeight - 1,
				Element:        e,
				Soul:           soul,
			})
			x += width
		}
	}
	v.page = NewPage(areas)
}

func (v *gridView) TextAreaHeight() int {
	return v.rows * testLineHeight
}

func (v *gridView) Model() Model {
	return v.model
}

// fakeTimer records registrations and runs tasks only when fired.
type fakeTimer struct {
	next    TimerToken
	tasks   map[TimerToken]func()
	periods map[TimerToken]time.Duration
	removed []TimerToken
}

func newFakeTimer() *fakeTimer {
	return &fakeTimer{
		tasks:   make(map[TimerToken]func()),
		periods: make(map[TimerToken]time.Duration),
	}
}

func (t *fakeTimer) AddTimerTask(task func(), period time.Duration) TimerToken {
	t.next++
	t.tasks[t.next] = task
	t.periods[t.next] = period
	return t.next
}

func (t *fakeTimer) RemoveTimerTask(token TimerToken) {
	delete(t.tasks, token)
	t.removed = append(t.removed, token)
}

// fire runs every registered task once, as if the period elapsed.
func (t *fakeTimer) fire() int {
	ran := 0
	for token := TimerToken(1); token <= t.next; token++ {
		if task, ok := t.tasks[token]; ok {
			task()
			ran++
		}
	}
	return ran
}

type fakeWidget struct {
	resets   int
	repaints int
}

func (w *fakeWidget) Reset()   { w.resets++ }
func (w *fakeWidget) Repaint() { w.repaints++ }

type fakeApp struct {
	*fakeTimer
	widget *fakeWidget
}

func newFakeApp() *fakeApp {
	return &fakeApp{fakeTimer: newFakeTimer(), widget: &fakeWidget{}}
}

func (a *fakeApp) Widget() Widget {
	return a.widget
}

// center returns the pixel centre of the n-th word of the paragraph shown on
// the given row.
func center(v *gridView, row, word int) (int, int) {
	pi := v.top + row
	n := 0
	for _, a := range v.page.Areas() {
		if a.ParagraphIndex != pi {
			continue
		}
		if _, ok := a.Element.(*Word); !ok {
			continue
		}
		if n == word {
			return (a.XStart + a.XEnd) / 2, (a.YStart + a.YEnd + 1) / 2
		}
		n++
	}
	panic("no such word on page")
}
