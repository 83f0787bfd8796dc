package layout

import (
	"github.com/mattn/go-runewidth"

	"github.com/cornish/textivus-reader/textview"
)

// line is one row of laid-out text.
type line struct {
	paragraph int // -1 for the blank line between paragraphs
	fragments []fragment
}

// fragment is an element, or a piece of one, placed on a line.
type fragment struct {
	element   int
	charIndex int
	length    int
	col       int
	width     int
	item      textview.Element
	soul      textview.Soul
}

func breakLines(model textview.Model, cols, indent int, spacing bool) []line {
	if model == nil {
		return nil
	}
	var lines []line
	for p := 0; p < model.ParagraphCount(); p++ {
		if spacing && p > 0 {
			lines = append(lines, line{paragraph: -1})
		}
		b := &breaker{paragraph: p, cols: cols}
		b.cur = line{paragraph: p}
		b.col = min(indent, cols-1)
		lines = append(lines, b.run(model.Paragraph(p))...)
	}
	return lines
}

// breaker fills lines greedily. Spaces are kept only between two words on
// the same line; words wider than a line are split at rune boundaries.
type breaker struct {
	paragraph int
	cols      int

	lines   []line
	cur     line
	col     int
	pending *fragment // Space waiting for the next word
	link    textview.Soul
}

func (b *breaker) run(p textview.Paragraph) []line {
	for i := 0; i < p.Len(); i++ {
		switch e := p.Element(i).(type) {
		case *textview.Control:
			switch e.Kind {
			case textview.HyperlinkStart:
				b.link = textview.HyperlinkSoul{ParagraphIndex: b.paragraph, StartElement: i, Target: e.Target}
			case textview.HyperlinkEnd:
				b.link = nil
			}
		case textview.HSpace:
			if len(b.cur.fragments) > 0 {
				b.pending = &fragment{element: i, length: 1, width: 1, item: e, soul: b.link}
			}
		case *textview.Word:
			b.addWord(i, e)
		}
	}
	return append(b.lines, b.cur)
}

func (b *breaker) addWord(index int, w *textview.Word) {
	var soul textview.Soul = textview.WordSoul{ParagraphIndex: b.paragraph, ElementIndex: index}
	if b.link != nil {
		soul = b.link
	}
	runes := w.Runes()
	width := runewidth.StringWidth(string(runes))

	need := width
	if b.pending != nil {
		need++
	}
	if b.col+need <= b.cols {
		b.flushSpace()
		b.place(fragment{element: index, length: len(runes), width: width, item: w, soul: soul})
		return
	}

	if len(b.cur.fragments) > 0 {
		b.newLine()
	}
	b.pending = nil
	if b.col+width <= b.cols {
		b.place(fragment{element: index, length: len(runes), width: width, item: w, soul: soul})
		return
	}
	// Only the indent is in the way: start the word on a full line.
	if len(b.cur.fragments) == 0 && b.col > 0 && width <= b.cols {
		b.newLine()
		b.place(fragment{element: index, length: len(runes), width: width, item: w, soul: soul})
		return
	}

	// Split the word across as many lines as it needs.
	start := 0
	for start < len(runes) {
		if b.col > 0 && b.col+runewidth.RuneWidth(runes[start]) > b.cols {
			b.newLine()
		}
		end, chunk := start, 0
		for end < len(runes) {
			rw := runewidth.RuneWidth(runes[end])
			if b.col+chunk+rw > b.cols && end > start {
				break
			}
			chunk += rw
			end++
		}
		b.place(fragment{element: index, charIndex: start, length: end - start, width: chunk, item: w, soul: soul})
		start = end
		if start < len(runes) {
			b.newLine()
		}
	}
}

func (b *breaker) flushSpace() {
	if b.pending != nil {
		b.place(*b.pending)
		b.pending = nil
	}
}

func (b *breaker) place(f fragment) {
	f.col = b.col
	b.cur.fragments = append(b.cur.fragments, f)
	b.col += f.width
}

func (b *breaker) newLine() {
	b.lines = append(b.lines, b.cur)
	b.cur = line{paragraph: b.paragraph}
	b.col = 0
	b.pending = nil
}
