package book

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/cornish/textivus-reader/syntax"
	"github.com/cornish/textivus-reader/textview"
)

// markdown is the goldmark parser with GitHub Flavored Markdown extensions.
var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
	),
)

// parseMarkdown walks the document's block tree. Each text block, heading,
// table row and code line becomes one paragraph. The first level-one
// heading is the title.
func parseMarkdown(src []byte) (textview.Paragraphs, string) {
	doc := markdown.Parser().Parse(text.NewReader(src))
	w := &mdWalker{src: src}
	w.blocks(doc)
	return w.out, w.title
}

type mdWalker struct {
	src    []byte
	out    textview.Paragraphs
	title  string
	b      paragraphBuilder
	marker string // List marker for the next paragraph
}

func (w *mdWalker) blocks(n ast.Node) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Heading:
			w.inline(c, textview.KindHeading)
			if w.title == "" && c.Level == 1 {
				w.title = plainText(w.b.elems)
			}
			w.flush()
		case *ast.Paragraph, *ast.TextBlock:
			w.inline(c, textview.KindPlain)
			w.flush()
		case *ast.FencedCodeBlock:
			w.code(c, string(c.Language(w.src)))
		case *ast.CodeBlock:
			w.code(c, "")
		case *ast.ListItem:
			w.marker = listMarker(c)
			w.blocks(c)
			w.marker = ""
		case *east.TableHeader:
			w.tableRow(c, textview.KindHeading)
		case *east.TableRow:
			w.tableRow(c, textview.KindPlain)
		case *ast.HTMLBlock, *ast.ThematicBreak:
		default:
			w.blocks(c)
		}
	}
}

func (w *mdWalker) flush() {
	if !w.b.empty() {
		w.out = append(w.out, w.b.take())
	}
}

func (w *mdWalker) inline(n ast.Node, kind textview.Kind) {
	if w.marker != "" {
		w.b.addWord(w.marker, textview.KindPlain)
		w.b.addSpace()
		w.marker = ""
	}
	w.inlines(n, kind)
}

func (w *mdWalker) inlines(n ast.Node, kind textview.Kind) {
	autolink := kind != textview.KindLink && kind != textview.KindCode
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			w.b.addText(string(c.Segment.Value(w.src)), kind, autolink)
			if c.SoftLineBreak() || c.HardLineBreak() {
				w.b.addSpace()
			}
		case *ast.String:
			w.b.addText(string(c.Value), kind, autolink)
		case *ast.CodeSpan:
			w.inlines(c, textview.KindCode)
		case *ast.Emphasis:
			if kind == textview.KindPlain {
				w.inlines(c, textview.KindEmphasis)
			} else {
				w.inlines(c, kind)
			}
		case *ast.Link:
			w.b.openLink(string(c.Destination))
			w.inlines(c, textview.KindLink)
			w.b.closeLink()
		case *ast.AutoLink:
			url := string(c.URL(w.src))
			w.b.openLink(url)
			w.b.addWord(url, textview.KindLink)
			w.b.closeLink()
		case *ast.RawHTML:
		default:
			w.inlines(c, kind)
		}
	}
}

func (w *mdWalker) tableRow(row ast.Node, kind textview.Kind) {
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		if cell != row.FirstChild() {
			w.b.addSpace()
			w.b.addWord("|", textview.KindPlain)
			w.b.addSpace()
		}
		w.inlines(cell, kind)
	}
	w.flush()
}

// code adds one paragraph per line of a code block, blank lines included.
func (w *mdWalker) code(n ast.Node, language string) {
	h := syntax.New(language)
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		line := strings.TrimRight(string(seg.Value(w.src)), "\r\n")
		w.out = append(w.out, codeLine(h, line))
	}
}

// codeLine splits a line of code into words at whitespace and wherever the
// token class changes.
func codeLine(h *syntax.Highlighter, line string) textview.Elements {
	spans := h.Classify(line)
	runes := []rune(line)
	var b paragraphBuilder
	start := -1
	for i, r := range runes {
		switch {
		case unicode.IsSpace(r):
			if start >= 0 {
				b.addWord(string(runes[start:i]), syntax.KindAt(spans, start))
				start = -1
			}
			b.addSpace()
		case start < 0:
			start = i
		case syntax.KindAt(spans, i) != syntax.KindAt(spans, start):
			b.addWord(string(runes[start:i]), syntax.KindAt(spans, start))
			start = i
		}
	}
	if start >= 0 {
		b.addWord(string(runes[start:]), syntax.KindAt(spans, start))
	}
	return b.take()
}

func listMarker(item *ast.ListItem) string {
	list, ok := item.Parent().(*ast.List)
	if !ok || !list.IsOrdered() {
		return "•"
	}
	n := list.Start
	for s := item.PreviousSibling(); s != nil; s = s.PreviousSibling() {
		n++
	}
	return strconv.Itoa(n) + "."
}

// plainText renders elements as a single line.
func plainText(elems textview.Elements) string {
	var sb strings.Builder
	for _, e := range elems {
		switch e := e.(type) {
		case *textview.Word:
			sb.WriteString(e.String())
		case textview.HSpace:
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}
