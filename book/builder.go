package book

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"

	"github.com/cornish/textivus-reader/textview"
)

// paragraphBuilder turns runs of text into paragraph elements. Whitespace
// collapses to a single HSpace, never leading or trailing.
type paragraphBuilder struct {
	elems textview.Elements
	space bool
}

// addSpace records whitespace before the next word.
func (b *paragraphBuilder) addSpace() {
	b.space = true
}

func (b *paragraphBuilder) addWord(w string, kind textview.Kind) {
	if b.space && len(b.elems) > 0 {
		b.elems = append(b.elems, textview.HSpace{})
	}
	b.space = false
	b.elems = append(b.elems, textview.NewWord(w, kind))
}

// addText segments text at word boundaries. Bare http(s) URLs become
// hyperlinks when autolink is set.
func (b *paragraphBuilder) addText(text string, kind textview.Kind, autolink bool) {
	for text != "" {
		start := strings.IndexFunc(text, func(r rune) bool { return !unicode.IsSpace(r) })
		if start < 0 {
			b.addSpace()
			return
		}
		if start > 0 {
			b.addSpace()
		}
		text = text[start:]
		end := strings.IndexFunc(text, unicode.IsSpace)
		if end < 0 {
			end = len(text)
		}
		token := text[:end]
		text = text[end:]

		if autolink && isURL(token) {
			url, tail := trimURL(token)
			b.openLink(url)
			b.addWord(url, textview.KindLink)
			b.closeLink()
			b.addSegments(tail, kind)
			continue
		}
		b.addSegments(token, kind)
	}
}

// addSegments adds a whitespace-free token as one word per segment.
func (b *paragraphBuilder) addSegments(token string, kind textview.Kind) {
	state := -1
	var word string
	for token != "" {
		word, token, state = uniseg.FirstWordInString(token, state)
		b.addWord(word, kind)
	}
}

func (b *paragraphBuilder) openLink(target string) {
	if b.space && len(b.elems) > 0 {
		b.elems = append(b.elems, textview.HSpace{})
	}
	b.space = false
	b.elems = append(b.elems, &textview.Control{Kind: textview.HyperlinkStart, Target: target})
}

func (b *paragraphBuilder) closeLink() {
	b.elems = append(b.elems, &textview.Control{Kind: textview.HyperlinkEnd})
}

// take returns the finished paragraph and resets the builder.
func (b *paragraphBuilder) take() textview.Elements {
	elems := b.elems
	b.elems = nil
	b.space = false
	return elems
}

func (b *paragraphBuilder) empty() bool {
	return len(b.elems) == 0
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// trimURL splits closing punctuation off a URL.
func trimURL(s string) (url, tail string) {
	url = strings.TrimRight(s, ".,;:!?)]}'\"")
	if strings.Count(url, "(") > strings.Count(url, ")") && strings.HasPrefix(s[len(url):], ")") {
		url += ")"
	}
	return url, s[len(url):]
}
