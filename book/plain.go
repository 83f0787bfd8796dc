package book

import (
	"regexp"
	"strings"

	"github.com/k3a/html2text"

	"github.com/cornish/textivus-reader/textview"
)

// parsePlain splits text into paragraphs at blank lines. Lines within a
// paragraph are joined with a space.
func parsePlain(text string) textview.Paragraphs {
	var (
		out textview.Paragraphs
		b   paragraphBuilder
	)
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			if !b.empty() {
				out = append(out, b.take())
			}
			continue
		}
		b.addSpace()
		b.addText(line, textview.KindPlain, true)
	}
	if !b.empty() {
		out = append(out, b.take())
	}
	return out
}

var titleTag = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)

// parseHTML flattens the document to text and parses that as plain text.
func parseHTML(text string) (textview.Paragraphs, string) {
	var title string
	if m := titleTag.FindStringSubmatch(text); m != nil {
		title = strings.Join(strings.Fields(html2text.HTMLEntitiesToText(m[1])), " ")
	}
	plain := html2text.HTML2TextWithOptions(text, html2text.WithUnixLineBreaks())
	return parsePlain(plain), title
}
