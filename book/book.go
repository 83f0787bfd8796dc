// Package book loads a file into the paragraph model the reader lays out.
package book

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cornish/textivus-reader/encoding"
	"github.com/cornish/textivus-reader/textview"
)

// Format is the markup a book is written in.
type Format int

const (
	FormatPlain Format = iota
	FormatMarkdown
	FormatHTML
)

func (f Format) String() string {
	switch f {
	case FormatMarkdown:
		return "Markdown"
	case FormatHTML:
		return "HTML"
	}
	return "Text"
}

// FormatFor picks the format from a file name's extension.
func FormatFor(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown", ".mdown", ".mkd":
		return FormatMarkdown
	case ".html", ".htm", ".xhtml":
		return FormatHTML
	}
	return FormatPlain
}

// Book is a loaded document.
type Book struct {
	Title    string
	Path     string
	Format   Format
	Encoding *encoding.Encoding
	Model    textview.Paragraphs
}

// Load reads and parses the file at path.
func Load(path string) (*Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read book: %w", err)
	}
	b, err := Parse(path, data)
	if err != nil {
		return nil, err
	}
	if abs, err := filepath.Abs(path); err == nil {
		b.Path = abs
	}
	return b, nil
}

// Parse decodes data and builds the book model. The name selects the format
// and provides the fallback title.
func Parse(name string, data []byte) (*Book, error) {
	text, detected, err := encoding.Decode(data)
	if errors.Is(err, encoding.ErrUnsupported) {
		// Latin-1 decodes any byte sequence
		detected.Encoding = encoding.GetEncodingByID("iso-8859-1")
		var out []byte
		out, err = encoding.DecodeToUTF8(data, detected.Encoding)
		text = string(out)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(name), err)
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")

	b := &Book{
		Path:     name,
		Format:   FormatFor(name),
		Encoding: detected.Encoding,
	}

	switch b.Format {
	case FormatMarkdown:
		b.Model, b.Title = parseMarkdown([]byte(text))
	case FormatHTML:
		b.Model, b.Title = parseHTML(text)
	default:
		b.Model = parsePlain(text)
	}

	if b.Title == "" {
		base := filepath.Base(name)
		b.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return b, nil
}

// Words returns the number of words in the book.
func (b *Book) Words() int {
	n := 0
	for _, p := range b.Model {
		for _, e := range p {
			if _, ok := e.(*textview.Word); ok {
				n++
			}
		}
	}
	return n
}
