package syntax

import (
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/cornish/textivus-reader/textview"
)

// Span is a classified run of a line
type Span struct {
	Start int // Start column (rune index)
	End   int // End column (rune index, exclusive)
	Kind  textview.Kind
}

// Highlighter classifies the tokens of code lines
type Highlighter struct {
	lexer   chroma.Lexer
	enabled bool
}

// New creates a Highlighter for a language name, alias or file name.
// An unknown language yields a highlighter without a lexer.
func New(language string) *Highlighter {
	h := &Highlighter{enabled: true}
	h.SetLanguage(language)
	return h
}

// SetLanguage updates the lexer
func (h *Highlighter) SetLanguage(language string) {
	if language == "" {
		h.lexer = nil
		return
	}
	h.lexer = lexers.Get(language)
	if h.lexer != nil {
		h.lexer = chroma.Coalesce(h.lexer)
	}
}

// SetEnabled enables or disables classification
func (h *Highlighter) SetEnabled(enabled bool) {
	h.enabled = enabled
}

// Enabled returns whether classification is enabled
func (h *Highlighter) Enabled() bool {
	return h.enabled
}

// HasLexer returns true if a lexer is available for the language
func (h *Highlighter) HasLexer() bool {
	return h.lexer != nil
}

// Classify returns the classified spans of a line.
// Returns nil if classification is disabled or no lexer is available.
// Tokens with no class of their own are left out.
func (h *Highlighter) Classify(line string) []Span {
	if h == nil || !h.enabled || h.lexer == nil {
		return nil
	}

	iterator, err := h.lexer.Tokenise(nil, line)
	if err != nil {
		return nil
	}

	var spans []Span
	pos := 0
	for _, token := range iterator.Tokens() {
		kind := tokenKind(token.Type)
		tokenLen := utf8.RuneCountInString(token.Value)
		if kind != textview.KindCode && tokenLen > 0 {
			spans = append(spans, Span{
				Start: pos,
				End:   pos + tokenLen,
				Kind:  kind,
			})
		}
		pos += tokenLen
	}

	return spans
}

// KindAt returns the kind for a column position.
// Returns textview.KindCode if no span covers it.
func KindAt(spans []Span, col int) textview.Kind {
	for _, span := range spans {
		if col >= span.Start && col < span.End {
			return span.Kind
		}
	}
	return textview.KindCode
}

// tokenKind maps a chroma token type to a word kind
func tokenKind(t chroma.TokenType) textview.Kind {
	switch {
	// Keywords
	case t == chroma.Keyword,
		t == chroma.KeywordConstant,
		t == chroma.KeywordDeclaration,
		t == chroma.KeywordNamespace,
		t == chroma.KeywordPseudo,
		t == chroma.KeywordReserved,
		t == chroma.KeywordType:
		return textview.KindKeyword

	// Strings
	case t.InSubCategory(chroma.LiteralString):
		return textview.KindString

	// Comments
	case t.InCategory(chroma.Comment):
		return textview.KindComment

	// Numbers and constants
	case t.InSubCategory(chroma.LiteralNumber),
		t == chroma.NameConstant:
		return textview.KindNumber

	// Operators
	case t == chroma.Operator,
		t == chroma.OperatorWord:
		return textview.KindOperator

	// Functions
	case t == chroma.NameFunction,
		t == chroma.NameFunctionMagic:
		return textview.KindFunction

	// Types/Classes
	case t == chroma.NameClass,
		t == chroma.NameBuiltin,
		t == chroma.NameBuiltinPseudo:
		return textview.KindType

	// Errors
	case t == chroma.Error,
		t == chroma.GenericError:
		return textview.KindError

	default:
		return textview.KindCode
	}
}
