package textview

// Kind is the display class of a word.
type Kind int

const (
	KindPlain Kind = iota
	KindHeading
	KindEmphasis
	KindLink
	KindCode
	KindKeyword
	KindString
	KindComment
	KindNumber
	KindOperator
	KindFunction
	KindType
	KindError
)

// Element is one item of a paragraph.
type Element interface {
	element()
}

// Word is a run of non-space text. Data is shared between the words of a
// paragraph; the word covers Data[Offset:Offset+Length].
type Word struct {
	Data   []rune
	Offset int
	Length int
	Kind   Kind
}

func (*Word) element() {}

// NewWord creates a word that owns its runes.
func NewWord(s string, kind Kind) *Word {
	data := []rune(s)
	return &Word{Data: data, Length: len(data), Kind: kind}
}

// Runes returns the word's runes.
func (w *Word) Runes() []rune {
	return w.Data[w.Offset : w.Offset+w.Length]
}

// String returns the word's text.
func (w *Word) String() string {
	return string(w.Runes())
}

// HSpace is the designated horizontal space element. Any run of whitespace in
// the source collapses to one HSpace.
type HSpace struct{}

func (HSpace) element() {}

// ControlKind distinguishes control elements.
type ControlKind int

const (
	HyperlinkStart ControlKind = iota
	HyperlinkEnd
)

// Control is a non-text marker inside a paragraph.
type Control struct {
	Kind   ControlKind
	Target string // Link destination for HyperlinkStart
}

func (*Control) element() {}

// Paragraph is an ordered list of elements.
type Paragraph interface {
	Len() int
	Element(i int) Element
}

// Model is the text content a view lays out.
type Model interface {
	ParagraphCount() int
	Paragraph(i int) Paragraph
}

// Elements is a slice-backed Paragraph.
type Elements []Element

func (e Elements) Len() int              { return len(e) }
func (e Elements) Element(i int) Element { return e[i] }

// Paragraphs is a slice-backed Model.
type Paragraphs []Elements

func (p Paragraphs) ParagraphCount() int      { return len(p) }
func (p Paragraphs) Paragraph(i int) Paragraph { return p[i] }
