package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/cornish/textivus-reader/config"
	"github.com/cornish/textivus-reader/textview"
)

// SetColorMode selects the color profile lipgloss renders with. Hex theme
// colors degrade to the nearest color the profile supports.
func SetColorMode(mode config.ColorMode) {
	lipgloss.SetColorProfile(colorProfile(mode))
}

func colorProfile(mode config.ColorMode) termenv.Profile {
	switch mode {
	case config.ColorTrueColor:
		return termenv.TrueColor
	case config.Color256:
		return termenv.ANSI256
	case config.Color16:
		return termenv.ANSI
	}
	return termenv.Ascii
}

// Styles contains all the styles used by the reader
type Styles struct {
	// The theme these styles were generated from
	Theme config.Theme

	// Page text, indexed by word kind
	Kinds     map[textview.Kind]lipgloss.Style
	Text      lipgloss.Style
	Selection lipgloss.Style

	// Status bar styles
	StatusBar    lipgloss.Style
	StatusAccent lipgloss.Style

	// Scrollbar
	ScrollbarTrack lipgloss.Style
	ScrollbarThumb lipgloss.Style

	Error lipgloss.Style
}

// NewStyles creates a Styles configuration from a theme
func NewStyles(theme config.Theme) Styles {
	ui := theme.UI
	syn := theme.Syntax
	fg := func(color string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}

	return Styles{
		Theme: theme,

		Kinds: map[textview.Kind]lipgloss.Style{
			textview.KindPlain:    fg(ui.TextFg),
			textview.KindHeading:  fg(ui.HeadingFg).Bold(true),
			textview.KindEmphasis: fg(ui.EmphasisFg).Italic(true),
			textview.KindLink:     fg(ui.LinkFg).Underline(true),
			textview.KindCode:     fg(ui.CodeFg),
			textview.KindKeyword:  fg(syn.Keyword).Bold(true),
			textview.KindString:   fg(syn.String),
			textview.KindComment:  fg(syn.Comment).Italic(true),
			textview.KindNumber:   fg(syn.Number),
			textview.KindOperator: fg(syn.Operator),
			textview.KindFunction: fg(syn.Function),
			textview.KindType:     fg(syn.Type),
			textview.KindError:    fg(syn.Error).Bold(true),
		},
		Text: fg(ui.TextFg),

		Selection: lipgloss.NewStyle().
			Background(lipgloss.Color(ui.SelectionBg)).
			Foreground(lipgloss.Color(ui.SelectionFg)),

		StatusBar: lipgloss.NewStyle().
			Background(lipgloss.Color(ui.StatusBg)).
			Foreground(lipgloss.Color(ui.StatusFg)),

		StatusAccent: lipgloss.NewStyle().
			Background(lipgloss.Color(ui.StatusBg)).
			Foreground(lipgloss.Color(ui.StatusAccent)).
			Bold(true),

		ScrollbarTrack: fg(ui.ScrollbarTrack),
		ScrollbarThumb: fg(ui.ScrollbarThumb),

		Error: lipgloss.NewStyle().
			Background(lipgloss.Color(ui.StatusBg)).
			Foreground(lipgloss.Color(ui.ErrorFg)).
			Bold(true),
	}
}

// DefaultStyles returns the styles of the default theme
func DefaultStyles() Styles {
	return NewStyles(config.DefaultTheme())
}

// Kind returns the style for a word kind.
func (s Styles) Kind(kind textview.Kind) lipgloss.Style {
	if style, ok := s.Kinds[kind]; ok {
		return style
	}
	return s.Text
}
