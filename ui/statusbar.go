package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// StatusBar represents the bottom status bar
type StatusBar struct {
	title       string
	encoding    string
	progress    int
	selected    int // Runes in the selection
	scrolling   bool
	forward     bool
	message     string // Temporary message to display
	messageType string // "info", "error"
	width       int
	ascii       bool
	styles      Styles
}

// NewStatusBar creates a new status bar
func NewStatusBar(styles Styles) *StatusBar {
	return &StatusBar{
		encoding: "UTF-8",
		styles:   styles,
	}
}

// SetTitle sets the book title
func (s *StatusBar) SetTitle(title string) {
	s.title = title
}

// SetEncoding sets the book encoding
func (s *StatusBar) SetEncoding(encoding string) {
	s.encoding = encoding
}

// SetProgress sets the reading position, 0 to 100
func (s *StatusBar) SetProgress(percent int) {
	s.progress = percent
}

// SetSelected sets the length of the selection in runes
func (s *StatusBar) SetSelected(n int) {
	s.selected = n
}

// SetScrolling shows the auto-scroll indicator
func (s *StatusBar) SetScrolling(forward, active bool) {
	s.forward = forward
	s.scrolling = active
}

// SetMessage sets a temporary message to display
func (s *StatusBar) SetMessage(message, msgType string) {
	s.message = message
	s.messageType = msgType
}

// ClearMessage clears the temporary message
func (s *StatusBar) ClearMessage() {
	s.message = ""
	s.messageType = ""
}

// Message returns the current message
func (s *StatusBar) Message() string {
	return s.message
}

// SetWidth sets the width of the status bar
func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

// SetASCII switches the indicators to plain ASCII
func (s *StatusBar) SetASCII(ascii bool) {
	s.ascii = ascii
}

// SetStyles updates the styles for runtime theme changes
func (s *StatusBar) SetStyles(styles Styles) {
	s.styles = styles
}

func (s *StatusBar) indicator() string {
	if !s.scrolling {
		return ""
	}
	switch {
	case s.ascii && s.forward:
		return "v "
	case s.ascii:
		return "^ "
	case s.forward:
		return "▼ "
	}
	return "▲ "
}

// View renders the status bar
func (s *StatusBar) View() string {
	sep := " │ "
	if s.ascii {
		sep = " | "
	}

	parts := []string{fmt.Sprintf("%d%%", s.progress), s.encoding}
	if s.selected > 0 {
		parts = append([]string{fmt.Sprintf("Sel %d", s.selected)}, parts...)
	}
	right := strings.Join(parts, sep) + " "

	indicator := s.indicator()
	title := s.title
	if title == "" {
		title = "[Untitled]"
	}
	room := s.width - runewidth.StringWidth(right) - runewidth.StringWidth(indicator) - 1
	title = " " + runewidth.Truncate(title, max(room, 0), "…")
	leftLen := runewidth.StringWidth(indicator) + runewidth.StringWidth(title)

	available := max(s.width-leftLen-runewidth.StringWidth(right), 0)

	var sb strings.Builder
	if indicator != "" {
		sb.WriteString(s.styles.StatusAccent.Render(indicator))
	}
	sb.WriteString(s.styles.StatusBar.Render(title))

	msgLen := runewidth.StringWidth(s.message)
	if s.message != "" && msgLen+4 <= available {
		leftPad := (available - msgLen) / 2
		rightPad := available - msgLen - leftPad
		sb.WriteString(s.styles.StatusBar.Render(strings.Repeat(" ", leftPad)))
		style := s.styles.StatusBar
		if s.messageType == "error" {
			style = s.styles.Error
		}
		sb.WriteString(style.Render(s.message))
		sb.WriteString(s.styles.StatusBar.Render(strings.Repeat(" ", rightPad)))
	} else {
		sb.WriteString(s.styles.StatusBar.Render(strings.Repeat(" ", available)))
	}

	sb.WriteString(s.styles.StatusBar.Render(right))
	return lipgloss.NewStyle().MaxWidth(s.width).Render(sb.String())
}
