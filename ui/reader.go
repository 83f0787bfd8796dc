// Package ui hosts the reader in a bubbletea program: it lays the book out
// on the terminal grid, turns mouse gestures into selection calls and runs
// the selection's auto-scroll timer on the event loop.
package ui

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cornish/textivus-reader/book"
	"github.com/cornish/textivus-reader/clipboard"
	"github.com/cornish/textivus-reader/config"
	"github.com/cornish/textivus-reader/layout"
	"github.com/cornish/textivus-reader/textview"
)

// Lines moved per mouse wheel notch
const wheelLines = 3

// Copier puts text on a clipboard.
type Copier interface {
	Copy(text string) (clipboard.Method, error)
}

// Options configures a Reader.
type Options struct {
	Keys      *config.KeybindingsConfig // nil = defaults
	Clipboard Copier                    // nil = system clipboard with OSC52 fallback
	Theme     *config.Theme             // nil = theme named in the config
	ASCII     bool
	Paragraph int // Paragraph to open at
}

// Reader is the bubbletea model of the reading screen.
type Reader struct {
	book      *book.Book
	cfg       *config.Config
	keys      *config.KeybindingsConfig
	clipboard Copier

	view      *layout.View
	selection *textview.Selection
	scheduler *Scheduler

	statusbar *StatusBar
	scrollbar *Scrollbar
	styles    Styles

	width, height int
	lines         []string // Rendered page rows
	dirty         bool

	mouseDown bool
	dragged   bool
	quitting  bool
}

// NewReader creates the reading screen for a book.
func NewReader(b *book.Book, cfg *config.Config, opts Options) *Reader {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	keys := opts.Keys
	if keys == nil {
		keys = config.DefaultKeybindings()
	}
	var copier Copier = opts.Clipboard
	if copier == nil {
		copier = clipboard.New(nil)
	}
	var theme config.Theme
	if opts.Theme != nil {
		theme = *opts.Theme
	} else {
		theme = cfg.Theme.GetResolved()
	}
	styles := NewStyles(theme)
	rc := cfg.Reader

	r := &Reader{
		book:      b,
		cfg:       cfg,
		keys:      keys,
		clipboard: copier,
		scheduler: NewScheduler(),
		statusbar: NewStatusBar(styles),
		scrollbar: NewScrollbar(styles),
		styles:    styles,
	}
	r.view = layout.New(b.Model,
		layout.WithCellSize(rc.CellWidth, rc.CellHeight),
		layout.WithIndent(rc.Indent),
		layout.WithParagraphSpacing(rc.ParagraphSpacing),
	)
	r.selection = textview.NewSelection(r.view, host{Scheduler: r.scheduler, reader: r},
		textview.WithSelectionDistance(rc.SelectionDistance),
		textview.WithTriggerMargin(rc.TriggerMargin),
		textview.WithScrollPeriod(rc.ScrollPeriod()),
		textview.WithScrollLines(rc.ScrollLines),
		textview.WithLogger(slog.Default().With("component", "selection")),
	)

	r.statusbar.SetTitle(b.Title)
	if b.Encoding != nil {
		r.statusbar.SetEncoding(b.Encoding.Name)
	}
	r.statusbar.SetASCII(opts.ASCII)
	r.scrollbar.SetASCII(opts.ASCII)
	r.scrollbar.SetEnabled(rc.Scrollbar)

	r.resize(80, 24)
	r.view.GotoParagraph(opts.Paragraph)
	r.refresh()
	return r
}

// host adapts the reader to textview.Application.
type host struct {
	*Scheduler
	reader *Reader
}

func (h host) Widget() textview.Widget {
	return pageWidget{h.reader}
}

type pageWidget struct {
	r *Reader
}

func (w pageWidget) Reset() {
	w.r.view.PreparePaintInfo()
}

func (w pageWidget) Repaint() {
	w.r.dirty = true
}

// SetMessage shows a message in the status bar until the next key or click.
func (r *Reader) SetMessage(message, msgType string) {
	r.statusbar.SetMessage(message, msgType)
}

// Position returns the paragraph at the top of the page.
func (r *Reader) Position() int {
	return r.view.TopParagraph()
}

// Init implements tea.Model
func (r *Reader) Init() tea.Cmd {
	return tea.SetWindowTitle(r.book.Title)
}

// Update implements tea.Model
func (r *Reader) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		cmd = r.handleKey(msg)

	case tea.MouseMsg:
		r.handleMouse(msg)

	case TimerTickMsg:
		r.scheduler.Handle(msg)
	}

	r.syncStatus()
	return r, tea.Batch(cmd, r.scheduler.Drain())
}

func (r *Reader) resize(width, height int) {
	r.width = max(width, 1)
	r.height = max(height, 2)

	// One row for the status bar
	rows := r.height - 1
	r.scrollbar.SetHeight(rows)
	r.view.SetSize(r.width-r.scrollbar.Width(), rows)
	r.statusbar.SetWidth(r.width)
	r.refresh()
}

// refresh rebuilds the page after the view moved.
func (r *Reader) refresh() {
	r.view.PreparePaintInfo()
	r.dirty = true
}

func (r *Reader) scroll(forward bool, mode textview.ScrollingMode, value int) {
	r.view.ScrollPage(forward, mode, value)
	r.refresh()
}

func (r *Reader) handleKey(msg tea.KeyMsg) tea.Cmd {
	r.statusbar.ClearMessage()

	switch r.keys.Action(msg.String()) {
	case "quit":
		r.selection.Clear()
		r.quitting = true
		return tea.Quit
	case "reload":
		r.reload()
	case "copy":
		r.copySelection()
	case "clear":
		if r.selection.Clear() {
			r.dirty = true
		}
	case "page_up":
		r.scroll(false, textview.KeepLines, 1)
	case "page_down":
		r.scroll(true, textview.KeepLines, 1)
	case "line_up":
		r.scroll(false, textview.ScrollLines, 1)
	case "line_down":
		r.scroll(true, textview.ScrollLines, 1)
	case "top":
		r.view.SetTopLine(0)
		r.refresh()
	case "bottom":
		r.view.SetTopLine(r.view.TotalLines())
		r.refresh()
	}
	return nil
}

func (r *Reader) handleMouse(msg tea.MouseMsg) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		r.scroll(false, textview.ScrollLines, wheelLines)

	case msg.Button == tea.MouseButtonWheelDown:
		r.scroll(true, textview.ScrollLines, wheelLines)

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		r.statusbar.ClearMessage()
		rows := r.view.Rows()
		if msg.Y >= rows {
			return
		}
		if r.scrollbar.IsEnabled() && msg.X >= r.view.Cols() {
			line := r.scrollbar.RowToLine(msg.Y, rows, r.view.TotalLines())
			r.view.SetTopLine(line - rows/2)
			r.refresh()
			return
		}
		r.mouseDown = true
		r.dragged = false
		x, y := r.view.CellToPixel(msg.X, msg.Y)
		had := !r.selection.IsEmpty()
		if r.selection.Start(x, y) || had {
			r.dirty = true
		}

	case msg.Action == tea.MouseActionMotion && r.mouseDown:
		r.dragged = true
		x, y := r.view.CellToPixel(msg.X, msg.Y)
		if r.selection.ExpandTo(x, y) {
			r.dirty = true
		}

	case msg.Action == tea.MouseActionRelease && r.mouseDown:
		r.mouseDown = false
		r.selection.Stop()
		if !r.dragged {
			// A plain click only dismisses.
			r.selection.Clear()
			r.dirty = true
			return
		}
		if r.cfg.Reader.CopyOnRelease {
			r.copySelection()
		}
	}
}

// reload reads the book again from disk and keeps the reading position.
// The selection refers to the old text, so it is dropped.
func (r *Reader) reload() {
	if r.book.Path == "" {
		return
	}
	b, err := book.Load(r.book.Path)
	if err != nil {
		slog.Warn("reload failed", "path", r.book.Path, "error", err)
		r.statusbar.SetMessage("Reload failed: "+err.Error(), "error")
		return
	}

	top := r.view.TopParagraph()
	r.selection.Clear()
	r.book = b
	r.view.SetModel(b.Model)
	r.view.GotoParagraph(top)
	r.refresh()

	r.statusbar.SetTitle(b.Title)
	if b.Encoding != nil {
		r.statusbar.SetEncoding(b.Encoding.Name)
	}
	slog.Debug("book reloaded", "path", b.Path, "paragraphs", len(b.Model))
	r.statusbar.SetMessage("Reloaded", "info")
}

func (r *Reader) copySelection() {
	text := r.selection.Text()
	if text == "" {
		return
	}
	n := utf8.RuneCountInString(text)
	method, err := r.clipboard.Copy(text)
	if err != nil {
		slog.Warn("copy failed", "error", err)
		r.statusbar.SetMessage("Copy failed: "+err.Error(), "error")
		return
	}
	slog.Debug("selection copied", "runes", n, "method", method)
	r.statusbar.SetMessage(fmt.Sprintf("Copied %d characters (%s)", n, method), "info")
}

func (r *Reader) syncStatus() {
	r.statusbar.SetProgress(r.view.Progress())
	r.statusbar.SetSelected(utf8.RuneCountInString(r.selection.Text()))
	r.statusbar.SetScrolling(r.selection.Scrolling())
}

// View implements tea.Model
func (r *Reader) View() string {
	if r.quitting {
		return ""
	}
	if r.dirty || r.lines == nil {
		r.lines = renderPage(r.view, r.selection, r.styles)
		r.dirty = false
	}
	bar := r.scrollbar.Render(r.view.TopLine(), r.view.Rows(), r.view.TotalLines())

	var sb strings.Builder
	for i, line := range r.lines {
		sb.WriteString(line)
		if i < len(bar) {
			sb.WriteString(bar[i])
		}
		sb.WriteString("\n")
	}
	sb.WriteString(r.statusbar.View())
	return sb.String()
}
