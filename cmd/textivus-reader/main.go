package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/cornish/textivus-reader/book"
	"github.com/cornish/textivus-reader/config"
	"github.com/cornish/textivus-reader/logging"
	"github.com/cornish/textivus-reader/ui"
)

const version = "0.3.0"

type rootFlags struct {
	debug       bool
	logFilePath string
	ascii       bool
	theme       string
	logFile     io.Closer
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "textivus-reader [flags] FILE",
		Short: "Textivus Reader - a terminal book reader",
		Long: `Textivus Reader pages through plain text, Markdown and HTML books.
Drag with the mouse to select text; the selection is copied on release.
Hold the pointer at the top or bottom edge to keep selecting past the page.`,
		Example: `  textivus-reader moby-dick.txt
  textivus-reader --theme sepia README.md
  textivus-reader --debug --log-file /tmp/reader.log book.html`,
		Version: version,
		Args:    cobra.ExactArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Logging goes to a file so it cannot break the TUI
			closer, err := logging.Setup(flags.debug, flags.logFilePath)
			if err != nil {
				return fmt.Errorf("set up logging: %w", err)
			}
			flags.logFile = closer
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if flags.logFile != nil {
				if err := flags.logFile.Close(); err != nil {
					slog.Error("Failed to close log file", "error", err)
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), &flags, args[0])
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.Flags().BoolVarP(&flags.debug, "debug", "d", false, "Enable debug logging")
	cmd.Flags().StringVar(&flags.logFilePath, "log-file", "", "Path to debug log file (default: ~/.cache/textivus-reader/debug.log; only used with --debug)")
	cmd.Flags().BoolVar(&flags.ascii, "ascii", false, "Use ASCII characters for the status bar and scrollbar")
	cmd.Flags().StringVar(&flags.theme, "theme", "", "Color theme (default: the theme named in config.toml)")

	return cmd
}

func run(ctx context.Context, flags *rootFlags, path string) error {
	cfg, cfgErr := config.Load()
	var loadErr *config.ConfigLoadError
	if errors.As(cfgErr, &loadErr) {
		slog.Warn("Config ignored", "path", loadErr.FilePath, "error", loadErr.Err)
	} else if cfgErr != nil {
		return cfgErr
	}

	b, err := book.Load(path)
	if err != nil {
		return err
	}
	encodingName := "unknown"
	if b.Encoding != nil {
		encodingName = b.Encoding.Name
	}
	slog.Debug("Book loaded", "path", b.Path, "format", b.Format, "encoding", encodingName,
		"paragraphs", len(b.Model), "words", b.Words())

	caps := config.DetectCapabilities()
	ascii := flags.ascii || caps.ShouldUseASCII(cfg.Reader.AsciiMode)
	colorMode := caps.EffectiveColorMode(cfg.Reader.TrueColor)
	ui.SetColorMode(colorMode)
	slog.Debug("Terminal", "utf8", caps.UTF8Support, "color", colorMode, "ascii", ascii)

	theme := cfg.Theme.GetResolved()
	if flags.theme != "" {
		theme = config.LoadTheme(flags.theme)
	}

	keys := config.LoadKeybindings()
	for key, actions := range keys.FindConflicts() {
		slog.Warn("Conflicting key binding", "key", key, "actions", actions)
	}

	r := ui.NewReader(b, cfg, ui.Options{
		Keys:      keys,
		Theme:     &theme,
		ASCII:     ascii,
		Paragraph: cfg.Position(b.Path),
	})
	if loadErr != nil {
		r.SetMessage("Config error: "+loadErr.Err.Error(), "error")
	}

	p := tea.NewProgram(r, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run reader: %w", err)
	}

	// Parse errors mean the file on disk is the user's to fix
	if loadErr != nil {
		return nil
	}
	cfg.AddRecentBook(b.Path)
	cfg.SetPosition(b.Path, r.Position())
	if err := cfg.Save(); err != nil {
		slog.Warn("Failed to save config", "error", err)
	}
	return nil
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
