// Package logging configures the process-wide slog logger. The terminal
// belongs to the reader, so records go to a file or nowhere.
package logging

import (
	"cmp"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DefaultLogPath returns ~/.cache/textivus-reader/debug.log.
func DefaultLogPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "textivus-reader", "debug.log")
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup installs the default logger. Without debug every record is
// discarded; with debug, text records at debug level are appended to path
// (DefaultLogPath when empty). The returned closer flushes the log file.
func Setup(debug bool, path string) (io.Closer, error) {
	if !debug {
		slog.SetDefault(slog.New(slog.DiscardHandler))
		return nopCloser{}, nil
	}

	path = cmp.Or(strings.TrimSpace(path), DefaultLogPath())
	f, err := NewRotatingFile(path)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	slog.Debug("debug logging enabled", "path", path)
	return f, nil
}
