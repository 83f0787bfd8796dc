// Package clipboard copies selected text out of the reader.
package clipboard

import (
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// Method tells how a copy reached the clipboard.
type Method int

const (
	MethodNone   Method = iota // Nothing copied
	MethodSystem               // Native clipboard tool
	MethodOSC52                // Terminal escape sequence
)

func (m Method) String() string {
	switch m {
	case MethodSystem:
		return "system"
	case MethodOSC52:
		return "OSC52"
	}
	return "none"
}

// Clipboard provides clipboard access with OSC52 support for SSH.
type Clipboard struct {
	output io.Writer // Receives OSC52 sequences (typically os.Stdout)
	isSSH  bool
	tmux   bool
	screen bool

	writeSystem func(string) error
	last        string
}

// New creates a new Clipboard instance.
func New(output io.Writer) *Clipboard {
	if output == nil {
		output = os.Stdout
	}
	return &Clipboard{
		output:      output,
		isSSH:       isSSHSession(),
		tmux:        os.Getenv("TMUX") != "",
		screen:      os.Getenv("STY") != "",
		writeSystem: clipboard.WriteAll,
	}
}

// isSSHSession detects if we're running in an SSH session.
func isSSHSession() bool {
	for _, v := range []string{"SSH_TTY", "SSH_CLIENT", "SSH_CONNECTION"} {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// Copy copies text to the clipboard.
// In SSH sessions, it uses OSC52 escape sequences.
// Locally, it tries the system clipboard first, then falls back to OSC52.
func (c *Clipboard) Copy(text string) (Method, error) {
	if text == "" {
		return MethodNone, nil
	}
	c.last = text

	if !c.isSSH {
		if err := c.writeSystem(text); err == nil {
			return MethodSystem, nil
		}
	}

	if err := c.copyOSC52(text); err != nil {
		return MethodNone, fmt.Errorf("copy via OSC52: %w", err)
	}
	return MethodOSC52, nil
}

// copyOSC52 writes the OSC52 sequence, wrapped for tmux or screen.
func (c *Clipboard) copyOSC52(text string) error {
	seq := osc52.New(text)
	switch {
	case c.tmux:
		seq = seq.Tmux()
	case c.screen:
		seq = seq.Screen()
	}
	_, err := seq.WriteTo(c.output)
	return err
}

// Last returns the most recently copied text.
func (c *Clipboard) Last() string {
	return c.last
}

// IsSSH returns true if we're in an SSH session.
func (c *Clipboard) IsSSH() bool {
	return c.isSSH
}
