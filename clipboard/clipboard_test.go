package clipboard

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func newTest(out *bytes.Buffer, systemErr error) (*Clipboard, *[]string) {
	var calls []string
	c := &Clipboard{
		output: out,
		writeSystem: func(s string) error {
			calls = append(calls, s)
			return systemErr
		},
	}
	return c, &calls
}

func TestCopyPrefersSystemClipboard(t *testing.T) {
	var out bytes.Buffer
	c, calls := newTest(&out, nil)

	method, err := c.Copy("hello")
	if err != nil {
		t.Fatalf("Copy() error = %v", err)
	}
	if method != MethodSystem {
		t.Errorf("Copy() method = %v, want system", method)
	}
	if len(*calls) != 1 || (*calls)[0] != "hello" {
		t.Errorf("system clipboard calls = %q, want [hello]", *calls)
	}
	if out.Len() != 0 {
		t.Errorf("output = %q, want nothing", out.String())
	}
	if c.Last() != "hello" {
		t.Errorf("Last() = %q, want hello", c.Last())
	}
}

func TestCopyFallsBackToOSC52(t *testing.T) {
	var out bytes.Buffer
	c, _ := newTest(&out, errors.New("no xclip"))

	method, err := c.Copy("hello")
	if err != nil {
		t.Fatalf("Copy() error = %v", err)
	}
	if method != MethodOSC52 {
		t.Errorf("Copy() method = %v, want OSC52", method)
	}
	encoded := base64.StdEncoding.EncodeToString([]byte("hello"))
	if !strings.Contains(out.String(), encoded) {
		t.Errorf("output = %q, want it to contain %q", out.String(), encoded)
	}
	if !strings.HasPrefix(out.String(), "\x1b]52;") {
		t.Errorf("output = %q, want an OSC52 sequence", out.String())
	}
}

func TestCopyOverSSHSkipsSystemClipboard(t *testing.T) {
	var out bytes.Buffer
	c, calls := newTest(&out, nil)
	c.isSSH = true

	method, err := c.Copy("remote")
	if err != nil {
		t.Fatalf("Copy() error = %v", err)
	}
	if method != MethodOSC52 {
		t.Errorf("Copy() method = %v, want OSC52", method)
	}
	if len(*calls) != 0 {
		t.Errorf("system clipboard called %d times over SSH", len(*calls))
	}
}

func TestCopyInsideTmux(t *testing.T) {
	var out bytes.Buffer
	c, _ := newTest(&out, nil)
	c.isSSH = true
	c.tmux = true

	if _, err := c.Copy("x"); err != nil {
		t.Fatalf("Copy() error = %v", err)
	}
	if !strings.HasPrefix(out.String(), "\x1bPtmux;") {
		t.Errorf("output = %q, want tmux passthrough", out.String())
	}
}

func TestCopyEmpty(t *testing.T) {
	var out bytes.Buffer
	c, calls := newTest(&out, nil)

	method, err := c.Copy("")
	if err != nil || method != MethodNone {
		t.Errorf("Copy(\"\") = %v, %v, want none, nil", method, err)
	}
	if len(*calls) != 0 || out.Len() != 0 {
		t.Error("Copy(\"\") should not touch any clipboard")
	}
}

func TestMethodString(t *testing.T) {
	tests := []struct {
		m    Method
		want string
	}{
		{MethodNone, "none"},
		{MethodSystem, "system"},
		{MethodOSC52, "OSC52"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("Method(%d).String() = %q, want %q", tt.m, got, tt.want)
		}
	}
}
