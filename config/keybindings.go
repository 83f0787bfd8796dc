package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/natefinch/atomic"
)

// KeyBinding represents a single action's key bindings
type KeyBinding struct {
	Primary   string `toml:"primary"`
	Alternate string `toml:"alternate,omitempty"`
}

// KeybindingsConfig holds all configurable keybindings
type KeybindingsConfig struct {
	Quit   KeyBinding `toml:"quit"`
	Reload KeyBinding `toml:"reload"`

	// Selection
	Copy  KeyBinding `toml:"copy"`
	Clear KeyBinding `toml:"clear"`

	// Navigation
	PageUp   KeyBinding `toml:"page_up"`
	PageDown KeyBinding `toml:"page_down"`
	LineUp   KeyBinding `toml:"line_up"`
	LineDown KeyBinding `toml:"line_down"`
	Top      KeyBinding `toml:"top"`
	Bottom   KeyBinding `toml:"bottom"`
}

// DefaultKeybindings returns the default keybinding configuration
func DefaultKeybindings() *KeybindingsConfig {
	return &KeybindingsConfig{
		Quit:   KeyBinding{Primary: "q", Alternate: "ctrl+q"},
		Reload: KeyBinding{Primary: "r", Alternate: "ctrl+r"},

		Copy:  KeyBinding{Primary: "ctrl+c", Alternate: "y"},
		Clear: KeyBinding{Primary: "esc"},

		PageUp:   KeyBinding{Primary: "pgup", Alternate: "b"},
		PageDown: KeyBinding{Primary: "pgdown", Alternate: " "},
		LineUp:   KeyBinding{Primary: "up", Alternate: "k"},
		LineDown: KeyBinding{Primary: "down", Alternate: "j"},
		Top:      KeyBinding{Primary: "home", Alternate: "g"},
		Bottom:   KeyBinding{Primary: "end", Alternate: "G"},
	}
}

// ActionNames maps action names for display
var ActionNames = map[string]string{
	"quit":      "Quit",
	"reload":    "Reload Book",
	"copy":      "Copy Selection",
	"clear":     "Clear Selection",
	"page_up":   "Page Up",
	"page_down": "Page Down",
	"line_up":   "Line Up",
	"line_down": "Line Down",
	"top":       "Beginning of Book",
	"bottom":    "End of Book",
}

// KeybindingsPath returns the path to the keybindings file
func KeybindingsPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "keybindings.toml"), nil
}

// LoadKeybindings loads keybindings from disk, returning defaults if not found
func LoadKeybindings() *KeybindingsConfig {
	path, err := KeybindingsPath()
	if err != nil {
		return DefaultKeybindings()
	}
	return LoadKeybindingsFrom(path)
}

// LoadKeybindingsFrom loads keybindings from path. Actions missing from the
// file keep their defaults.
func LoadKeybindingsFrom(path string) *KeybindingsConfig {
	kb := DefaultKeybindings()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return kb
	}

	if _, err := toml.DecodeFile(path, kb); err != nil {
		return DefaultKeybindings()
	}

	return kb
}

// Save writes keybindings to disk
func (kb *KeybindingsConfig) Save() error {
	path, err := KeybindingsPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.WriteString("# Textivus Reader keybindings\n")
	buf.WriteString("# Format: primary = \"key\", alternate = \"key\" (optional)\n")
	buf.WriteString("# Examples: \"ctrl+c\", \"pgdown\", \"home\", \"g\"\n\n")
	if err := toml.NewEncoder(&buf).Encode(kb); err != nil {
		return err
	}

	return atomic.WriteFile(path, &buf)
}

// binding returns a pointer to the named action's binding, nil if unknown
func (kb *KeybindingsConfig) binding(action string) *KeyBinding {
	switch action {
	case "quit":
		return &kb.Quit
	case "reload":
		return &kb.Reload
	case "copy":
		return &kb.Copy
	case "clear":
		return &kb.Clear
	case "page_up":
		return &kb.PageUp
	case "page_down":
		return &kb.PageDown
	case "line_up":
		return &kb.LineUp
	case "line_down":
		return &kb.LineDown
	case "top":
		return &kb.Top
	case "bottom":
		return &kb.Bottom
	}
	return nil
}

// GetBinding returns the KeyBinding for a given action name
func (kb *KeybindingsConfig) GetBinding(action string) KeyBinding {
	if b := kb.binding(action); b != nil {
		return *b
	}
	return KeyBinding{}
}

// SetBinding sets the KeyBinding for a given action name
func (kb *KeybindingsConfig) SetBinding(action string, binding KeyBinding) {
	if b := kb.binding(action); b != nil {
		*b = binding
	}
}

// Action returns the action bound to key, "" if none
func (kb *KeybindingsConfig) Action(key string) string {
	for _, action := range AllActions() {
		if kb.GetBinding(action).Matches(key) {
			return action
		}
	}
	return ""
}

// AllActions returns a list of all action names in display order
func AllActions() []string {
	return []string{
		"quit", "reload",
		"copy", "clear",
		"page_up", "page_down", "line_up", "line_down", "top", "bottom",
	}
}

// Matches checks if a key string matches this binding (primary or alternate).
// Single-character keys are case sensitive.
func (b KeyBinding) Matches(key string) bool {
	return keyEqual(b.Primary, key) || keyEqual(b.Alternate, key)
}

func keyEqual(bound, key string) bool {
	if bound == "" {
		return false
	}
	if len(bound) == 1 {
		return bound == key
	}
	return strings.EqualFold(bound, key)
}

// DisplayString returns a human-readable string for the binding
func (b KeyBinding) DisplayString() string {
	if b.Primary == "" && b.Alternate == "" {
		return "(none)"
	}
	if b.Alternate == "" {
		return FormatKeyForDisplay(b.Primary)
	}
	return FormatKeyForDisplay(b.Primary) + " / " + FormatKeyForDisplay(b.Alternate)
}

// FormatKeyForDisplay converts a key string to a more readable format
func FormatKeyForDisplay(key string) string {
	switch key {
	case "":
		return ""
	case " ":
		return "Space"
	}
	replacer := strings.NewReplacer(
		"ctrl+", "Ctrl+",
		"alt+", "Alt+",
		"shift+", "Shift+",
		"pgup", "PgUp",
		"pgdown", "PgDn",
		"home", "Home",
		"end", "End",
		"esc", "Esc",
		"up", "Up",
		"down", "Down",
	)
	key = replacer.Replace(key)
	// Ctrl+c reads better as Ctrl+C
	if i := strings.LastIndex(key, "+"); i >= 0 && len(key)-i == 2 {
		key = key[:i+1] + strings.ToUpper(key[i+1:])
	}
	return key
}

// FindConflicts checks for key conflicts and returns a map of conflicting actions
func (kb *KeybindingsConfig) FindConflicts() map[string][]string {
	conflicts := make(map[string][]string)
	keyToActions := make(map[string][]string)

	for _, action := range AllActions() {
		binding := kb.GetBinding(action)
		for _, key := range []string{binding.Primary, binding.Alternate} {
			if key == "" {
				continue
			}
			if len(key) > 1 {
				key = strings.ToLower(key)
			}
			keyToActions[key] = append(keyToActions[key], action)
		}
	}

	for key, actions := range keyToActions {
		if len(actions) > 1 {
			conflicts[key] = actions
		}
	}

	return conflicts
}
