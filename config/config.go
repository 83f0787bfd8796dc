package config

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/natefinch/atomic"
)

const configDirName = "textivus-reader"

// Config holds the reader configuration
type Config struct {
	Reader      ReaderConfig   `toml:"reader"`
	Theme       ThemeConfig    `toml:"theme"`
	RecentBooks []string       `toml:"recent_books,omitempty"` // Recently opened books (max 10)
	Positions   map[string]int `toml:"positions,omitempty"`    // Top paragraph per book path
}

// MaxRecentBooks is the maximum number of recent books to track
const MaxRecentBooks = 10

// ReaderConfig holds layout and selection settings.
// Pixel values are in the reader's virtual pixels; a terminal cell is
// CellWidth by CellHeight pixels.
type ReaderConfig struct {
	CellWidth         int   `toml:"cell_width"`
	CellHeight        int   `toml:"cell_height"`
	SelectionDistance int   `toml:"selection_distance"` // Hit-test radius
	TriggerMargin     int   `toml:"trigger_margin"`     // Auto-scroll band height
	ScrollPeriodMS    int   `toml:"scroll_period_ms"`
	ScrollLines       int   `toml:"scroll_lines"` // Lines per auto-scroll tick
	ParagraphSpacing  bool  `toml:"paragraph_spacing"`
	Indent            int   `toml:"indent"`
	CopyOnRelease     bool  `toml:"copy_on_release"`
	Scrollbar         bool  `toml:"scrollbar"`
	TrueColor         *bool `toml:"true_color"` // nil = auto-detect
	AsciiMode         *bool `toml:"ascii_mode"` // nil = auto-detect, true/false = override
}

// ScrollPeriod returns the auto-scroll tick period
func (r ReaderConfig) ScrollPeriod() time.Duration {
	return time.Duration(r.ScrollPeriodMS) * time.Millisecond
}

// ThemeConfig holds the theme reference in the main config
// Just references a theme by name - the actual colors come from theme files
type ThemeConfig struct {
	Name string `toml:"name"` // Theme name (built-in or from themes/ directory)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Reader: ReaderConfig{
			CellWidth:         8,
			CellHeight:        16,
			SelectionDistance: 10,
			TriggerMargin:     10,
			ScrollPeriodMS:    400,
			ScrollLines:       1,
			ParagraphSpacing:  true,
			Indent:            2,
			CopyOnRelease:     true,
			Scrollbar:         true,
		},
		Theme: ThemeConfig{
			Name: "default",
		},
	}
}

// Validate replaces out-of-range values with defaults and returns the TOML
// keys it reset.
func (c *Config) Validate() []string {
	def := DefaultConfig().Reader
	var fixed []string
	check := func(key string, v *int, ok bool, fallback int) {
		if !ok {
			*v = fallback
			fixed = append(fixed, key)
		}
	}
	r := &c.Reader
	check("cell_width", &r.CellWidth, r.CellWidth > 0, def.CellWidth)
	check("cell_height", &r.CellHeight, r.CellHeight > 0, def.CellHeight)
	check("selection_distance", &r.SelectionDistance, r.SelectionDistance >= 0, def.SelectionDistance)
	check("trigger_margin", &r.TriggerMargin, r.TriggerMargin >= 0 && r.TriggerMargin < r.CellHeight*2, def.TriggerMargin)
	check("scroll_period_ms", &r.ScrollPeriodMS, r.ScrollPeriodMS >= 16, def.ScrollPeriodMS)
	check("scroll_lines", &r.ScrollLines, r.ScrollLines > 0, def.ScrollLines)
	check("indent", &r.Indent, r.Indent >= 0 && r.Indent <= 16, def.Indent)
	if c.Theme.Name == "" {
		c.Theme.Name = "default"
		fixed = append(fixed, "theme.name")
	}
	return fixed
}

// AddRecentBook adds a book to the recent books list
func (c *Config) AddRecentBook(path string) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	// Remove if already in list (will re-add at top)
	newList := make([]string, 0, MaxRecentBooks)
	for _, f := range c.RecentBooks {
		if f != absPath {
			newList = append(newList, f)
		}
	}

	c.RecentBooks = append([]string{absPath}, newList...)
	if len(c.RecentBooks) > MaxRecentBooks {
		c.RecentBooks = c.RecentBooks[:MaxRecentBooks]
	}

	// Forget positions of books that fell off the list
	for p := range c.Positions {
		if !c.isRecent(p) {
			delete(c.Positions, p)
		}
	}
}

func (c *Config) isRecent(path string) bool {
	for _, f := range c.RecentBooks {
		if f == path {
			return true
		}
	}
	return false
}

// SetPosition remembers the top paragraph of a book
func (c *Config) SetPosition(path string, paragraph int) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	if c.Positions == nil {
		c.Positions = make(map[string]int)
	}
	c.Positions[absPath] = paragraph
}

// Position returns the remembered top paragraph of a book, 0 if unknown
func (c *Config) Position(path string) int {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	return c.Positions[absPath]
}

func configDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, configDirName), nil
}

// ConfigPath returns the path to the config file
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ThemesDir returns the path to the user themes directory
func ThemesDir() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "themes"), nil
}

// ConfigLoadError holds details about a config loading error
type ConfigLoadError struct {
	FilePath string
	Err      error
}

func (e *ConfigLoadError) Error() string {
	return e.Err.Error()
}

func (e *ConfigLoadError) Unwrap() error {
	return e.Err
}

// Load reads the configuration from the default path
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil // Return defaults on error
	}
	return LoadFrom(path)
}

// LoadFrom reads the configuration from path.
// Returns default config if the file doesn't exist.
// Returns ConfigLoadError if the file exists but has parse errors.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return DefaultConfig(), &ConfigLoadError{FilePath: path, Err: err}
	}

	if fixed := cfg.Validate(); len(fixed) > 0 {
		slog.Warn("config values out of range, using defaults", "path", path, "keys", fixed)
	}
	return cfg, nil
}

// Save writes the configuration to the default path
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration to path
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("# Textivus Reader configuration\n\n")
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	// Readers never see a half-written file
	return atomic.WriteFile(path, &buf)
}

// GetResolved loads and returns the complete theme
func (t *ThemeConfig) GetResolved() Theme {
	return LoadTheme(t.Name)
}
