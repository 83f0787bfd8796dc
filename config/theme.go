package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Theme holds complete color theme settings
// This is the format for theme TOML files in ~/.config/textivus-reader/themes/
type Theme struct {
	// Metadata
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Author      string `toml:"author"`

	// UI Colors
	UI UIColors `toml:"ui"`

	// Code token colors
	Syntax SyntaxColors `toml:"syntax"`
}

// UIColors holds page and chrome colors
type UIColors struct {
	TextFg         string `toml:"text_fg"`
	HeadingFg      string `toml:"heading_fg"`
	EmphasisFg     string `toml:"emphasis_fg"`
	LinkFg         string `toml:"link_fg"`
	CodeFg         string `toml:"code_fg"`
	SelectionBg    string `toml:"selection_bg"`
	SelectionFg    string `toml:"selection_fg"`
	StatusBg       string `toml:"status_bg"`
	StatusFg       string `toml:"status_fg"`
	StatusAccent   string `toml:"status_accent"`
	ScrollbarTrack string `toml:"scrollbar_track"`
	ScrollbarThumb string `toml:"scrollbar_thumb"`
	ErrorFg        string `toml:"error_fg"`
}

// SyntaxColors holds code token color settings
type SyntaxColors struct {
	Keyword  string `toml:"keyword"`
	String   string `toml:"string"`
	Comment  string `toml:"comment"`
	Number   string `toml:"number"`
	Operator string `toml:"operator"`
	Function string `toml:"function"`
	Type     string `toml:"type"`
	Error    string `toml:"error"`
}

// Built-in themes
var builtinThemes = map[string]Theme{
	"default": {
		Name:        "default",
		Description: "Classic DOS style - blue chrome with cyan highlights",
		Author:      "Textivus",
		UI: UIColors{
			TextFg:         "7",  // Light gray
			HeadingFg:      "15", // Bright white
			EmphasisFg:     "11", // Bright yellow
			LinkFg:         "14", // Bright cyan
			CodeFg:         "10", // Bright green
			SelectionBg:    "6",  // Cyan
			SelectionFg:    "0",  // Black
			StatusBg:       "4",  // Dark blue
			StatusFg:       "15", // Bright white
			StatusAccent:   "14", // Bright cyan
			ScrollbarTrack: "8",  // Gray
			ScrollbarThumb: "15", // Bright white
			ErrorFg:        "9",  // Bright red
		},
		Syntax: SyntaxColors{
			Keyword:  "14", // Bright cyan
			String:   "10", // Bright green
			Comment:  "8",  // Gray
			Number:   "11", // Bright yellow
			Operator: "13", // Bright magenta
			Function: "12", // Bright blue
			Type:     "11", // Bright yellow
			Error:    "9",  // Bright red
		},
	},
	"dark": {
		Name:        "dark",
		Description: "Modern dark theme with muted colors",
		Author:      "Textivus",
		UI: UIColors{
			TextFg:         "252", // Light gray
			HeadingFg:      "231", // White
			EmphasisFg:     "222", // Yellow
			LinkFg:         "75",  // Light blue
			CodeFg:         "114", // Green
			SelectionBg:    "24",  // Dark cyan
			SelectionFg:    "15",  // Bright white
			StatusBg:       "236", // Dark gray
			StatusFg:       "252", // Light gray
			StatusAccent:   "43",  // Teal
			ScrollbarTrack: "238", // Darker gray
			ScrollbarThumb: "245", // Medium gray
			ErrorFg:        "203", // Soft red
		},
		Syntax: SyntaxColors{
			Keyword:  "176", // Purple
			String:   "114", // Green
			Comment:  "245", // Gray
			Number:   "215", // Orange
			Operator: "80",  // Cyan
			Function: "75",  // Light blue
			Type:     "222", // Yellow
			Error:    "203", // Soft red
		},
	},
	"light": {
		Name:        "light",
		Description: "Light theme for bright environments",
		Author:      "Textivus",
		UI: UIColors{
			TextFg:         "235", // Dark gray
			HeadingFg:      "16",  // Black
			EmphasisFg:     "130", // Brown
			LinkFg:         "26",  // Blue
			CodeFg:         "28",  // Green
			SelectionBg:    "153", // Light blue
			SelectionFg:    "0",   // Black
			StatusBg:       "254", // Light gray
			StatusFg:       "235", // Dark gray
			StatusAccent:   "26",  // Blue
			ScrollbarTrack: "252", // Light gray
			ScrollbarThumb: "240", // Gray
			ErrorFg:        "160", // Red
		},
		Syntax: SyntaxColors{
			Keyword:  "26",  // Blue
			String:   "28",  // Green
			Comment:  "245", // Gray
			Number:   "166", // Orange
			Operator: "90",  // Magenta
			Function: "26",  // Blue
			Type:     "30",  // Teal
			Error:    "160", // Red
		},
	},
	"sepia": {
		Name:        "sepia",
		Description: "Warm paper tones for long reading sessions",
		Author:      "Textivus",
		UI: UIColors{
			TextFg:         "#5b4636",
			HeadingFg:      "#3b2a1e",
			EmphasisFg:     "#8a4b2a",
			LinkFg:         "#2f5d8a",
			CodeFg:         "#4d6b3c",
			SelectionBg:    "#e0c9a6",
			SelectionFg:    "#3b2a1e",
			StatusBg:       "#d8c3a5",
			StatusFg:       "#3b2a1e",
			StatusAccent:   "#8a4b2a",
			ScrollbarTrack: "#e8dcc8",
			ScrollbarThumb: "#a08c72",
			ErrorFg:        "#b22222",
		},
		Syntax: SyntaxColors{
			Keyword:  "#8a4b2a",
			String:   "#4d6b3c",
			Comment:  "#a08c72",
			Number:   "#b5651d",
			Operator: "#6b4f7a",
			Function: "#2f5d8a",
			Type:     "#7a5c2e",
			Error:    "#b22222",
		},
	},
}

// DefaultTheme returns the default theme
func DefaultTheme() Theme {
	return builtinThemes["default"]
}

// LoadTheme loads a theme by name
// Checks user themes directory first, then falls back to built-in themes
func LoadTheme(name string) Theme {
	if name == "" {
		return DefaultTheme()
	}

	// Try loading from user themes directory
	dir, err := ThemesDir()
	if err == nil {
		if theme, err := LoadThemeFile(filepath.Join(dir, name+".toml")); err == nil {
			return theme
		}
	}

	if builtin, ok := builtinThemes[name]; ok {
		return builtin
	}

	return DefaultTheme()
}

// LoadThemeFile reads a theme file, filling missing colors from the
// default theme
func LoadThemeFile(path string) (Theme, error) {
	var theme Theme
	if _, err := toml.DecodeFile(path, &theme); err != nil {
		return Theme{}, err
	}
	if theme.Name == "" {
		theme.Name = strings.TrimSuffix(filepath.Base(path), ".toml")
	}
	return mergeWithDefault(theme), nil
}

// mergeWithDefault fills in any missing theme values with defaults
func mergeWithDefault(theme Theme) Theme {
	def := DefaultTheme()
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}

	fill(&theme.UI.TextFg, def.UI.TextFg)
	fill(&theme.UI.HeadingFg, def.UI.HeadingFg)
	fill(&theme.UI.EmphasisFg, def.UI.EmphasisFg)
	fill(&theme.UI.LinkFg, def.UI.LinkFg)
	fill(&theme.UI.CodeFg, def.UI.CodeFg)
	fill(&theme.UI.SelectionBg, def.UI.SelectionBg)
	fill(&theme.UI.SelectionFg, def.UI.SelectionFg)
	fill(&theme.UI.StatusBg, def.UI.StatusBg)
	fill(&theme.UI.StatusFg, def.UI.StatusFg)
	fill(&theme.UI.StatusAccent, def.UI.StatusAccent)
	fill(&theme.UI.ScrollbarTrack, def.UI.ScrollbarTrack)
	fill(&theme.UI.ScrollbarThumb, def.UI.ScrollbarThumb)
	fill(&theme.UI.ErrorFg, def.UI.ErrorFg)

	fill(&theme.Syntax.Keyword, def.Syntax.Keyword)
	fill(&theme.Syntax.String, def.Syntax.String)
	fill(&theme.Syntax.Comment, def.Syntax.Comment)
	fill(&theme.Syntax.Number, def.Syntax.Number)
	fill(&theme.Syntax.Operator, def.Syntax.Operator)
	fill(&theme.Syntax.Function, def.Syntax.Function)
	fill(&theme.Syntax.Type, def.Syntax.Type)
	fill(&theme.Syntax.Error, def.Syntax.Error)

	return theme
}

// ThemeNames returns the list of built-in theme names
func ThemeNames() []string {
	return []string{"default", "dark", "light", "sepia"}
}

// ListUserThemes returns a list of user-defined theme names
func ListUserThemes() []string {
	themesDir, err := ThemesDir()
	if err != nil {
		return nil
	}

	entries, err := os.ReadDir(themesDir)
	if err != nil {
		return nil
	}

	var themes []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if filepath.Ext(name) == ".toml" {
			themes = append(themes, strings.TrimSuffix(name, ".toml"))
		}
	}
	return themes
}
