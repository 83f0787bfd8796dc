package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltinThemesComplete(t *testing.T) {
	for _, name := range ThemeNames() {
		theme, ok := builtinThemes[name]
		if !ok {
			t.Errorf("ThemeNames() lists %q but it is not built in", name)
			continue
		}
		if merged := mergeWithDefault(theme); merged != theme {
			t.Errorf("built-in theme %q has empty colors", name)
		}
	}
}

func TestLoadThemeFallsBack(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if got := LoadTheme("").Name; got != "default" {
		t.Errorf("LoadTheme(\"\").Name = %q, want default", got)
	}
	if got := LoadTheme("dark").Name; got != "dark" {
		t.Errorf("LoadTheme(dark).Name = %q, want dark", got)
	}
	if got := LoadTheme("no-such-theme").Name; got != "default" {
		t.Errorf("LoadTheme(no-such-theme).Name = %q, want default", got)
	}
}

func TestLoadThemeFileMerges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mine.toml")
	src := "description = \"partial\"\n[ui]\nselection_bg = \"#123456\"\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	theme, err := LoadThemeFile(path)
	if err != nil {
		t.Fatalf("LoadThemeFile() error: %v", err)
	}
	if theme.Name != "mine" {
		t.Errorf("Name = %q, want mine", theme.Name)
	}
	if theme.UI.SelectionBg != "#123456" {
		t.Errorf("UI.SelectionBg = %q, want #123456", theme.UI.SelectionBg)
	}
	def := DefaultTheme()
	if theme.UI.LinkFg != def.UI.LinkFg {
		t.Errorf("UI.LinkFg = %q, want default %q", theme.UI.LinkFg, def.UI.LinkFg)
	}
	if theme.Syntax.Keyword != def.Syntax.Keyword {
		t.Errorf("Syntax.Keyword = %q, want default %q", theme.Syntax.Keyword, def.Syntax.Keyword)
	}
}

func TestUserThemeOverridesBuiltin(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	dir, err := ThemesDir()
	if err != nil {
		t.Fatalf("ThemesDir() error: %v", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	src := "name = \"dark\"\n[ui]\ntext_fg = \"1\"\n"
	if err := os.WriteFile(filepath.Join(dir, "dark.toml"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := LoadTheme("dark").UI.TextFg; got != "1" {
		t.Errorf("LoadTheme(dark).UI.TextFg = %q, want user value 1", got)
	}
	if got := ListUserThemes(); len(got) != 1 || got[0] != "dark" {
		t.Errorf("ListUserThemes() = %v, want [dark]", got)
	}
}
