package render

import (
	"strings"
	"testing"
)

func TestGetBuiltinStyle_Uplyft(t *testing.T) {
	cfg, ok := GetBuiltinStyle(ThemeUplyft)
	if !ok {
		t.Fatal("expected uplyft style to be found")
	}
	if cfg.H1.BackgroundColor == nil || *cfg.H1.BackgroundColor != brandPurple {
		t.Error("uplyft H1 should use the brand purple background")
	}
	if cfg.Link.Color == nil || *cfg.Link.Color != brandViolet {
		t.Error("uplyft links should use the brand violet")
	}
}

func TestGetBuiltinStyle_DoesNotMutateDark(t *testing.T) {
	_, _ = GetBuiltinStyle(ThemeUplyft)

	dark, _ := GetBuiltinStyle(ThemeDark)
	if dark.H1.BackgroundColor != nil && *dark.H1.BackgroundColor == brandPurple {
		t.Error("building the uplyft style changed the dark style")
	}
}

func TestGetBuiltinStyle_Unknown(t *testing.T) {
	if _, ok := GetBuiltinStyle("unknown_theme"); ok {
		t.Error("expected unknown theme to not be found")
	}
}

func TestIsBuiltinStyle(t *testing.T) {
	tests := []struct {
		style    string
		expected bool
	}{
		{"uplyft", true},
		{"dark", true},
		{"light", true},
		{"dracula", true},
		{"tokyonight", true},
		{"notty", true},
		{"custom_path.json", false},
		{"unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			result := IsBuiltinStyle(tt.style)
			if result != tt.expected {
				t.Errorf("IsBuiltinStyle(%q) = %v, want %v", tt.style, result, tt.expected)
			}
		})
	}
}

func TestMarkdownWithEachBuiltinStyle(t *testing.T) {
	for _, name := range ThemeNames() {
		t.Run(name, func(t *testing.T) {
			output, err := Markdown("# Title\n\nSome **bold** text", DefaultOptions().WithStyle(name))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(output, "Title") || !strings.Contains(output, "bold") {
				t.Errorf("output missing content: %s", output)
			}
		})
	}
}

func TestAvailableThemes(t *testing.T) {
	themes := AvailableThemes()

	if themes[0].Name != ThemeUplyft {
		t.Errorf("first theme = %q, want uplyft default", themes[0].Name)
	}

	seen := make(map[string]bool)
	for _, theme := range themes {
		if theme.Description == "" {
			t.Errorf("theme %s has no description", theme.Name)
		}
		if seen[theme.Name] {
			t.Errorf("duplicate theme %s", theme.Name)
		}
		seen[theme.Name] = true

		if !IsBuiltinStyle(theme.Name) {
			t.Errorf("listed theme %s is not resolvable", theme.Name)
		}
	}
}

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != len(AvailableThemes()) {
		t.Errorf("ThemeNames() len = %d, want %d", len(names), len(AvailableThemes()))
	}
}
