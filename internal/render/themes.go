package render

import (
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

// Markdown style names
const (
	ThemeUplyft     = "uplyft"
	ThemeDark       = "dark"
	ThemeLight      = "light"
	ThemeTokyoNight = "tokyonight"
	ThemeDracula    = "dracula"
	ThemePink       = "pink"
	ThemeNoTTY      = "notty"
	ThemeASCII      = "ascii"
)

// Uplyft brand palette
const (
	brandPurple   = "#7C3AED"
	brandViolet   = "#A78BFA"
	brandLavender = "#DDD6FE"
	brandPink     = "#F472B6"
)

func stringPtr(s string) *string { return &s }

// uplyftStyle is the dark glamour style recoloured with the brand palette
func uplyftStyle() ansi.StyleConfig {
	cfg := styles.DarkStyleConfig

	cfg.Heading.Color = stringPtr(brandViolet)
	cfg.H1.Color = stringPtr("#FFFFFF")
	cfg.H1.BackgroundColor = stringPtr(brandPurple)
	cfg.Strong.Color = stringPtr(brandLavender)
	cfg.Link.Color = stringPtr(brandViolet)
	cfg.LinkText.Color = stringPtr(brandLavender)
	cfg.Code.Color = stringPtr(brandPink)

	return cfg
}

// builtinStyles maps style names to glamour style configs
var builtinStyles = map[string]func() ansi.StyleConfig{
	ThemeUplyft:     uplyftStyle,
	ThemeDark:       func() ansi.StyleConfig { return styles.DarkStyleConfig },
	ThemeLight:      func() ansi.StyleConfig { return styles.LightStyleConfig },
	ThemeTokyoNight: func() ansi.StyleConfig { return styles.TokyoNightStyleConfig },
	ThemeDracula:    func() ansi.StyleConfig { return styles.DraculaStyleConfig },
	ThemePink:       func() ansi.StyleConfig { return styles.PinkStyleConfig },
	ThemeNoTTY:      func() ansi.StyleConfig { return styles.NoTTYStyleConfig },
	ThemeASCII:      func() ansi.StyleConfig { return styles.ASCIIStyleConfig },
}

// GetBuiltinStyle returns the glamour config for a built-in style name
func GetBuiltinStyle(name string) (ansi.StyleConfig, bool) {
	fn, ok := builtinStyles[name]
	if !ok {
		return ansi.StyleConfig{}, false
	}
	return fn(), true
}

// IsBuiltinStyle returns true if the style is one of the built-in names
func IsBuiltinStyle(style string) bool {
	_, ok := builtinStyles[style]
	return ok
}

// styleOption resolves a style name, or a path to a JSON style file, to a renderer option
func styleOption(style string) glamour.TermRendererOption {
	if cfg, ok := GetBuiltinStyle(style); ok {
		return glamour.WithStyles(cfg)
	}
	return glamour.WithStylePath(style)
}

// ThemeInfo contains information about a theme for display purposes.
type ThemeInfo struct {
	Name        string
	Description string
}

// AvailableThemes returns the built-in markdown styles.
func AvailableThemes() []ThemeInfo {
	return []ThemeInfo{
		{Name: ThemeUplyft, Description: "Uplyft purple (default)"},
		{Name: ThemeDark, Description: "Dark theme"},
		{Name: ThemeLight, Description: "Light theme for bright terminals"},
		{Name: ThemeTokyoNight, Description: "Tokyo Night color scheme"},
		{Name: ThemeDracula, Description: "Dracula color scheme"},
		{Name: ThemePink, Description: "Pink accents"},
		{Name: ThemeNoTTY, Description: "Plain text (no styling)"},
		{Name: ThemeASCII, Description: "ASCII-only output"},
	}
}

// ThemeNames returns just the theme names for selection.
func ThemeNames() []string {
	themes := AvailableThemes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
